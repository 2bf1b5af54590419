package user

import (
	"context"
	"time"

	"github.com/sudo-init-do/bloghub/internal/db"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	MaxNameLength = 50
	MaxBioLength  = 500
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // never return
	Role      string    `json:"role"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the account holds the administrator role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// FindByID loads a user record by primary key.
func FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := db.Conn.QueryRow(ctx, `
        SELECT id, name, email, password, role, bio, avatar_url, created_at
        FROM users WHERE id = $1
    `, id).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.Bio, &u.AvatarURL, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByEmail loads a user record by email, case-insensitively.
func FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := db.Conn.QueryRow(ctx, `
        SELECT id, name, email, password, role, bio, avatar_url, created_at
        FROM users WHERE lower(email) = lower($1)
    `, email).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.Bio, &u.AvatarURL, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
