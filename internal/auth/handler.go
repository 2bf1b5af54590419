package auth

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/bloghub/internal/alerts"
	"github.com/sudo-init-do/bloghub/internal/db"
	"github.com/sudo-init-do/bloghub/internal/user"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

const minPasswordLength = 6

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func Register(c echo.Context) error {
	req := new(RegisterRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if msg := validateRegistration(req.Name, req.Email, req.Password); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": msg})
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}

	ctx := c.Request().Context()
	u := user.User{ID: uuid.New().String()}
	err = db.Conn.QueryRow(ctx, `
        INSERT INTO users (id, name, email, password, role)
        VALUES ($1, $2, lower($3), $4, 'user')
        RETURNING id, name, email, role, bio, avatar_url, created_at
    `, u.ID, req.Name, req.Email, hashed).
		Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Bio, &u.AvatarURL, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to create user"})
	}

	token, err := Tokens.Issue(u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Token generation failed"})
	}

	_ = alerts.EnqueueWelcomeEmail(u.ID, u.Email, u.Name)

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "User registered successfully",
		"token":   token,
		"user":    u,
	})
}

// validateRegistration returns an empty string when the payload is valid,
// otherwise the message to surface.
func validateRegistration(name, email, password string) string {
	if name == "" {
		return "Name is required"
	}
	if len(name) > user.MaxNameLength {
		return "Name is too long"
	}
	if email == "" {
		return "Email is required"
	}
	if !emailPattern.MatchString(email) {
		return "Please provide a valid email"
	}
	if len(password) < minPasswordLength {
		return "Password must be at least 6 characters"
	}
	return ""
}
