package admin

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/bloghub/internal/db"
	"github.com/sudo-init-do/bloghub/internal/user"
)

// GET /api/auth/admin/users
func ListUsers(c echo.Context) error {
	rows, err := db.Conn.Query(c.Request().Context(), `
        SELECT id, name, email, role, bio, avatar_url, created_at
        FROM users
        ORDER BY created_at DESC
    `)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch users"})
	}
	defer rows.Close()

	users := []user.User{}
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Bio, &u.AvatarURL, &u.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to read user record"})
		}
		users = append(users, u)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(users),
		"data":    users,
	})
}

// GET /api/auth/admin/users/:id
func GetUser(c echo.Context) error {
	userID := c.Param("id")
	if uuid.Validate(userID) != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
	}

	u, err := user.FindByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch user"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": u})
}

// DELETE /api/auth/admin/users/:id
// The account's posts, comments, and likes go with it (cascading foreign
// keys). Refuses to remove the last administrator so admin access cannot be
// deleted out of existence.
func DeleteUser(c echo.Context) error {
	userID := c.Param("id")
	if uuid.Validate(userID) != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
	}

	ctx := c.Request().Context()
	var role string
	err := db.Conn.QueryRow(ctx, `SELECT role FROM users WHERE id = $1`, userID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch user"})
	}

	if role == user.RoleAdmin {
		last, err := isLastAdmin(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to check admin count"})
		}
		if last {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Cannot delete the last administrator"})
		}
	}

	_, err = db.Conn.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to delete user"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "User deleted successfully"})
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// PUT /api/auth/admin/users/:id/role
func UpdateUserRole(c echo.Context) error {
	userID := c.Param("id")
	if uuid.Validate(userID) != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
	}

	req := new(UpdateRoleRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	if req.Role != user.RoleUser && req.Role != user.RoleAdmin {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Role must be 'user' or 'admin'"})
	}

	ctx := c.Request().Context()
	var current string
	err := db.Conn.QueryRow(ctx, `SELECT role FROM users WHERE id = $1`, userID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch user"})
	}

	// Demoting the final admin would lock every admin surface.
	if current == user.RoleAdmin && req.Role == user.RoleUser {
		last, err := isLastAdmin(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to check admin count"})
		}
		if last {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Cannot demote the last administrator"})
		}
	}

	_, err = db.Conn.Exec(ctx, `UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2`, req.Role, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to update role"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "User role updated successfully",
		"data":    echo.Map{"id": userID, "role": req.Role},
	})
}

func isLastAdmin(ctx context.Context) (bool, error) {
	var admins int
	if err := db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = 'admin'`).Scan(&admins); err != nil {
		return false, err
	}
	return admins <= 1, nil
}
