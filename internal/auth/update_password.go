package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/bloghub/internal/db"
	"github.com/sudo-init-do/bloghub/internal/user"
)

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// PUT /api/auth/password
func UpdatePassword(c echo.Context) error {
	u := user.FromContext(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Not authorized. Please login."})
	}

	req := new(UpdatePasswordRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	if len(req.NewPassword) < minPasswordLength {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Password must be at least 6 characters"})
	}
	if !CheckPassword(req.CurrentPassword, u.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Current password is incorrect"})
	}

	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}

	_, err = db.Conn.Exec(c.Request().Context(),
		`UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`, hashed, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to update password"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Password updated successfully"})
}
