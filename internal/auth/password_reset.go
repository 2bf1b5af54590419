package auth

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/bloghub/internal/alerts"
	"github.com/sudo-init-do/bloghub/internal/db"
	"github.com/sudo-init-do/bloghub/internal/user"
)

const passwordResetTTL = 30 * time.Minute

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// POST /api/auth/password/forgot
// Always responds with the same message so callers cannot probe which
// emails are registered.
func ForgotPassword(c echo.Context) error {
	const genericMsg = "If the email exists, a reset link has been sent."

	req := new(ForgotPasswordRequest)
	if err := c.Bind(req); err != nil || strings.TrimSpace(req.Email) == "" {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": genericMsg})
	}

	u, err := user.FindByEmail(c.Request().Context(), strings.TrimSpace(req.Email))
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": genericMsg})
	}

	token, err := Tokens.IssueScoped(u.ID, "password_reset", passwordResetTTL)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": genericMsg})
	}

	base := os.Getenv("APP_URL")
	if base == "" {
		base = "http://localhost:5173"
	}
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(base, "/"), url.QueryEscape(token))

	_ = alerts.EnqueuePasswordReset(u.ID, u.Email, resetURL, u.Name)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": genericMsg})
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// POST /api/auth/password/reset
func ResetPassword(c echo.Context) error {
	req := new(ResetPasswordRequest)
	if err := c.Bind(req); err != nil || req.Token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	if len(req.NewPassword) < minPasswordLength {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Password must be at least 6 characters"})
	}

	userID, err := Tokens.ParseScoped(req.Token, "password_reset")
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid or expired reset token"})
	}

	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}

	ct, err := db.Conn.Exec(c.Request().Context(),
		`UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`, hashed, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to update password"})
	}
	if ct.RowsAffected() == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Password reset successfully"})
}
