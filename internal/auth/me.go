package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/bloghub/internal/user"
)

// GET /api/auth/profile
func GetProfile(c echo.Context) error {
	u := user.FromContext(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Not authorized. Please login."})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": u})
}
