package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/bloghub/internal/user"
)

// AdminGuard restricts a route to administrator accounts. It must be
// composed after RequireAuth: an absent resolved user means the route was
// wired without authentication, which is a server bug, not a client error.
func AdminGuard(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		u := user.FromContext(c)
		if u == nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"success": false,
				"message": "Server error",
			})
		}
		if u.Role != user.RoleAdmin {
			return c.JSON(http.StatusForbidden, echo.Map{
				"success": false,
				"message": "Access denied. Admin privileges required.",
			})
		}
		return next(c)
	}
}
