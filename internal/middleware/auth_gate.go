package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/bloghub/internal/auth"
	"github.com/sudo-init-do/bloghub/internal/user"
)

// LookupUser resolves the account behind a verified token. Tests swap it to
// avoid a live database.
var LookupUser = func(ctx context.Context, id string) (*user.User, error) {
	return user.FindByID(ctx, id)
}

// RequireAuth authenticates a request from its Authorization header.
// A missing, invalid, or expired token short-circuits with 401 before any
// handler runs, as does a token whose account no longer exists. On success
// the resolved account is attached to the request context. Read-only
// against the store.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenStr := bearerToken(c.Request().Header.Get("Authorization"))
		if tokenStr == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "Not authorized. Please login.",
			})
		}

		userID, err := auth.Tokens.Parse(tokenStr)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "Not authorized. Invalid token.",
			})
		}

		// Resolve the account on every request: the token may outlive the
		// account it was issued for.
		u, err := LookupUser(c.Request().Context(), userID)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "User not found",
			})
		}

		c.Set(user.ContextUser, u)
		c.Set(user.ContextUserID, u.ID)
		c.Set(user.ContextRole, u.Role)
		return next(c)
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
