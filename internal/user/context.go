package user

import "github.com/labstack/echo/v4"

// Context keys set by the authentication middleware and read by handlers.
const (
	ContextUser   = "user"
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// FromContext returns the account the authentication gate attached to the
// request, or nil when the route was not authenticated.
func FromContext(c echo.Context) *User {
	u, _ := c.Get(ContextUser).(*User)
	return u
}
