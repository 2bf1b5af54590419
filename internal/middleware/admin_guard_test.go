package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudo-init-do/bloghub/internal/user"
)

func runGuard(t *testing.T, u *user.User) (*httptest.ResponseRecorder, int) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/admin/stats", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if u != nil {
		c.Set(user.ContextUser, u)
		c.Set(user.ContextUserID, u.ID)
		c.Set(user.ContextRole, u.Role)
	}

	calls := 0
	handler := AdminGuard(func(c echo.Context) error {
		calls++
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, calls
}

func TestAdminGuardAllowsAdmin(t *testing.T) {
	rec, calls := runGuard(t, &user.User{ID: "admin-1", Role: user.RoleAdmin})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, calls)
}

func TestAdminGuardRejectsStandardUser(t *testing.T) {
	rec, calls := runGuard(t, &user.User{ID: "user-1", Role: user.RoleUser})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 0, calls)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Access denied. Admin privileges required.", body["message"])
}

func TestAdminGuardWithoutAuthIsServerError(t *testing.T) {
	// Composing AdminGuard without RequireAuth is a wiring mistake, not a
	// client problem.
	rec, calls := runGuard(t, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 0, calls)
}
