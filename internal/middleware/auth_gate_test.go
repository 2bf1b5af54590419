package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudo-init-do/bloghub/internal/auth"
	"github.com/sudo-init-do/bloghub/internal/user"
)

func setupAuth(t *testing.T) {
	t.Helper()
	auth.Init("test-secret", time.Hour)

	prev := LookupUser
	LookupUser = func(ctx context.Context, id string) (*user.User, error) {
		if id == "user-123" {
			return &user.User{ID: "user-123", Name: "Jess", Email: "jess@example.com", Role: user.RoleUser}, nil
		}
		return nil, errors.New("no rows")
	}
	t.Cleanup(func() { LookupUser = prev })
}

func runGate(t *testing.T, authHeader string) (*httptest.ResponseRecorder, int) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	calls := 0
	handler := RequireAuth(func(c echo.Context) error {
		calls++
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, calls
}

func TestRequireAuthMissingHeader(t *testing.T) {
	setupAuth(t)

	rec, calls := runGate(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, calls, "handler must not run without a token")

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Not authorized. Please login.", body["message"])
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	setupAuth(t)

	for _, header := range []string{"Bearer", "Bearer ", "Basic dXNlcjpwYXNz", "token-without-scheme"} {
		rec, calls := runGate(t, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.Equal(t, 0, calls, "header %q", header)
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	setupAuth(t)

	rec, calls := runGate(t, "Bearer not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, calls)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Not authorized. Invalid token.", body["message"])
}

func TestRequireAuthExpiredToken(t *testing.T) {
	setupAuth(t)

	expired := auth.NewTokenManager("test-secret", -time.Minute)
	token, err := expired.Issue("user-123")
	require.NoError(t, err)

	rec, calls := runGate(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, calls)
}

func TestRequireAuthUnknownUser(t *testing.T) {
	setupAuth(t)

	token, err := auth.Tokens.Issue("deleted-user")
	require.NoError(t, err)

	rec, calls := runGate(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, calls)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "User not found", body["message"])
}

func TestRequireAuthSuccess(t *testing.T) {
	setupAuth(t)

	token, err := auth.Tokens.Issue("user-123")
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireAuth(func(c echo.Context) error {
		u := user.FromContext(c)
		require.NotNil(t, u)
		assert.Equal(t, "user-123", u.ID)
		assert.Equal(t, "user-123", c.Get(user.ContextUserID))
		assert.Equal(t, user.RoleUser, c.Get(user.ContextRole))
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuthCaseInsensitiveScheme(t *testing.T) {
	setupAuth(t)

	token, err := auth.Tokens.Issue("user-123")
	require.NoError(t, err)

	rec, calls := runGate(t, "bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, calls)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer abc"))
	assert.Equal(t, "", bearerToken(""))
	assert.Equal(t, "", bearerToken("Bearer"))
	assert.Equal(t, "", bearerToken("Basic abc"))
}
