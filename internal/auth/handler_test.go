package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sudo-init-do/bloghub/internal/user"
)

func TestValidateRegistration(t *testing.T) {
	assert.Empty(t, validateRegistration("Ada", "ada@example.com", "secret12"))

	assert.Equal(t, "Name is required", validateRegistration("", "ada@example.com", "secret12"))
	assert.Equal(t, "Name is too long",
		validateRegistration(strings.Repeat("x", user.MaxNameLength+1), "ada@example.com", "secret12"))
	assert.Equal(t, "Email is required", validateRegistration("Ada", "", "secret12"))
	assert.Equal(t, "Please provide a valid email", validateRegistration("Ada", "not-an-email", "secret12"))
	assert.Equal(t, "Please provide a valid email", validateRegistration("Ada", "missing@tld", "secret12"))
	assert.Equal(t, "Password must be at least 6 characters", validateRegistration("Ada", "ada@example.com", "12345"))
}
