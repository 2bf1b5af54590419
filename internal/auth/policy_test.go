package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sudo-init-do/bloghub/internal/user"
)

func TestCanMutate(t *testing.T) {
	owner := &user.User{ID: "owner-id", Role: user.RoleUser}
	other := &user.User{ID: "other-id", Role: user.RoleUser}
	admin := &user.User{ID: "admin-id", Role: user.RoleAdmin}

	assert.True(t, CanMutate(owner, "owner-id"), "owners may mutate their own resources")
	assert.False(t, CanMutate(other, "owner-id"), "non-owners may not mutate")
	assert.True(t, CanMutate(admin, "owner-id"), "admins may mutate anything")
	assert.False(t, CanMutate(nil, "owner-id"), "nil user never passes")
}
