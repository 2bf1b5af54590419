package auth

import "github.com/sudo-init-do/bloghub/internal/user"

// CanMutate is the single ownership policy applied by every mutating
// handler: the acting account must own the resource or be an administrator.
// Centralizing it means no call site can reinvent the comparison.
func CanMutate(u *user.User, ownerID string) bool {
	if u == nil {
		return false
	}
	return u.ID == ownerID || u.IsAdmin()
}
