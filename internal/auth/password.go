package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost mirrors the cost the platform has always hashed with; changing
// it only affects newly set passwords.
const bcryptCost = 12

var ErrEmptyPassword = errors.New("password must not be empty")

// HashPassword runs the plaintext through bcrypt with a per-call random
// salt. Called only when a password is first set or changed.
func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
// A mismatch is a false return, never an error surfaced to the caller.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
