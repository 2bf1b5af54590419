package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestParseExpiredToken(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute)

	token, err := m.Issue("user-123")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseTamperedToken(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Issue("user-123")
	require.NoError(t, err)

	// Flip a character in the payload section
	tampered := []byte(token)
	mid := len(tampered) / 2
	if tampered[mid] == 'a' {
		tampered[mid] = 'b'
	} else {
		tampered[mid] = 'a'
	}

	_, err = m.Parse(string(tampered))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one", time.Hour)
	verifier := NewTokenManager("secret-two", time.Hour)

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseMalformedToken(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	for _, garbage := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.Parse(garbage)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", garbage)
	}
}

func TestScopedTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.IssueScoped("user-123", "password_reset", 30*time.Minute)
	require.NoError(t, err)

	userID, err := m.ParseScoped(token, "password_reset")
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestScopedTokenRejectsWrongPurpose(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.IssueScoped("user-123", "password_reset", 30*time.Minute)
	require.NoError(t, err)

	_, err = m.ParseScoped(token, "email_verify")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestScopedTokenRejectsBearerToken(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Issue("user-123")
	require.NoError(t, err)

	// A plain bearer token carries no purpose claim
	_, err = m.ParseScoped(token, "password_reset")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestScopedTokenExpired(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.IssueScoped("user-123", "password_reset", -time.Minute)
	require.NoError(t, err)

	_, err = m.ParseScoped(token, "password_reset")
	assert.ErrorIs(t, err, ErrTokenExpired)
}
