package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedTokenWithExp(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "user-1", "exp": exp.Unix()}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

func TestExpiryOf_UsesJWTExpClaim(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	got := expiryOf(signedTokenWithExp(t, exp), 0)

	parsed, err := time.Parse(time.RFC3339, got)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(exp), "expected %v, got %v", exp, parsed)
}

func TestExpiryOf_PrefersExpClaimOverExpiresIn(t *testing.T) {
	exp := time.Now().Add(10 * time.Minute).Truncate(time.Second)
	got := expiryOf(signedTokenWithExp(t, exp), 7200)

	parsed, err := time.Parse(time.RFC3339, got)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(exp))
}

func TestExpiryOf_FallsBackToExpiresIn(t *testing.T) {
	got := expiryOf("not-a-jwt", 3600)

	parsed, err := time.Parse(time.RFC3339, got)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(1*time.Hour), parsed, 5*time.Second)
}

func TestExpiryOf_EmptyWhenNothingToDeriveFrom(t *testing.T) {
	assert.Equal(t, "", expiryOf("not-a-jwt", 0))
	assert.Equal(t, "", expiryOf("not-a-jwt", -1))
}

func TestExpiryOf_JWTWithoutExpClaim(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"})
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)

	got := expiryOf(signed, 60)
	parsed, perr := time.Parse(time.RFC3339, got)
	require.NoError(t, perr)
	assert.WithinDuration(t, time.Now().Add(1*time.Minute), parsed, 5*time.Second)
}
