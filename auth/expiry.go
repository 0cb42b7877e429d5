package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// expiryOf derives the expiration timestamp for an access token.
//
// The token is parsed without signature verification; the client has no
// signing key, and the exp claim is only used to decide when to refresh
// proactively. When the token is not a JWT or carries no exp claim, the
// server-provided expiresIn (seconds) is used instead.
func expiryOf(accessToken string, expiresIn int64) string {
	if exp, ok := jwtExpiry(accessToken); ok {
		return exp.Format(time.RFC3339)
	}
	if expiresIn <= 0 {
		return ""
	}
	return time.Now().Add(time.Duration(expiresIn) * time.Second).Format(time.RFC3339)
}

func jwtExpiry(accessToken string) (time.Time, bool) {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(accessToken, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
