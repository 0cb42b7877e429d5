package auth

import "context"

// TokenRefresher defines the contract for any component that can exchange a
// refresh token for a new credential pair.
type TokenRefresher interface {
	PerformTokenRefresh(ctx context.Context, refreshToken string) (accessToken string, newRefreshToken string, expiresIn int64, err error)
}
