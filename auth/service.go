package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/maelkum/storefront/db"
	"github.com/rs/zerolog/log"
)

// ErrNoRefreshToken is returned when a refresh is requested but no refresh
// token is stored. Callers treat this as "not logged in" rather than as a
// failed refresh, so it must not trigger a credential wipe.
var ErrNoRefreshToken = errors.New("no refresh token available")

// expirySkew is how close to expiry a stored access token is still treated
// as valid. Refreshing slightly early avoids a guaranteed 401 round trip.
const expirySkew = 5 * time.Minute

// Service orchestrates the credential lifecycle using its dependencies.
//
// The refresh-token exchange is assumed to rotate server-side: once a refresh
// token has been used, the previous one is unusable. The gateway relies on
// this when it coalesces concurrent refreshes into a single exchange.
type Service struct {
	Store     db.TokenRepository
	Refresher TokenRefresher
}

// NewService is the constructor for the auth service.
func NewService(store db.TokenRepository, refresher TokenRefresher) *Service {
	return &Service{
		Store:     store,
		Refresher: refresher,
	}
}

// AccessToken returns the stored access token, or an empty string when none
// is stored. The token is returned even if expired; the gateway's 401 path
// handles renewal.
func (s *Service) AccessToken(ctx context.Context) string {
	token, err := s.Store.Get(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read stored credentials")
		return ""
	}
	if token == nil {
		return ""
	}
	return token.AccessToken
}

// SaveSession persists a freshly minted credential pair, replacing any
// existing pair wholesale. The expiry is derived from the access token's
// exp claim when it is a JWT, otherwise from expiresIn seconds.
func (s *Service) SaveSession(ctx context.Context, accessToken, refreshToken string, expiresIn int64) error {
	token := &db.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiryOf(accessToken, expiresIn),
	}
	if err := s.Store.Upsert(ctx, token); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	return nil
}

// EnsureValid returns a usable credential pair, refreshing first when the
// stored pair is missing an access token or expires within the skew window.
func (s *Service) EnsureValid(ctx context.Context) (*db.Token, error) {
	token, err := s.Store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve token record: %w", err)
	}

	if isTokenValid(token) {
		return token, nil
	}

	if _, err := s.ForceRefresh(ctx); err != nil {
		return nil, err
	}
	return s.Store.Get(ctx)
}

// ForceRefresh performs an unconditional refresh exchange and persists the
// resulting pair. It returns the new access token. Returns ErrNoRefreshToken
// when there is nothing to exchange.
func (s *Service) ForceRefresh(ctx context.Context) (string, error) {
	token, err := s.Store.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve token record: %w", err)
	}
	if token == nil || token.RefreshToken == "" {
		return "", ErrNoRefreshToken
	}

	access, refresh, expiresIn, err := s.Refresher.PerformTokenRefresh(ctx, token.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to perform token refresh: %w", err)
	}

	token.AccessToken = access
	token.RefreshToken = refresh
	token.ExpiresAt = expiryOf(access, expiresIn)
	if err := s.Store.Upsert(ctx, token); err != nil {
		return "", fmt.Errorf("failed to save refreshed token: %w", err)
	}
	log.Info().Msg("Token refreshed and saved successfully.")
	return access, nil
}

// Clear removes the stored credential pair. It is idempotent.
func (s *Service) Clear(ctx context.Context) error {
	return s.Store.Clear(ctx)
}

// isTokenValid checks if the stored access token is still usable.
func isTokenValid(token *db.Token) bool {
	if token == nil {
		return false
	}
	if token.AccessToken == "" || token.ExpiresAt == "" {
		return false
	}
	expiresAt, err := time.Parse(time.RFC3339, token.ExpiresAt)
	if err != nil {
		log.Error().Err(err).Msgf("Failed to parse expiration time: %s", token.ExpiresAt)
		return false
	}
	return time.Now().Add(expirySkew).Before(expiresAt)
}
