package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	loginPath       = "/auth/api/auth/login"
	registerPath    = "/auth/api/auth/register"
	googleLoginPath = "/auth/api/auth/login/google"
	logoutPath      = "/auth/api/auth/logout"
)

// AuthClient talks to the authentication service. It deliberately does not
// go through the Gateway: login, registration and the refresh exchange run
// before (or instead of) an authenticated session, and routing the refresh
// call through the 401 machinery would recurse.
//
// AuthClient implements auth.TokenRefresher.
type AuthClient struct {
	baseURL string
	http    *http.Client
}

// NewAuthClient creates an AuthClient for the given base URL.
func NewAuthClient(baseURL string) *AuthClient {
	return &AuthClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// SetHTTPClient replaces the underlying HTTP client. Intended for tests.
func (c *AuthClient) SetHTTPClient(hc *http.Client) { c.http = hc }

// Login exchanges a username and password for a credential pair.
func (c *AuthClient) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.post(ctx, loginPath, Credentials{Username: username, Password: password}, &out); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return &out, nil
}

// Register creates a new account and returns its first credential pair.
func (c *AuthClient) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.post(ctx, registerPath, req, &out); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	return &out, nil
}

// LoginWithGoogle exchanges a Google-issued access token for a storefront
// credential pair.
func (c *AuthClient) LoginWithGoogle(ctx context.Context, providerToken string) (*AuthResponse, error) {
	body := struct {
		AccessToken string `json:"accessToken"`
	}{AccessToken: providerToken}

	var out AuthResponse
	if err := c.post(ctx, googleLoginPath, body, &out); err != nil {
		return nil, fmt.Errorf("google login failed: %w", err)
	}
	return &out, nil
}

// Logout revokes the refresh token server-side. Callers clear the local
// credential store regardless of the outcome.
func (c *AuthClient) Logout(ctx context.Context, refreshToken string) error {
	body := struct {
		RefreshToken string `json:"refreshToken"`
	}{RefreshToken: refreshToken}
	return c.post(ctx, logoutPath, body, nil)
}

// PerformTokenRefresh exchanges a refresh token for a new credential pair.
// The old refresh token is superseded server-side; only the returned pair
// is usable afterwards.
func (c *AuthClient) PerformTokenRefresh(ctx context.Context, refreshToken string) (string, string, int64, error) {
	body := struct {
		RefreshToken string `json:"refreshToken"`
	}{RefreshToken: refreshToken}

	var out AuthResponse
	if err := c.post(ctx, RefreshPath, body, &out); err != nil {
		return "", "", 0, fmt.Errorf("token refresh failed: %w", err)
	}
	if out.AccessToken == "" || out.RefreshToken == "" {
		return "", "", 0, fmt.Errorf("token refresh returned an incomplete credential pair")
	}
	return out.AccessToken, out.RefreshToken, out.ExpiresIn, nil
}

func (c *AuthClient) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to create request")
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("HTTP request failed")
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Debug().Err(err).Msg("Failed to close response body")
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to read response body")
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error().Int("status", resp.StatusCode).Str("path", path).Msg("HTTP request returned non-OK status")
		return &StatusError{Status: resp.StatusCode, Body: string(data)}
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	return nil
}
