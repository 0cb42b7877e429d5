package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/maelkum/storefront/auth"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// RefreshPath is the token refresh endpoint. Requests to this path are never
// subject to the gateway's refresh-and-retry handling, or a refresh failure
// could recurse into another refresh.
const RefreshPath = "/auth/api/auth/refresh"

const requestTimeout = 10 * time.Second

// Session provides the gateway's view of the credential store.
// *auth.Service satisfies it.
type Session interface {
	// AccessToken returns the stored access token, or "" when none exists.
	AccessToken(ctx context.Context) string
	// ForceRefresh exchanges the stored refresh token for a new pair,
	// persists it, and returns the new access token. It returns
	// auth.ErrNoRefreshToken when there is nothing to exchange.
	ForceRefresh(ctx context.Context) (string, error)
	// Clear removes the stored pair.
	Clear(ctx context.Context) error
}

// Gateway wraps all outbound calls to the remote storefront services. It
// attaches the stored access token to each request and recovers from a 401
// by refreshing the credential pair and replaying the request exactly once.
// Callers see the same surface as a plain HTTP client.
type Gateway struct {
	base     *url.URL
	http     *http.Client
	session  Session
	onLogout func()

	refreshGroup singleflight.Group
}

// NewGateway builds a Gateway for the given base URL. The onLogout hook is
// invoked once when a refresh attempt fails and the stored credentials have
// been cleared; the CLI uses it to tell the user to sign in again.
func NewGateway(baseURL string, session Session, onLogout func()) (*Gateway, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	return &Gateway{
		base:     base,
		http:     &http.Client{Timeout: requestTimeout},
		session:  session,
		onLogout: onLogout,
	}, nil
}

// SetHTTPClient replaces the underlying HTTP client. Intended for tests and
// callers that need custom transport settings.
func (g *Gateway) SetHTTPClient(c *http.Client) { g.http = c }

// Get issues an authenticated GET request and decodes the response into out.
func (g *Gateway) Get(ctx context.Context, path string, out interface{}) error {
	return g.Do(ctx, http.MethodGet, path, nil, out)
}

// Post issues an authenticated POST request with a JSON body.
func (g *Gateway) Post(ctx context.Context, path string, body, out interface{}) error {
	return g.Do(ctx, http.MethodPost, path, body, out)
}

// Put issues an authenticated PUT request with a JSON body.
func (g *Gateway) Put(ctx context.Context, path string, body, out interface{}) error {
	return g.Do(ctx, http.MethodPut, path, body, out)
}

// Delete issues an authenticated DELETE request.
func (g *Gateway) Delete(ctx context.Context, path string, out interface{}) error {
	return g.Do(ctx, http.MethodDelete, path, nil, out)
}

// Do sends one request and applies the refresh-and-retry protocol:
//
//  1. attach the stored access token, if any
//  2. dispatch; 2xx decodes into out and returns
//  3. on 401, refresh the credential pair (coalesced across concurrent
//     callers) and replay the captured request exactly once with the new
//     token; its outcome is returned as-is
//  4. every other error status and all transport failures are returned
//     unchanged, never retried
//
// A 401 from the refresh path itself, or with no refresh token stored, is
// returned like any other failed call.
func (g *Gateway) Do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	status, data, err := g.dispatch(ctx, method, path, payload, g.session.AccessToken(ctx))
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && !isRefreshPath(path) {
		accessToken, refreshErr := g.refresh(ctx)
		if refreshErr != nil {
			// The original authorization failure is what the caller
			// acts on; the refresh outcome only decides the logout
			// side effect, which refresh() already handled.
			log.Debug().Err(refreshErr).Str("path", path).Msg("Token refresh not possible, surfacing original 401")
			return &StatusError{Status: status, Body: string(data)}
		}

		log.Debug().Str("method", method).Str("path", path).Msg("Retrying request with refreshed credentials")
		status, data, err = g.dispatch(ctx, method, path, payload, accessToken)
		if err != nil {
			return err
		}
		// Single retry only: whatever came back is the final outcome.
	}

	return g.finish(path, status, data, out)
}

// refresh coalesces concurrent refresh attempts into a single exchange.
// Every request that fails with 401 while a refresh is in flight attaches
// itself to the same outcome; only one refresh call ever reaches the remote
// service, and the credential store is written once.
func (g *Gateway) refresh(ctx context.Context) (string, error) {
	v, err, _ := g.refreshGroup.Do("refresh", func() (interface{}, error) {
		accessToken, err := g.session.ForceRefresh(ctx)
		if err != nil {
			if !errors.Is(err, auth.ErrNoRefreshToken) {
				// The refresh token was rejected or unreachable:
				// the session is gone, force a logged-out state.
				if clearErr := g.session.Clear(ctx); clearErr != nil {
					log.Error().Err(clearErr).Msg("Failed to clear credentials after refresh failure")
				}
				if g.onLogout != nil {
					g.onLogout()
				}
			}
			return "", err
		}
		return accessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// dispatch performs one HTTP round trip and reads the full body.
func (g *Gateway) dispatch(ctx context.Context, method, path string, payload []byte, accessToken string) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.base.String()+path, reqBody)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("path", path).Msg("Failed to create request")
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	log.Debug().Str("method", method).Str("path", path).Msg("Sending HTTP request")
	resp, err := g.http.Do(req)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("path", path).Msg("HTTP request failed")
		return 0, nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Debug().Err(err).Msg("Failed to close response body")
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to read response body")
		return 0, nil, err
	}
	return resp.StatusCode, data, nil
}

// finish maps the final status and body to the caller's result.
func (g *Gateway) finish(path string, status int, data []byte, out interface{}) error {
	if status < 200 || status >= 300 {
		log.Error().Int("status", status).Str("path", path).Msg("HTTP request returned non-OK status")
		return &StatusError{Status: status, Body: string(data)}
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to decode response payload")
		return &DecodeError{Path: path, Err: err}
	}
	return nil
}

func isRefreshPath(path string) bool {
	p := path
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	return strings.TrimRight(p, "/") == RefreshPath
}
