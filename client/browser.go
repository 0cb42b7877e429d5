package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// googleStartPath begins the provider-side OAuth dance in a real browser;
// the flow ends on a success URL carrying the provider access token, which
// is then exchanged for a storefront credential pair.
const (
	googleStartPath   = "/auth/api/auth/login/google/start"
	googleSuccessMark = "login/google/success"
)

// LoginWithGoogleBrowser drives a browser through the Google sign-in flow
// and exchanges the resulting provider token for a credential pair.
func (c *AuthClient) LoginWithGoogleBrowser(ctx context.Context, headless bool) (*AuthResponse, error) {
	chromeCtx, cancel, err := createChromeContext(headless)
	if err != nil {
		return nil, err
	}
	defer cancel()

	log.Info().Msg("Starting browser-based Google sign-in.")
	finalURL, err := awaitProviderRedirect(chromeCtx, c.baseURL+googleStartPath, headless)
	if err != nil {
		return nil, fmt.Errorf("failed during browser sign-in: %w", err)
	}

	providerToken, err := extractProviderToken(finalURL)
	if err != nil {
		return nil, err
	}
	return c.LoginWithGoogle(ctx, providerToken)
}

func createChromeContext(headless bool) (context.Context, context.CancelFunc, error) {
	var execPath string
	if p, err := exec.LookPath("google-chrome"); err == nil {
		execPath = p
	} else if p, err := exec.LookPath("chromium"); err == nil {
		execPath = p
	} else if p, err := exec.LookPath("chrome"); err == nil {
		execPath = p
	} else {
		return nil, nil, fmt.Errorf("no Chrome or Chromium executable found in PATH")
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.ExecPath(execPath))
	if !headless {
		opts = append(opts, chromedp.Flag("headless", false), chromedp.Flag("disable-gpu", false),
			chromedp.Flag("start-maximized", true))
	}

	allocatorCtx, cancelAllocator := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancelContext := chromedp.NewContext(allocatorCtx, chromedp.WithLogf(log.Info().Msgf))
	return ctx, func() {
		cancelContext()
		cancelAllocator()
	}, nil
}

// awaitProviderRedirect navigates to the provider start URL and polls the
// browser location until the success redirect carrying token= appears.
func awaitProviderRedirect(ctx context.Context, startURL string, headless bool) (string, error) {
	var timeoutCtx context.Context
	var cancel context.CancelFunc
	if headless {
		timeoutCtx, cancel = context.WithTimeout(ctx, 30*time.Second)
	} else {
		timeoutCtx, cancel = context.WithTimeout(ctx, 4*time.Minute)
	}
	defer cancel()

	var finalURL string
	err := chromedp.Run(timeoutCtx,
		chromedp.Navigate(startURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			for {
				var currentURL string
				if err := chromedp.Location(&currentURL).Do(ctx); err != nil {
					return err
				}
				if strings.Contains(currentURL, googleSuccessMark) && strings.Contains(currentURL, "token=") {
					finalURL = currentURL
					return nil
				}
				time.Sleep(500 * time.Millisecond)
			}
		}),
	)
	return finalURL, err
}

func extractProviderToken(successURL string) (string, error) {
	parsedURL, err := url.Parse(successURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse URL: %w", err)
	}
	token := parsedURL.Query().Get("token")
	if token == "" {
		return "", errors.New("provider token not found in the URL")
	}
	return token, nil
}
