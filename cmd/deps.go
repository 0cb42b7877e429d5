package cmd

import (
	"fmt"
	"os"

	"github.com/maelkum/storefront/auth"
	"github.com/maelkum/storefront/cart"
	"github.com/maelkum/storefront/client"
	"github.com/maelkum/storefront/db"
)

// services is the composition root: every command gets its collaborators
// from here instead of reaching for shared globals, so the gateway, the
// credential store and the aggregator are constructed and wired exactly
// once per invocation.
type services struct {
	session  *auth.Service
	gateway  *client.Gateway
	authAPI  *client.AuthClient
	catalog  *client.CatalogClient
	orders   *client.OrderClient
	users    *client.UserClient
	products db.ProductRepository
	cart     *cart.Aggregator
}

func apiBaseURL() string {
	if v := os.Getenv("STOREFRONT_API_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

// tokenRepository selects the credential backend: the OS keyring when
// STOREFRONT_KEYRING is set, otherwise the local database.
func tokenRepository() db.TokenRepository {
	if os.Getenv("STOREFRONT_KEYRING") != "" {
		return db.NewKeyringTokenRepository()
	}
	return db.NewTokenRepository(db.Db)
}

func buildServices() (*services, error) {
	baseURL := apiBaseURL()
	authAPI := client.NewAuthClient(baseURL)
	session := auth.NewService(tokenRepository(), authAPI)

	gateway, err := client.NewGateway(baseURL, session, func() {
		fmt.Fprintln(os.Stderr, "Your session has expired. Please run 'storefront login' to sign in again.")
	})
	if err != nil {
		return nil, err
	}

	return &services{
		session:  session,
		gateway:  gateway,
		authAPI:  authAPI,
		catalog:  client.NewCatalogClient(gateway),
		orders:   client.NewOrderClient(gateway),
		users:    client.NewUserClient(gateway),
		products: db.NewProductRepository(db.Db),
		cart:     cart.NewAggregator(db.NewCartRepository(db.Db)),
	}, nil
}
