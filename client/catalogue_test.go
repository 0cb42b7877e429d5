package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/maelkum/storefront/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memProductRepo is an in-memory db.ProductRepository for catalogue tests.
type memProductRepo struct {
	mu       sync.Mutex
	products map[string]db.Product
	cleared  int
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[string]db.Product)}
}

func (m *memProductRepo) Put(ctx context.Context, p db.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.Code] = p
	return nil
}

func (m *memProductRepo) GetByCode(ctx context.Context, code string) (*db.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[code]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memProductRepo) List(ctx context.Context) ([]db.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]db.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *memProductRepo) SearchByName(ctx context.Context, nameSubstr string) ([]db.Product, error) {
	return m.List(ctx)
}

func (m *memProductRepo) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = make(map[string]db.Product)
	m.cleared++
	return nil
}

func catalogueServer(t *testing.T, pages [][]Product) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		require.NoError(t, err)
		require.True(t, page >= 1 && page <= len(pages), "unexpected page %d", page)
		json.NewEncoder(w).Encode(ProductPage{
			Data:    pages[page-1],
			HasNext: page < len(pages),
		})
	}))
}

func TestRefreshCatalogue_WalksAllPages(t *testing.T) {
	server := catalogueServer(t, [][]Product{
		{{Code: "p100", Name: "Keyboard", Price: "49.99"}, {Code: "p200", Name: "Mouse", Price: "9.99"}},
		{{Code: "p300", Name: "Cable", Price: "4.50"}},
	})
	defer server.Close()

	store := &memTokenStore{token: storedPair("my-access", "my-refresh")}
	catalog := NewCatalogClient(gatewayFixture(t, server.URL, store, nil))
	repo := newMemProductRepo()

	var mu sync.Mutex
	var lastProgress float64
	err := RefreshCatalogue(context.Background(), catalog, repo, 4, func(p float64) {
		mu.Lock()
		if p > lastProgress {
			lastProgress = p
		}
		mu.Unlock()
	})

	require.NoError(t, err)
	assert.Equal(t, 1, repo.cleared, "The cache is replaced, not merged")
	mu.Lock()
	assert.InDelta(t, 1.0, lastProgress, 0.001)
	mu.Unlock()

	products, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 3)

	cable, err := repo.GetByCode(context.Background(), "p300")
	require.NoError(t, err)
	require.NotNil(t, cable)
	assert.Equal(t, int64(450), cable.PriceCents)
}

func TestRefreshCatalogue_SkipsUnparseablePrices(t *testing.T) {
	server := catalogueServer(t, [][]Product{
		{{Code: "p100", Name: "Keyboard", Price: "49.99"}, {Code: "p666", Name: "Broken", Price: "not-a-price"}},
	})
	defer server.Close()

	store := &memTokenStore{token: storedPair("my-access", "my-refresh")}
	catalog := NewCatalogClient(gatewayFixture(t, server.URL, store, nil))
	repo := newMemProductRepo()

	require.NoError(t, RefreshCatalogue(context.Background(), catalog, repo, 2, nil))

	products, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p100", products[0].Code)
}

func TestRefreshCatalogue_EmptyCatalogue(t *testing.T) {
	server := catalogueServer(t, [][]Product{{}})
	defer server.Close()

	store := &memTokenStore{token: storedPair("my-access", "my-refresh")}
	catalog := NewCatalogClient(gatewayFixture(t, server.URL, store, nil))
	repo := newMemProductRepo()

	var lastProgress float64
	require.NoError(t, RefreshCatalogue(context.Background(), catalog, repo, 2, func(p float64) {
		lastProgress = p
	}))

	assert.Equal(t, 0, repo.cleared, "An empty result must not wipe the existing cache")
	assert.InDelta(t, 1.0, lastProgress, 0.001)
}

func TestRefreshCatalogue_PageFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	store := &memTokenStore{token: storedPair("my-access", "my-refresh")}
	catalog := NewCatalogClient(gatewayFixture(t, server.URL, store, nil))
	repo := newMemProductRepo()
	repo.Put(context.Background(), db.Product{Code: "existing"})

	err := RefreshCatalogue(context.Background(), catalog, repo, 2, nil)

	require.Error(t, err)
	assert.Equal(t, 0, repo.cleared, "A failed walk must leave the cache untouched")
}
