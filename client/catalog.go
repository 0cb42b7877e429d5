package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

const productsPath = "/catalog/api/products"

// CatalogClient reads the product catalogue through the gateway.
type CatalogClient struct {
	gw *Gateway
}

// NewCatalogClient creates a CatalogClient on top of an existing Gateway.
func NewCatalogClient(gw *Gateway) *CatalogClient { return &CatalogClient{gw: gw} }

// ProductPage fetches one page of the catalogue. Pages are numbered from 1;
// the returned HasNext flag tells whether another page exists.
func (c *CatalogClient) ProductPage(ctx context.Context, page int) (*ProductPage, error) {
	if page < 1 {
		return nil, fmt.Errorf("page number must be positive, got %d", page)
	}

	query := url.Values{"page": {strconv.Itoa(page)}}
	var out ProductPage
	if err := c.gw.Get(ctx, productsPath+"?"+query.Encode(), &out); err != nil {
		return nil, fmt.Errorf("failed to fetch product page %d: %w", page, err)
	}
	return &out, nil
}
