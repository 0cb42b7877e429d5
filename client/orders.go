package client

import (
	"context"
	"fmt"
	"net/url"
)

const ordersPath = "/orders/api/orders"

// OrderClient places and reads orders through the gateway.
type OrderClient struct {
	gw *Gateway
}

// NewOrderClient creates an OrderClient on top of an existing Gateway.
func NewOrderClient(gw *Gateway) *OrderClient { return &OrderClient{gw: gw} }

// Create places an order and returns the created order summary.
func (c *OrderClient) Create(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}
	var out Order
	if err := c.gw.Post(ctx, ordersPath, req, &out); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return &out, nil
}

// List returns the signed-in user's order history.
func (c *OrderClient) List(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.gw.Get(ctx, ordersPath, &out); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return out, nil
}

// Get returns the full record of one order.
func (c *OrderClient) Get(ctx context.Context, orderNumber string) (*OrderDetail, error) {
	if orderNumber == "" {
		return nil, fmt.Errorf("order number cannot be empty")
	}
	var out OrderDetail
	if err := c.gw.Get(ctx, ordersPath+"/"+url.PathEscape(orderNumber), &out); err != nil {
		return nil, fmt.Errorf("failed to fetch order %s: %w", orderNumber, err)
	}
	return &out, nil
}
