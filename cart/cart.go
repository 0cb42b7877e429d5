// Package cart maintains the local shopping cart: one line per product
// code, with totals always recomputed from the full current line set.
package cart

import (
	"context"
	"fmt"

	"github.com/maelkum/storefront/db"
	"github.com/rs/zerolog/log"
)

// Summary is a consistent snapshot of the cart. TotalCents is the sum of
// unit price times quantity over all lines; ItemCount is the summed
// quantity across lines, matching what a cart badge would display.
type Summary struct {
	Lines      []db.CartLine
	TotalCents int64
	ItemCount  int
}

// Aggregator applies cart operations against the persisted line set.
// Derived totals are never cached between operations; every result is
// recomputed from the lines as stored, so a replayed operation sequence
// always yields the same summary.
type Aggregator struct {
	repo db.CartRepository
}

// NewAggregator creates an Aggregator over the given repository.
func NewAggregator(repo db.CartRepository) *Aggregator {
	return &Aggregator{repo: repo}
}

// Add puts one unit of the product in the cart: an existing line has its
// quantity incremented by 1, otherwise a new line with quantity 1 is
// created.
func (a *Aggregator) Add(ctx context.Context, product db.Product) (Summary, error) {
	if product.Code == "" {
		return Summary{}, fmt.Errorf("product code cannot be empty")
	}

	line, err := a.repo.GetByCode(ctx, product.Code)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read cart line: %w", err)
	}
	if line == nil {
		line = &db.CartLine{
			Code:       product.Code,
			Name:       product.Name,
			PriceCents: product.PriceCents,
			Quantity:   1,
		}
	} else {
		line.Quantity++
	}

	if err := a.repo.Upsert(ctx, line); err != nil {
		return Summary{}, fmt.Errorf("failed to save cart line: %w", err)
	}
	log.Debug().Str("code", product.Code).Int("quantity", line.Quantity).Msg("Added product to cart")
	return a.Current(ctx)
}

// Remove deletes the line for the given product code. Removing an absent
// code is a no-op.
func (a *Aggregator) Remove(ctx context.Context, code string) (Summary, error) {
	if err := a.repo.Delete(ctx, code); err != nil {
		return Summary{}, fmt.Errorf("failed to delete cart line: %w", err)
	}
	return a.Current(ctx)
}

// UpdateQuantity sets the line's quantity to an absolute value. A quantity
// of zero or less removes the line.
func (a *Aggregator) UpdateQuantity(ctx context.Context, code string, quantity int) (Summary, error) {
	if quantity <= 0 {
		return a.Remove(ctx, code)
	}

	line, err := a.repo.GetByCode(ctx, code)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read cart line: %w", err)
	}
	if line == nil {
		return Summary{}, fmt.Errorf("no cart line for product %q", code)
	}

	line.Quantity = quantity
	if err := a.repo.Upsert(ctx, line); err != nil {
		return Summary{}, fmt.Errorf("failed to save cart line: %w", err)
	}
	return a.Current(ctx)
}

// Clear removes every line. It is idempotent.
func (a *Aggregator) Clear(ctx context.Context) (Summary, error) {
	if err := a.repo.Clear(ctx); err != nil {
		return Summary{}, fmt.Errorf("failed to clear cart: %w", err)
	}
	return a.Current(ctx)
}

// Current returns a summary recomputed from the stored line set.
func (a *Aggregator) Current(ctx context.Context) (Summary, error) {
	lines, err := a.repo.Lines(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read cart lines: %w", err)
	}
	return summarize(lines), nil
}

func summarize(lines []db.CartLine) Summary {
	s := Summary{Lines: lines}
	for _, line := range lines {
		s.TotalCents += line.PriceCents * int64(line.Quantity)
		s.ItemCount += line.Quantity
	}
	return s
}
