package client

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/maelkum/storefront/db"
	"github.com/maelkum/storefront/pkg/pool"
	"github.com/rs/zerolog/log"
)

// maxCataloguePages bounds the page walk in case the remote service never
// clears its has-next flag.
const maxCataloguePages = 10000

// RefreshCatalogue walks every catalogue page and replaces the local product
// cache with the result. Page fetches are sequential (the has-next flag only
// exists after the previous page); cache upserts fan out over numWorkers.
// It reports progress via the progressCb callback, which receives a value
// from 0.0 to 1.0.
func RefreshCatalogue(
	ctx context.Context,
	catalog *CatalogClient,
	products db.ProductRepository,
	numWorkers int,
	progressCb func(float64),
) error {
	var fetched []Product
	for page := 1; page <= maxCataloguePages; page++ {
		result, err := catalog.ProductPage(ctx, page)
		if err != nil {
			return fmt.Errorf("failed to fetch catalogue page %d: %w", page, err)
		}
		fetched = append(fetched, result.Data...)
		if !result.HasNext {
			break
		}
	}

	if len(fetched) == 0 {
		log.Info().Msg("No products found in the catalogue.")
		if progressCb != nil {
			progressCb(1.0) // Signal completion
		}
		return nil
	}

	if err := products.Clear(ctx); err != nil {
		return fmt.Errorf("failed to empty catalogue cache: %w", err)
	}

	var processedCount atomic.Int64
	total := float64(len(fetched))

	workerFunc := func(ctx context.Context, p Product) error {
		defer func() {
			count := processedCount.Add(1)
			if progressCb != nil {
				progressCb(float64(count) / total)
			}
		}()

		priceCents, err := ParsePriceCents(p.Price)
		if err != nil {
			log.Warn().Err(err).Str("code", p.Code).Msg("Skipping product with unparseable price")
			return nil // Don't treat as a fatal error for the pool
		}
		if err := products.Put(ctx, db.Product{
			Code:        p.Code,
			Name:        p.Name,
			Description: p.Description,
			ImageURL:    p.ImageURL,
			PriceCents:  priceCents,
		}); err != nil {
			log.Error().Err(err).Str("code", p.Code).Msg("Failed to save product to cache")
		}
		return nil
	}

	_ = pool.Run(ctx, fetched, numWorkers, workerFunc)

	return ctx.Err()
}
