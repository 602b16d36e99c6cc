package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"ecom-product/stores"
)

// RefreshJob periodically re-warms the product detail cache entries so hot
// reads keep hitting Redis between write-driven invalidations.
type RefreshJob struct {
	cache    *Cache
	products stores.ProductStore
	interval time.Duration
	ttl      time.Duration
}

func NewRefreshJob(c *Cache, products stores.ProductStore, interval time.Duration) *RefreshJob {
	return &RefreshJob{
		cache:    c,
		products: products,
		interval: interval,
		ttl:      15 * time.Minute,
	}
}

// Start runs the refresh loop until ctx is cancelled.
func (j *RefreshJob) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				j.refreshProducts(ctx)
			}
		}
	}()
}

func (j *RefreshJob) refreshProducts(ctx context.Context) {
	products, err := j.products.FindActive(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("cache refresh: failed to fetch products")
		return
	}

	for _, product := range products {
		key := fmt.Sprintf(ProductDetailPattern, product.ID.Hex())
		if err := j.cache.Set(ctx, key, product, j.ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache refresh: failed to set entry")
		}
	}
	log.Debug().Int("count", len(products)).Msg("cache refresh: products re-warmed")
}
