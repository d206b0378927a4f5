package weather

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/i474232898/temperature-converter/internal/observability"
)

// CachedProvider wraps a Provider with a TTL cache keyed by zip code.
type CachedProvider struct {
	inner   Provider
	cache   *cache.Cache
	metrics *observability.Metrics
}

// NewCachedProvider creates a cache decorator around a provider. Entries expire
// after ttl; expired entries are purged every 2*ttl.
func NewCachedProvider(inner Provider, ttl time.Duration, metrics *observability.Metrics) *CachedProvider {
	return &CachedProvider{
		inner:   inner,
		cache:   cache.New(ttl, 2*ttl),
		metrics: metrics,
	}
}

func (c *CachedProvider) Name() string {
	return c.inner.Name()
}

func (c *CachedProvider) Current(ctx context.Context, zip string) (Observation, error) {
	key := NormalizeZip(zip)
	if v, ok := c.cache.Get(key); ok {
		c.metrics.LookupCache.WithLabelValues("hit").Inc()
		return v.(Observation), nil
	}
	c.metrics.LookupCache.WithLabelValues("miss").Inc()

	obs, err := c.inner.Current(ctx, key)
	if err != nil {
		// Failures are not cached so the next request tries again.
		return obs, err
	}
	c.cache.SetDefault(key, obs)
	return obs, nil
}
