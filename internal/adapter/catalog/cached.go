// Package catalog holds decorators shared by catalog backends.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lyuongruouvang/shop-assistant/internal/domain"
	"github.com/lyuongruouvang/shop-assistant/internal/observability/telemetry"
	"github.com/lyuongruouvang/shop-assistant/internal/ports"
)

// CachedClient serves repeated searches from a cache. Only successful lookups are stored.
type CachedClient struct {
	next   ports.CatalogClient
	cache  ports.Cache
	ttl    time.Duration
	prefix string
	log    *zap.Logger
}

func NewCachedClient(next ports.CatalogClient, cache ports.Cache, ttl time.Duration, prefix string, log *zap.Logger) *CachedClient {
	return &CachedClient{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		prefix: prefix,
		log:    log,
	}
}

func (c *CachedClient) Search(ctx context.Context, query string) ([]domain.ProductMatch, error) {
	key := c.prefix + NormalizeQuery(query)

	if matches, ok := c.lookup(ctx, key); ok {
		telemetry.CatalogCacheTotal.WithLabelValues("hit").Inc()
		return matches, nil
	}
	telemetry.CatalogCacheTotal.WithLabelValues("miss").Inc()

	matches, err := c.next.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(matches)
	if err != nil {
		c.log.Warn("Failed to encode catalog matches for cache", zap.Error(err))
		return matches, nil
	}
	if err := c.cache.Set(ctx, key, string(data), c.ttl); err != nil {
		c.log.Warn("Failed to cache catalog matches", zap.String("key", key), zap.Error(err))
	}

	return matches, nil
}

func (c *CachedClient) lookup(ctx context.Context, key string) ([]domain.ProductMatch, bool) {
	raw, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ports.ErrCacheMiss) {
			c.log.Warn("Catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var matches []domain.ProductMatch
	if err := json.Unmarshal([]byte(raw), &matches); err != nil {
		c.log.Warn("Discarding corrupt catalog cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return matches, true
}

// NormalizeQuery lower-cases query and collapses whitespace so equivalent searches share a key.
func NormalizeQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}
