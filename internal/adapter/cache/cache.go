package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lyuongruouvang/shop-assistant/internal/ports"
	"github.com/lyuongruouvang/shop-assistant/pkg/config"
)

// New builds the cache backend selected in cfg.
func New(cfg config.CacheConfig, log *zap.Logger) (ports.Cache, error) {
	switch cfg.Backend {
	case "", "local":
		return NewLocalCache(cfg.CleanupInterval, log), nil
	case "redis":
		return NewRedisCache(cfg.RedisURL, log)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
