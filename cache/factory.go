// api/cache/factory.go
package cache

import (
	"context"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/projecthub-io/api/config"
	logger "github.com/projecthub-io/api/logging"
)

// New selects a backend from the configuration and connects it. Cache
// initialization must never prevent the host process from starting: a
// connection failure is logged and downgraded to the disabled backend.
func New(ctx context.Context, cfg config.CacheConfiguration, credential TokenCredential) ProjectCache {
	backend := selectBackend(cfg, credential)
	if err := backend.Connect(ctx); err != nil {
		logger.Error("Cache backend failed to connect, caching disabled",
			zap.String("kind", backend.Kind()),
			zap.Error(err))
		fallback := NewNoOpCache()
		_ = fallback.Connect(ctx)
		return fallback
	}
	logger.Info("Cache backend ready",
		zap.String("kind", backend.Kind()),
		zap.Bool("connected", backend.IsConnected()))
	return backend
}

func selectBackend(cfg config.CacheConfiguration, credential TokenCredential) ProjectCache {
	if !cfg.Enabled {
		logger.Info("Caching disabled by configuration")
		return NewNoOpCache()
	}

	switch cfg.Kind {
	case KindRedis:
		if cfg.Redis.Host == "" {
			logger.Warn("Redis cache selected but no host configured, using in-memory cache")
			return NewMemoryCache(clockwork.NewRealClock())
		}
		return NewRedisCache(cfg.Redis, credential, clockwork.NewRealClock())
	case KindMemory:
		return NewMemoryCache(clockwork.NewRealClock())
	case KindDisabled:
		return NewNoOpCache()
	default:
		logger.Warn("Unrecognized cache kind, using in-memory cache", zap.String("kind", cfg.Kind))
		return NewMemoryCache(clockwork.NewRealClock())
	}
}
