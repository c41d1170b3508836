package cache

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/config"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/domain"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/ports/out"
)

type availabilityCache struct {
	mu    sync.RWMutex
	cache *lru.Cache[string, *domain.AvailabilityConfig]
}

type storeSettingsCache struct {
	mu        sync.RWMutex
	cache     *domain.StoreSettings
	timestamp time.Time
	ttl       time.Duration
}

type CacheAdapter struct {
	availabilityCache  *availabilityCache
	storeSettingsCache *storeSettingsCache
	logger             out.LoggerPort
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	lruAvailabilityCache, err := lru.New[string, *domain.AvailabilityConfig](cfg.Cache.AvailabilitySize)
	if err != nil {
		logger.Error("cache.availability.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.AvailabilitySize,
		})
		return nil, err
	}

	return &CacheAdapter{
		availabilityCache: &availabilityCache{
			cache: lruAvailabilityCache,
		},
		storeSettingsCache: &storeSettingsCache{
			ttl: 30 * time.Minute,
		},
		logger: logger.WithModule("CacheAdapter"),
	}, nil
}
