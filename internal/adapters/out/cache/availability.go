package cache

import (
	"context"

	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/domain"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/ports/out"
)

// Кэширование конфигураций доступности продавцов

func (c *CacheAdapter) GetAvailabilityConfig(ctx context.Context, sellerID string) (*domain.AvailabilityConfig, bool) {
	c.availabilityCache.mu.RLock()
	defer c.availabilityCache.mu.RUnlock()

	config, exists := c.availabilityCache.cache.Get(sellerID)
	if !exists {
		c.logger.Debug("cache.availability.get.miss", out.LogFields{
			"sellerId": sellerID,
		})
		return nil, false
	}

	c.logger.Debug("cache.availability.get.hit", out.LogFields{
		"sellerId": sellerID,
	})
	return config, true
}

func (c *CacheAdapter) StoreAvailabilityConfig(ctx context.Context, config domain.AvailabilityConfig) {
	c.availabilityCache.mu.Lock()
	defer c.availabilityCache.mu.Unlock()

	c.logger.Debug("cache.availability.store", out.LogFields{
		"sellerId": config.SellerID,
		"mode":     config.Mode,
	})

	c.availabilityCache.cache.Add(config.SellerID, &config)
}

func (c *CacheAdapter) InvalidateAvailabilityConfig(ctx context.Context, sellerID string) {
	c.availabilityCache.mu.Lock()
	defer c.availabilityCache.mu.Unlock()

	c.availabilityCache.cache.Remove(sellerID)
}

func (c *CacheAdapter) InvalidateAllAvailabilityConfigs(ctx context.Context) {
	c.availabilityCache.mu.Lock()
	defer c.availabilityCache.mu.Unlock()

	c.availabilityCache.cache.Purge()
}
