package cache

import (
	"context"
	"time"

	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/domain"
)

// Кэширование настроек площадки. Запись одна, поэтому достаточно TTL.

func (c *CacheAdapter) GetStoreSettings(ctx context.Context) (*domain.StoreSettings, bool) {
	c.storeSettingsCache.mu.RLock()
	defer c.storeSettingsCache.mu.RUnlock()

	if c.storeSettingsCache.cache == nil || time.Since(c.storeSettingsCache.timestamp) > c.storeSettingsCache.ttl {
		return nil, false
	}

	return c.storeSettingsCache.cache, true
}

func (c *CacheAdapter) StoreStoreSettings(ctx context.Context, settings domain.StoreSettings) {
	c.storeSettingsCache.mu.Lock()
	defer c.storeSettingsCache.mu.Unlock()

	c.storeSettingsCache.cache = &settings
	c.storeSettingsCache.timestamp = time.Now()
}

func (c *CacheAdapter) InvalidateStoreSettings(ctx context.Context) {
	c.storeSettingsCache.mu.Lock()
	defer c.storeSettingsCache.mu.Unlock()

	c.storeSettingsCache.cache = nil
	c.storeSettingsCache.timestamp = time.Time{}
}
