package out

import (
	"context"

	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/domain"
)

type CachePort interface {
	// Кэширование конфигураций доступности продавцов
	GetAvailabilityConfig(ctx context.Context, sellerID string) (*domain.AvailabilityConfig, bool)
	StoreAvailabilityConfig(ctx context.Context, config domain.AvailabilityConfig)
	InvalidateAvailabilityConfig(ctx context.Context, sellerID string)
	InvalidateAllAvailabilityConfigs(ctx context.Context)

	// Кэширование настроек площадки
	GetStoreSettings(ctx context.Context) (*domain.StoreSettings, bool)
	StoreStoreSettings(ctx context.Context, settings domain.StoreSettings)
	InvalidateStoreSettings(ctx context.Context)
}
