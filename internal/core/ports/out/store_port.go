package out

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/domain"
)

// StorePort - персистентность поверх управляемого документного бэкенда.
// Бэкенд авторитетно держит уникальность (sellerId, date, time) среди
// неотмененных визитов: CreateAppointment при конфликте возвращает
// domain.ErrSlotUnavailable. Инфраструктурные ошибки пробрасываются как есть.
type StorePort interface {
	// Настройки площадки, единственная активная запись
	GetStoreSettings(ctx context.Context) (*domain.StoreSettings, error)

	// Конфигурация доступности продавца
	GetAvailabilityConfig(ctx context.Context, sellerID string) (*domain.AvailabilityConfig, error)

	// Методы для работы с визитами
	GetSellerAppointments(ctx context.Context, sellerID string, date time.Time) ([]domain.Appointment, error)
	GetAppointmentByID(ctx context.Context, appointmentID uuid.UUID) (*domain.Appointment, error)
	CreateAppointment(ctx context.Context, appointment *domain.Appointment) error
	UpdateAppointment(ctx context.Context, appointment *domain.Appointment) error

	// Методы для работы с объявлениями
	GetListing(ctx context.Context, listingID uuid.UUID) (*domain.VehicleListing, error)
	GetSellerListings(ctx context.Context, sellerID string) ([]domain.VehicleListing, error)
	CreateListing(ctx context.Context, listing *domain.VehicleListing) error
	UpdateListing(ctx context.Context, listing *domain.VehicleListing) error
}
