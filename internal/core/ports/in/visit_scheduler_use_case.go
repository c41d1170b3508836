package in

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/domain"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/json_types"
)

type VisitSchedulerUseCase interface {
	// Доступные слоты продавца на один день
	AvailableSlots(ctx context.Context, sellerID string, date time.Time) ([]json_types.ClockTime, error)

	// Доступные слоты продавца на период, ключ результата YYYY-MM-DD
	AvailableSlotsRange(ctx context.Context, sellerID string, startDate, endDate time.Time) (map[string][]json_types.ClockTime, error)

	// Создание визита. Слот перепроверяется, но авторитетная проверка
	// уникальности происходит на записи в бэкенд.
	CreateAppointment(ctx context.Context, vehicleID uuid.UUID, buyerID, sellerID string, date time.Time, slot json_types.ClockTime) (*domain.Appointment, error)

	// Перевод визита по жизненному циклу
	TransitionAppointment(ctx context.Context, appointmentID uuid.UUID, to domain.AppointmentStatus, reason string) (*domain.Appointment, error)

	// Инвалидация кэшей по событиям из ленты изменений бэкенда
	InvalidateSellerCache(ctx context.Context, sellerID string)
	InvalidateStoreSettingsCache(ctx context.Context)
	InvalidateAllCache(ctx context.Context)
}

type ListingUseCase interface {
	CreateListing(ctx context.Context, listing *domain.VehicleListing) (*domain.VehicleListing, error)
	GetListing(ctx context.Context, listingID uuid.UUID) (*domain.VehicleListing, error)
	SellerListings(ctx context.Context, sellerID string) ([]domain.VehicleListing, error)
	UpdateListing(ctx context.Context, listing *domain.VehicleListing) (*domain.VehicleListing, error)
	ChangeListingStatus(ctx context.Context, listingID uuid.UUID, to domain.ListingStatus) (*domain.VehicleListing, error)
}
