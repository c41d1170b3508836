package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/domain"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/json_types"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/ports/out"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/utils"
)

type VisitSchedulerService struct {
	storePort out.StorePort
	cachePort out.CachePort
	logger    out.LoggerPort
}

func NewVisitSchedulerService(
	storePort out.StorePort,
	cachePort out.CachePort,
	logger out.LoggerPort,
) *VisitSchedulerService {
	return &VisitSchedulerService{
		storePort: storePort,
		cachePort: cachePort,
		logger:    logger.WithModule("VisitSchedulerService"),
	}
}

func (s *VisitSchedulerService) AvailableSlots(ctx context.Context, sellerID string, date time.Time) ([]json_types.ClockTime, error) {
	s.logger.Info("slots.available.started", out.LogFields{
		"sellerId": sellerID,
		"date":     utils.DateKey(date),
	})

	settings, err := s.getStoreSettings(ctx)
	if err != nil {
		s.logger.Error("slots.available.settings.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("slots.available.settings.fetch_failed: %w", err)
	}

	config, err := s.getAvailabilityConfig(ctx, sellerID)
	if err != nil {
		s.logger.Error("slots.available.config.fetch_failed", out.LogFields{
			"sellerId": sellerID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("slots.available.config.fetch_failed: %w", err)
	}

	appointments, err := s.storePort.GetSellerAppointments(ctx, sellerID, utils.StartCurrentDay(date))
	if err != nil {
		s.logger.Error("slots.available.appointments.fetch_failed", out.LogFields{
			"sellerId": sellerID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("slots.available.appointments.fetch_failed: %w", err)
	}

	slots := ResolveAvailableSlots(settings, config, appointments, date)

	s.logger.Debug("slots.available.resolved", out.LogFields{
		"sellerId":   sellerID,
		"date":       utils.DateKey(date),
		"slotsCount": len(slots),
	})

	return slots, nil
}

// AvailableSlotsRange собирает слоты по дням периода для календаря брони.
// Дни обсчитываются конкурентно, пул ограничен чтобы не заваливать бэкенд.
func (s *VisitSchedulerService) AvailableSlotsRange(ctx context.Context, sellerID string, startDate, endDate time.Time) (map[string][]json_types.ClockTime, error) {
	start := utils.StartCurrentDay(startDate)
	end := utils.StartCurrentDay(endDate)
	if end.Before(start) {
		return nil, &utils.InvalidDateError{Value: utils.DateKey(endDate)}
	}

	result := make(map[string][]json_types.ClockTime)
	var mu sync.Mutex
	var wg sync.WaitGroup
	errCh := make(chan error, 1)

	workerPool := make(chan struct{}, 10)

	for day := start; !day.After(end); day = utils.StartNextDay(day) {
		wg.Add(1)
		workerPool <- struct{}{}

		go func(day time.Time) {
			defer func() {
				<-workerPool
				wg.Done()
			}()

			slots, err := s.AvailableSlots(ctx, sellerID, day)
			if err != nil {
				select {
				case errCh <- err:
				default:
				}
				return
			}

			mu.Lock()
			result[utils.DateKey(day)] = slots
			mu.Unlock()
		}(day)
	}

	wg.Wait()

	select {
	case err := <-errCh:
		return nil, err
	default:
	}

	return result, nil
}

// CreateAppointment перепроверяет слот по текущим визитам и пишет бронь в бэкенд.
// Перепроверка - оптимистичная подсказка: гонку двух покупателей за один слот
// разрешает уникальность на стороне бэкенда, конфликт приходит как
// domain.ErrSlotUnavailable.
func (s *VisitSchedulerService) CreateAppointment(ctx context.Context, vehicleID uuid.UUID, buyerID, sellerID string, date time.Time, slot json_types.ClockTime) (*domain.Appointment, error) {
	s.logger.Info("appointment.create.started", out.LogFields{
		"sellerId":  sellerID,
		"vehicleId": vehicleID,
		"date":      utils.DateKey(date),
		"time":      slot.String(),
	})

	listing, err := s.storePort.GetListing(ctx, vehicleID)
	if err != nil {
		s.logger.Error("appointment.create.listing.fetch_failed", out.LogFields{
			"vehicleId": vehicleID,
			"error":     err.Error(),
		})
		return nil, fmt.Errorf("appointment.create.listing.fetch_failed: %w", err)
	}

	if !listing.IsBookable() {
		s.logger.Warn("appointment.create.listing.not_bookable", out.LogFields{
			"vehicleId": vehicleID,
			"status":    listing.Status,
		})
		return nil, fmt.Errorf("listing %s is not bookable: status %s", vehicleID, listing.Status)
	}

	slots, err := s.AvailableSlots(ctx, sellerID, date)
	if err != nil {
		return nil, err
	}

	if !containsSlot(slots, slot) {
		s.logger.Warn("appointment.create.slot_unavailable", out.LogFields{
			"sellerId": sellerID,
			"date":     utils.DateKey(date),
			"time":     slot.String(),
		})
		return nil, domain.ErrSlotUnavailable
	}

	appointment := &domain.Appointment{
		ID:        uuid.New(),
		VehicleID: vehicleID,
		BuyerID:   buyerID,
		SellerID:  sellerID,
		Date:      json_types.NewDate(date),
		Time:      slot,
		Status:    domain.AppointmentStatusRequested,
		CreatedAt: time.Now(),
	}

	if err := s.storePort.CreateAppointment(ctx, appointment); err != nil {
		s.logger.Error("appointment.create.store_failed", out.LogFields{
			"sellerId": sellerID,
			"date":     utils.DateKey(date),
			"time":     slot.String(),
			"error":    err.Error(),
		})
		return nil, err
	}

	s.logger.Info("appointment.create.success", out.LogFields{
		"appointmentId": appointment.ID,
	})

	return appointment, nil
}

func (s *VisitSchedulerService) TransitionAppointment(ctx context.Context, appointmentID uuid.UUID, to domain.AppointmentStatus, reason string) (*domain.Appointment, error) {
	appointment, err := s.storePort.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		s.logger.Error("appointment.transition.fetch_failed", out.LogFields{
			"appointmentId": appointmentID,
			"error":         err.Error(),
		})
		return nil, fmt.Errorf("appointment.transition.fetch_failed: %w", err)
	}

	from := appointment.Status
	if err := appointment.Transition(to, reason); err != nil {
		s.logger.Warn("appointment.transition.rejected", out.LogFields{
			"appointmentId": appointmentID,
			"from":          from,
			"to":            to,
			"error":         err.Error(),
		})
		return nil, err
	}

	// Повторная отмена ничего не меняет, запись в бэкенд не нужна
	if appointment.Status == from {
		return appointment, nil
	}

	if err := s.storePort.UpdateAppointment(ctx, appointment); err != nil {
		s.logger.Error("appointment.transition.store_failed", out.LogFields{
			"appointmentId": appointmentID,
			"error":         err.Error(),
		})
		return nil, err
	}

	s.logger.Info("appointment.transition.success", out.LogFields{
		"appointmentId": appointmentID,
		"from":          from,
		"to":            appointment.Status,
	})

	return appointment, nil
}

func (s *VisitSchedulerService) getStoreSettings(ctx context.Context) (*domain.StoreSettings, error) {
	if s.cachePort != nil {
		if settings, exists := s.cachePort.GetStoreSettings(ctx); exists {
			return settings, nil
		}
		s.logger.Debug("storesettings.cache.miss", out.LogFields{})
	}

	settings, err := s.storePort.GetStoreSettings(ctx)
	if err != nil {
		return nil, err
	}

	if s.cachePort != nil {
		s.cachePort.StoreStoreSettings(ctx, *settings)
	}

	return settings, nil
}

func (s *VisitSchedulerService) getAvailabilityConfig(ctx context.Context, sellerID string) (*domain.AvailabilityConfig, error) {
	if s.cachePort != nil {
		if config, exists := s.cachePort.GetAvailabilityConfig(ctx, sellerID); exists {
			return config, nil
		}
		s.logger.Debug("availabilityconfig.cache.miss", out.LogFields{
			"sellerId": sellerID,
		})
	}

	config, err := s.storePort.GetAvailabilityConfig(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	if s.cachePort != nil {
		s.cachePort.StoreAvailabilityConfig(ctx, *config)
	}

	return config, nil
}

func (s *VisitSchedulerService) InvalidateSellerCache(ctx context.Context, sellerID string) {
	if s.cachePort == nil {
		return
	}
	s.cachePort.InvalidateAvailabilityConfig(ctx, sellerID)
}

func (s *VisitSchedulerService) InvalidateStoreSettingsCache(ctx context.Context) {
	if s.cachePort == nil {
		return
	}
	s.cachePort.InvalidateStoreSettings(ctx)
}

func (s *VisitSchedulerService) InvalidateAllCache(ctx context.Context) {
	if s.cachePort == nil {
		return
	}
	s.cachePort.InvalidateAllAvailabilityConfigs(ctx)
	s.cachePort.InvalidateStoreSettings(ctx)
}

func containsSlot(slots []json_types.ClockTime, slot json_types.ClockTime) bool {
	for _, candidate := range slots {
		if candidate.Equal(slot) {
			return true
		}
	}
	return false
}
