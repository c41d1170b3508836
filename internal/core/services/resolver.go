package services

import (
	"time"

	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/domain"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/json_types"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/utils"
)

// ResolveAvailableSlots - чистая функция подбора слотов для брони.
// Порядок фильтров фиксирован: закрытые даты площадки, рабочие дни,
// сырые слоты продавца, часы работы, занятые визиты.
// Детерминирована, результат всегда по возрастанию.
func ResolveAvailableSlots(
	settings *domain.StoreSettings,
	config *domain.AvailabilityConfig,
	appointments []domain.Appointment,
	date time.Time,
) []json_types.ClockTime {
	dateKey := utils.DateKey(date)

	if settings.IsBlockedDate(dateKey) {
		return nil
	}

	if !settings.IsWorkingDay(domain.WeekdayOf(date)) {
		return nil
	}

	raw := config.RawSlotsFor(date)
	if len(raw) == 0 {
		return nil
	}

	slots := make([]json_types.ClockTime, 0, len(raw))
	for _, slot := range raw {
		if !settings.BusinessHours.Contains(slot) {
			continue
		}
		if slotTaken(appointments, config.SellerID, dateKey, slot) {
			continue
		}
		slots = append(slots, slot)
	}

	if len(slots) == 0 {
		return nil
	}
	return slots
}

func slotTaken(appointments []domain.Appointment, sellerID, dateKey string, slot json_types.ClockTime) bool {
	for _, appointment := range appointments {
		if !appointment.Status.BlocksSlot() {
			continue
		}
		if appointment.SellerID != sellerID {
			continue
		}
		if appointment.Date.Key() != dateKey {
			continue
		}
		if appointment.Time.Equal(slot) {
			return true
		}
	}
	return false
}
