package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/json_types"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/utils"
)

type AvailabilityMode string

const (
	AvailabilityModeSingleDate AvailabilityMode = "single-date"
	AvailabilityModeWeekly     AvailabilityMode = "weekly"
	AvailabilityModeDateRange  AvailabilityMode = "date-range"
)

type WeekdayAvailability struct {
	Active bool                   `json:"active"`
	Slots  []json_types.ClockTime `json:"slots"`
}

type DateRangeAvailability struct {
	Start json_types.Date `json:"start"`
	End   json_types.Date `json:"end"`
	// Слоты по конкретным датам внутри периода, ключ YYYY-MM-DD
	Overrides map[string][]json_types.ClockTime `json:"overrides"`
}

// AvailabilityConfig - конфигурация доступности продавца, одна на продавца.
// Mode определяет, какое из трех полей заполнено; остальные обязаны быть пустыми.
//
// В режиме date-range слоты берутся только из overrides: дата внутри периода
// без override дает пустой набор, недельного fallback нет. Это осознанное
// решение, а не пропуск.
type AvailabilityConfig struct {
	SellerID   string                            `json:"sellerId"`
	Mode       AvailabilityMode                  `json:"mode"`
	SingleDate map[string][]json_types.ClockTime `json:"singleDate,omitempty"`
	Weekly     map[Weekday]WeekdayAvailability   `json:"weekly,omitempty"`
	DateRange  *DateRangeAvailability            `json:"dateRange,omitempty"`
}

// Validate проверяет соответствие mode заполненным полям и инварианты слотов.
func (c *AvailabilityConfig) Validate() error {
	switch c.Mode {
	case AvailabilityModeSingleDate:
		if c.Weekly != nil || c.DateRange != nil {
			return &InvalidAvailabilityConfigError{Reason: "single-date config carries weekly or date-range payload"}
		}
		for key, slots := range c.SingleDate {
			if _, err := utils.ParseDateKey(key); err != nil {
				return &InvalidAvailabilityConfigError{Reason: fmt.Sprintf("bad date key %q", key)}
			}
			if err := validateSlots(slots); err != nil {
				return err
			}
		}
	case AvailabilityModeWeekly:
		if c.SingleDate != nil || c.DateRange != nil {
			return &InvalidAvailabilityConfigError{Reason: "weekly config carries single-date or date-range payload"}
		}
		for day, entry := range c.Weekly {
			if _, ok := weekdayTags[day]; !ok {
				return &InvalidAvailabilityConfigError{Reason: fmt.Sprintf("unknown weekday %q", day)}
			}
			if err := validateSlots(entry.Slots); err != nil {
				return err
			}
		}
	case AvailabilityModeDateRange:
		if c.SingleDate != nil || c.Weekly != nil {
			return &InvalidAvailabilityConfigError{Reason: "date-range config carries single-date or weekly payload"}
		}
		if c.DateRange == nil {
			return &InvalidAvailabilityConfigError{Reason: "date-range config without range payload"}
		}
		if c.DateRange.End.Before(c.DateRange.Start) {
			return &InvalidAvailabilityConfigError{Reason: "date range ends before it starts"}
		}
		for key, slots := range c.DateRange.Overrides {
			if _, err := utils.ParseDateKey(key); err != nil {
				return &InvalidAvailabilityConfigError{Reason: fmt.Sprintf("bad override date key %q", key)}
			}
			if err := validateSlots(slots); err != nil {
				return err
			}
		}
	default:
		return &InvalidAvailabilityConfigError{Reason: fmt.Sprintf("unknown mode %q", c.Mode)}
	}

	return nil
}

// RawSlotsFor возвращает сырой набор слотов продавца для даты,
// до применения часов работы, выходных магазина и занятых визитов.
// Слоты всегда отсортированы по возрастанию.
func (c *AvailabilityConfig) RawSlotsFor(date time.Time) []json_types.ClockTime {
	key := utils.DateKey(date)

	var slots []json_types.ClockTime

	switch c.Mode {
	case AvailabilityModeSingleDate:
		slots = c.SingleDate[key]
	case AvailabilityModeWeekly:
		entry, ok := c.Weekly[WeekdayOf(date)]
		if ok && entry.Active {
			slots = entry.Slots
		}
	case AvailabilityModeDateRange:
		if c.DateRange == nil {
			return nil
		}
		if key < c.DateRange.Start.Key() || key > c.DateRange.End.Key() {
			return nil
		}
		slots = c.DateRange.Overrides[key]
	}

	return sortedSlots(slots)
}

var weekdayTags = map[Weekday]struct{}{
	WeekdaySun: {}, WeekdayMon: {}, WeekdayTue: {}, WeekdayWed: {},
	WeekdayThu: {}, WeekdayFri: {}, WeekdaySat: {},
}

func validateSlots(slots []json_types.ClockTime) error {
	seen := make(map[string]struct{}, len(slots))
	for _, slot := range slots {
		str := slot.String()
		if _, ok := seen[str]; ok {
			return &InvalidAvailabilityConfigError{Reason: fmt.Sprintf("duplicate slot %s", str)}
		}
		seen[str] = struct{}{}
	}
	return nil
}

func sortedSlots(slots []json_types.ClockTime) []json_types.ClockTime {
	if len(slots) == 0 {
		return nil
	}

	sorted := make([]json_types.ClockTime, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Before(sorted[j])
	})
	return sorted
}
