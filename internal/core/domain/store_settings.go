package domain

import (
	"slices"

	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/json_types"
)

type BusinessHours struct {
	Start json_types.ClockTime `json:"start"`
	End   json_types.ClockTime `json:"end"`
}

// Contains проверяет попадание слота в часы работы, интервал полуоткрытый [start, end).
func (h BusinessHours) Contains(t json_types.ClockTime) bool {
	if t.Before(h.Start) {
		return false
	}
	return t.Before(h.End)
}

// StoreSettings - общие настройки площадки, одна активная запись.
// Загружаются из бэкенда и меняются редко, обновление делает внешняя админка.
type StoreSettings struct {
	ID            string        `json:"id"`
	WorkingDays   []Weekday     `json:"workingDays"`
	BusinessHours BusinessHours `json:"businessHours"`
	// Праздники и прочие закрытые дни, ключи YYYY-MM-DD.
	// Перекрывают любую конфигурацию продавца.
	BlockedDates []string `json:"blockedDates"`
}

func (s *StoreSettings) IsWorkingDay(day Weekday) bool {
	return slices.Contains(s.WorkingDays, day)
}

func (s *StoreSettings) IsBlockedDate(dateKey string) bool {
	return slices.Contains(s.BlockedDates, dateKey)
}
