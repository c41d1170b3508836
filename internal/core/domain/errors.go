package domain

import (
	"errors"
	"fmt"
)

// Бизнес-ошибки ядра. Инфраструктурные ошибки бэкенда сюда не попадают,
// адаптеры пробрасывают их как есть.
var (
	// Слот занят на момент записи. Ожидаемая ошибка при конкурентном бронировании.
	ErrSlotUnavailable = errors.New("slot unavailable")

	// Отмена визита без указания причины
	ErrMissingReason = errors.New("cancellation reason is required")
)

// InvalidAvailabilityConfigError возвращается при конструировании конфигурации
// доступности, у которой mode не соответствует заполненным полям или слоты невалидны.
type InvalidAvailabilityConfigError struct {
	Reason string
}

func (e *InvalidAvailabilityConfigError) Error() string {
	return fmt.Sprintf("invalid availability config: %s", e.Reason)
}

// InvalidTransitionError возвращается при недопустимом переходе статуса визита.
type InvalidTransitionError struct {
	From AppointmentStatus
	To   AppointmentStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid appointment transition: %s -> %s", e.From, e.To)
}
