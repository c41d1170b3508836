package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/json_types"
)

type AppointmentStatus string

const (
	AppointmentStatusRequested  AppointmentStatus = "requested"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
)

// Разрешенные переходы статусов. completed и cancelled терминальные.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusRequested:  {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed:  {AppointmentStatusInProgress, AppointmentStatusCancelled},
	AppointmentStatusInProgress: {AppointmentStatusCompleted, AppointmentStatusCancelled},
}

func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// BlocksSlot сообщает, держит ли визит в этом статусе свой слот.
// Отмененные и завершенные визиты слот освобождают.
func (s AppointmentStatus) BlocksSlot() bool {
	return s == AppointmentStatusRequested ||
		s == AppointmentStatusConfirmed ||
		s == AppointmentStatusInProgress
}

// Appointment - визит покупателя к продавцу для осмотра автомобиля.
// Не более одного неотмененного визита на тройку (sellerId, date, time),
// уникальность авторитетно проверяет бэкенд при записи.
type Appointment struct {
	ID           uuid.UUID            `json:"id"`
	VehicleID    uuid.UUID            `json:"vehicleId"`
	BuyerID      string               `json:"buyerId"`
	SellerID     string               `json:"sellerId"`
	Date         json_types.Date      `json:"date"`
	Time         json_types.ClockTime `json:"time"`
	Status       AppointmentStatus    `json:"status"`
	CancelReason string               `json:"cancelReason,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
}

// Transition переводит визит в новый статус по таблице переходов.
// Повторная отмена уже отмененного визита - no-op, не ошибка.
// Отмена требует причину.
func (a *Appointment) Transition(to AppointmentStatus, reason string) error {
	if a.Status == AppointmentStatusCancelled && to == AppointmentStatusCancelled {
		return nil
	}

	allowed, ok := appointmentTransitions[a.Status]
	if !ok || !slices.Contains(allowed, to) {
		return &InvalidTransitionError{From: a.Status, To: to}
	}

	if to == AppointmentStatusCancelled {
		if reason == "" {
			return ErrMissingReason
		}
		a.CancelReason = reason
	}

	a.Status = to
	return nil
}
