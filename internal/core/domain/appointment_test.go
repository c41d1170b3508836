package domain

import (
	"errors"
	"testing"
)

func TestAppointmentHappyPath(t *testing.T) {
	appointment := &Appointment{Status: AppointmentStatusRequested}

	steps := []AppointmentStatus{
		AppointmentStatusConfirmed,
		AppointmentStatusInProgress,
		AppointmentStatusCompleted,
	}

	for _, next := range steps {
		if err := appointment.Transition(next, ""); err != nil {
			t.Fatalf("transition to %s failed: %v", next, err)
		}
		if appointment.Status != next {
			t.Fatalf("expected status %s, got %s", next, appointment.Status)
		}
	}
}

func TestAppointmentCancelFromAnyNonTerminal(t *testing.T) {
	for _, from := range []AppointmentStatus{
		AppointmentStatusRequested,
		AppointmentStatusConfirmed,
		AppointmentStatusInProgress,
	} {
		appointment := &Appointment{Status: from}
		if err := appointment.Transition(AppointmentStatusCancelled, "buyer no-show"); err != nil {
			t.Fatalf("cancel from %s failed: %v", from, err)
		}
		if appointment.CancelReason != "buyer no-show" {
			t.Fatalf("reason not recorded, got %q", appointment.CancelReason)
		}
	}
}

func TestAppointmentCancelRequiresReason(t *testing.T) {
	appointment := &Appointment{Status: AppointmentStatusRequested}
	err := appointment.Transition(AppointmentStatusCancelled, "")
	if !errors.Is(err, ErrMissingReason) {
		t.Fatalf("expected ErrMissingReason, got %v", err)
	}
	if appointment.Status != AppointmentStatusRequested {
		t.Fatalf("status must not change on rejected cancel, got %s", appointment.Status)
	}
}

func TestAppointmentRecancelIsNoop(t *testing.T) {
	appointment := &Appointment{Status: AppointmentStatusCancelled, CancelReason: "first reason"}

	if err := appointment.Transition(AppointmentStatusCancelled, "second reason"); err != nil {
		t.Fatalf("re-cancel must be a no-op, got %v", err)
	}
	if appointment.CancelReason != "first reason" {
		t.Fatalf("re-cancel must not overwrite the reason, got %q", appointment.CancelReason)
	}
}

func TestAppointmentInvalidTransitions(t *testing.T) {
	cases := []struct {
		from AppointmentStatus
		to   AppointmentStatus
	}{
		{AppointmentStatusRequested, AppointmentStatusInProgress},
		{AppointmentStatusRequested, AppointmentStatusCompleted},
		{AppointmentStatusConfirmed, AppointmentStatusCompleted},
		{AppointmentStatusCompleted, AppointmentStatusCancelled},
		{AppointmentStatusCompleted, AppointmentStatusConfirmed},
		{AppointmentStatusCancelled, AppointmentStatusConfirmed},
	}

	for _, tc := range cases {
		appointment := &Appointment{Status: tc.from}
		err := appointment.Transition(tc.to, "reason")

		var invalid *InvalidTransitionError
		if !errors.As(err, &invalid) {
			t.Fatalf("%s -> %s: expected InvalidTransitionError, got %v", tc.from, tc.to, err)
		}
		if appointment.Status != tc.from {
			t.Fatalf("%s -> %s: status must not change, got %s", tc.from, tc.to, appointment.Status)
		}
	}
}

func TestAppointmentStatusBlocksSlot(t *testing.T) {
	blocking := map[AppointmentStatus]bool{
		AppointmentStatusRequested:  true,
		AppointmentStatusConfirmed:  true,
		AppointmentStatusInProgress: true,
		AppointmentStatusCompleted:  false,
		AppointmentStatusCancelled:  false,
	}

	for status, want := range blocking {
		if status.BlocksSlot() != want {
			t.Fatalf("%s: expected BlocksSlot=%v", status, want)
		}
	}
}
