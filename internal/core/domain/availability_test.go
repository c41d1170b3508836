package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/json_types"
)

func mustClock(t *testing.T, str string) json_types.ClockTime {
	t.Helper()
	clock, err := json_types.ParseClockTime(str)
	if err != nil {
		t.Fatalf("bad clock time %q: %v", str, err)
	}
	return clock
}

func clockList(t *testing.T, strs ...string) []json_types.ClockTime {
	t.Helper()
	slots := make([]json_types.ClockTime, 0, len(strs))
	for _, str := range strs {
		slots = append(slots, mustClock(t, str))
	}
	return slots
}

func assertSlots(t *testing.T, got []json_types.ClockTime, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d slots %v, got %d", len(want), want, len(got))
	}
	for i, slot := range got {
		if slot.String() != want[i] {
			t.Fatalf("slot %d: expected %s, got %s", i, want[i], slot.String())
		}
	}
}

func mustDate(t *testing.T, key string) json_types.Date {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", key, time.UTC)
	if err != nil {
		t.Fatalf("bad date key %q: %v", key, err)
	}
	return json_types.NewDate(parsed)
}

func TestValidateRejectsModePayloadMismatch(t *testing.T) {
	config := &AvailabilityConfig{
		SellerID: "seller-1",
		Mode:     AvailabilityModeWeekly,
		SingleDate: map[string][]json_types.ClockTime{
			"2024-03-20": clockList(t, "10:00"),
		},
	}

	err := config.Validate()
	var invalid *InvalidAvailabilityConfigError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidAvailabilityConfigError, got %v", err)
	}
}

func TestValidateRejectsUnknownMode(t *testing.T) {
	config := &AvailabilityConfig{SellerID: "seller-1", Mode: "monthly"}
	if err := config.Validate(); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestValidateRejectsDuplicateSlots(t *testing.T) {
	config := &AvailabilityConfig{
		SellerID: "seller-1",
		Mode:     AvailabilityModeSingleDate,
		SingleDate: map[string][]json_types.ClockTime{
			"2024-03-20": clockList(t, "10:00", "10:00"),
		},
	}

	if err := config.Validate(); err == nil {
		t.Fatal("expected error for duplicate slots")
	}
}

func TestValidateRejectsBadDateKey(t *testing.T) {
	config := &AvailabilityConfig{
		SellerID: "seller-1",
		Mode:     AvailabilityModeSingleDate,
		SingleDate: map[string][]json_types.ClockTime{
			"20/03/2024": clockList(t, "10:00"),
		},
	}

	if err := config.Validate(); err == nil {
		t.Fatal("expected error for bad date key")
	}
}

func TestValidateRejectsInvertedRange(t *testing.T) {
	config := &AvailabilityConfig{
		SellerID: "seller-1",
		Mode:     AvailabilityModeDateRange,
		DateRange: &DateRangeAvailability{
			Start: mustDate(t, "2024-03-20"),
			End:   mustDate(t, "2024-03-10"),
		},
	}

	if err := config.Validate(); err == nil {
		t.Fatal("expected error for range ending before start")
	}
}

func TestRawSlotsForSingleDate(t *testing.T) {
	config := &AvailabilityConfig{
		SellerID: "seller-1",
		Mode:     AvailabilityModeSingleDate,
		SingleDate: map[string][]json_types.ClockTime{
			"2024-03-20": clockList(t, "15:00", "14:00"),
		},
	}

	date := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	assertSlots(t, config.RawSlotsFor(date), "14:00", "15:00")

	other := time.Date(2024, 3, 21, 0, 0, 0, 0, time.UTC)
	if slots := config.RawSlotsFor(other); len(slots) != 0 {
		t.Fatalf("expected no slots for unlisted date, got %v", slots)
	}
}

func TestRawSlotsForWeekly(t *testing.T) {
	config := &AvailabilityConfig{
		SellerID: "seller-1",
		Mode:     AvailabilityModeWeekly,
		Weekly: map[Weekday]WeekdayAvailability{
			WeekdayMon: {Active: true, Slots: clockList(t, "09:00", "10:00")},
			WeekdayTue: {Active: false, Slots: clockList(t, "09:00")},
		},
	}

	monday := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)
	assertSlots(t, config.RawSlotsFor(monday), "09:00", "10:00")

	// День с active=false не отдает слоты
	tuesday := time.Date(2024, 3, 19, 0, 0, 0, 0, time.UTC)
	if slots := config.RawSlotsFor(tuesday); len(slots) != 0 {
		t.Fatalf("expected no slots for inactive weekday, got %v", slots)
	}

	sunday := time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)
	if slots := config.RawSlotsFor(sunday); len(slots) != 0 {
		t.Fatalf("expected no slots for unconfigured weekday, got %v", slots)
	}
}

func TestRawSlotsForDateRangeOverrideOnly(t *testing.T) {
	config := &AvailabilityConfig{
		SellerID: "seller-1",
		Mode:     AvailabilityModeDateRange,
		DateRange: &DateRangeAvailability{
			Start: mustDate(t, "2024-03-10"),
			End:   mustDate(t, "2024-03-30"),
			Overrides: map[string][]json_types.ClockTime{
				"2024-03-20": clockList(t, "11:00"),
			},
		},
	}

	withOverride := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	assertSlots(t, config.RawSlotsFor(withOverride), "11:00")

	// Дата внутри периода без override дает пустой набор, недельного fallback нет
	insideNoOverride := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if slots := config.RawSlotsFor(insideNoOverride); len(slots) != 0 {
		t.Fatalf("expected no slots inside range without override, got %v", slots)
	}

	outside := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	if slots := config.RawSlotsFor(outside); len(slots) != 0 {
		t.Fatalf("expected no slots outside range, got %v", slots)
	}

	// Границы включительно
	boundary := time.Date(2024, 3, 30, 0, 0, 0, 0, time.UTC)
	config.DateRange.Overrides["2024-03-30"] = clockList(t, "12:00")
	assertSlots(t, config.RawSlotsFor(boundary), "12:00")
}

func TestWeekdayOfSundayIndexZero(t *testing.T) {
	// 2024-03-17 воскресенье
	sunday := time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)
	if WeekdayOf(sunday) != WeekdaySun {
		t.Fatalf("expected sun, got %s", WeekdayOf(sunday))
	}
	if time.Sunday != 0 {
		t.Fatal("weekday indexing convention broken")
	}

	saturday := time.Date(2024, 3, 23, 0, 0, 0, 0, time.UTC)
	if WeekdayOf(saturday) != WeekdaySat {
		t.Fatalf("expected sat, got %s", WeekdayOf(saturday))
	}
}
