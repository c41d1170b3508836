package utils

import (
	"errors"
	"testing"
	"time"
)

func TestDateKeyRoundTrip(t *testing.T) {
	original := time.Date(2024, 3, 20, 17, 45, 12, 0, time.UTC)

	key := DateKey(original)
	if key != "2024-03-20" {
		t.Fatalf("expected key 2024-03-20, got %s", key)
	}

	parsed, err := ParseDateKey(key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if DateKey(parsed) != key {
		t.Fatalf("round trip changed the calendar day: %s -> %s", key, DateKey(parsed))
	}
}

func TestParseDateKeyRejectsMalformed(t *testing.T) {
	for _, input := range []string{"", "20-03-2024", "2024/03/20", "2024-3-20", "not-a-date", "2024-03-20T10:00:00"} {
		_, err := ParseDateKey(input)
		if err == nil {
			t.Fatalf("expected error for %q", input)
		}

		var invalidDate *InvalidDateError
		if !errors.As(err, &invalidDate) {
			t.Fatalf("expected InvalidDateError for %q, got %T", input, err)
		}
	}
}

func TestParseDateKeyRejectsImpossibleDates(t *testing.T) {
	for _, input := range []string{"2024-02-30", "2023-02-29", "2024-13-01", "2024-04-31"} {
		if _, err := ParseDateKey(input); err == nil {
			t.Fatalf("expected error for impossible date %q", input)
		}
	}
}

func TestParseDateKeyLeapDay(t *testing.T) {
	parsed, err := ParseDateKey("2024-02-29")
	if err != nil {
		t.Fatalf("2024 is a leap year, unexpected error: %v", err)
	}
	if parsed.Day() != 29 || parsed.Month() != time.February {
		t.Fatalf("expected Feb 29, got %s", parsed.Format("2006-01-02"))
	}
}

func TestStartCurrentDay(t *testing.T) {
	moment := time.Date(2024, 3, 20, 17, 45, 12, 999, time.UTC)
	start := StartCurrentDay(moment)
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Fatalf("expected midnight, got %s", start)
	}
	if start.Day() != 20 {
		t.Fatalf("day changed: %d", start.Day())
	}
}

func TestStartNextDay(t *testing.T) {
	moment := time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC)
	next := StartNextDay(moment)
	if DateKey(next) != "2024-04-01" {
		t.Fatalf("expected 2024-04-01, got %s", DateKey(next))
	}
	if next.Hour() != 0 {
		t.Fatalf("expected midnight, got hour %d", next.Hour())
	}
}
