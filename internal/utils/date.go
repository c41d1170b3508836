package utils

import (
	"fmt"
	"regexp"
	"time"
)

var dateKeyRegexp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// InvalidDateError возвращается, когда строку нельзя разобрать как календарную дату.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date: %q", e.Value)
}

// DateKey нормализует дату в канонический ключ YYYY-MM-DD.
// Сравнение дат в сервисе везде идет по этому ключу, только по календарному дню.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseDateKey разбирает ключ YYYY-MM-DD обратно в дату (полночь, UTC).
// Ключи с несуществующими датами (2024-02-30) отклоняются.
func ParseDateKey(str string) (time.Time, error) {
	if !dateKeyRegexp.MatchString(str) {
		return time.Time{}, &InvalidDateError{Value: str}
	}

	parsedDate, err := time.ParseInLocation("2006-01-02", str, time.UTC)
	if err != nil {
		return time.Time{}, &InvalidDateError{Value: str}
	}

	// time.Parse молча переносит 2024-02-30 на март, поэтому сверяем обратно
	if DateKey(parsedDate) != str {
		return time.Time{}, &InvalidDateError{Value: str}
	}

	return parsedDate, nil
}

// StartCurrentDay обнуляет время, оставляя таймзону прежней.
func StartCurrentDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartNextDay возвращает новую дату, где день увеличен на 1, а время установлено на 00:00.
func StartNextDay(t time.Time) time.Time {
	newDate := t.AddDate(0, 0, 1)
	return time.Date(newDate.Year(), newDate.Month(), newDate.Day(), 0, 0, 0, 0, newDate.Location())
}
