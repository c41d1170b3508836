package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date хранит календарный день без времени и таймзоны.
// Сериализуется строго в формате YYYY-MM-DD, это контракт с бэкендом.
type Date struct {
	Date time.Time
}

func NewDate(t time.Time) Date {
	return Date{Date: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d *Date) UnmarshalJSON(data []byte) error {
	// Убираем кавычки вокруг строки
	str := string(data[1 : len(data)-1])

	parsedDate, err := time.ParseInLocation("2006-01-02", str, time.UTC)
	if err != nil {
		return fmt.Errorf("failed to parse date: %v", err)
	}

	*d = Date{Date: parsedDate}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Date.Format("2006-01-02"))
}

func (d Date) Key() string {
	return d.Date.Format("2006-01-02")
}

func (d Date) IsZero() bool {
	return d.Date.IsZero()
}

// Сравнение только по календарному дню
func (d Date) Before(other Date) bool {
	return d.Key() < other.Key()
}

func (d Date) Equal(other Date) bool {
	return d.Key() == other.Key()
}
