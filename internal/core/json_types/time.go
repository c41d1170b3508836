package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

// ClockTime хранит время суток слота.
// Сериализуется строго в формате HH:MM (24 часа), это контракт с бэкендом.
type ClockTime struct {
	Time time.Time
}

func (t *ClockTime) UnmarshalJSON(data []byte) error {
	// Убираем кавычки вокруг строки
	str := string(data[1 : len(data)-1])

	parsed, err := ParseClockTime(str)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

func (t ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func ParseClockTime(str string) (ClockTime, error) {
	parsedTime, err := time.Parse("15:04", str)
	if err != nil {
		return ClockTime{}, fmt.Errorf("failed to parse time: %v", err)
	}
	return ClockTime{Time: parsedTime}, nil
}

func (t ClockTime) String() string {
	return t.Time.Format("15:04")
}

func (t ClockTime) Before(other ClockTime) bool {
	return t.Time.Before(other.Time)
}

func (t ClockTime) Equal(other ClockTime) bool {
	return t.Time.Equal(other.Time)
}
