package domain

import "time"

type Weekday string

const (
	WeekdaySun Weekday = "sun"
	WeekdayMon Weekday = "mon"
	WeekdayTue Weekday = "tue"
	WeekdayWed Weekday = "wed"
	WeekdayThu Weekday = "thu"
	WeekdayFri Weekday = "fri"
	WeekdaySat Weekday = "sat"
)

// Индексация недели фиксирована: воскресенье = 0, совпадает с time.Weekday
// и с ключами weekly-конфигурации.
var WeekdayMap = map[time.Weekday]Weekday{
	time.Sunday:    WeekdaySun,
	time.Monday:    WeekdayMon,
	time.Tuesday:   WeekdayTue,
	time.Wednesday: WeekdayWed,
	time.Thursday:  WeekdayThu,
	time.Friday:    WeekdayFri,
	time.Saturday:  WeekdaySat,
}

func WeekdayOf(t time.Time) Weekday {
	return WeekdayMap[t.Weekday()]
}
