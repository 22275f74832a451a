package engine

import (
	"time"

	"github.com/tartampluch/go-age/internal/config"
)

// WeekdayFormatter renders a weekday for display. Implementations are locale-aware.
type WeekdayFormatter interface {
	FormatWeekday(w time.Weekday) string
}

// EnglishWeekdays formats weekdays with their English names.
type EnglishWeekdays struct{}

// FormatWeekday returns the English weekday name.
func (EnglishWeekdays) FormatWeekday(w time.Weekday) string {
	return w.String()
}

// WeekdayName returns the localized weekday the date falls on.
// A nil formatter falls back to English names.
func WeekdayName(d CalendarDate, f WeekdayFormatter) string {
	if f == nil {
		f = EnglishWeekdays{}
	}
	return f.FormatWeekday(d.Weekday())
}

type zodiacRange struct {
	name       string
	startMonth time.Month
	startDay   int
	endMonth   time.Month
	endDay     int
}

// zodiacTable lists each sign with its inclusive first and last day.
var zodiacTable = []zodiacRange{
	{config.ZodiacCapricorn, time.December, 22, time.January, 19},
	{config.ZodiacAquarius, time.January, 20, time.February, 18},
	{config.ZodiacPisces, time.February, 19, time.March, 20},
	{config.ZodiacAries, time.March, 21, time.April, 19},
	{config.ZodiacTaurus, time.April, 20, time.May, 20},
	{config.ZodiacGemini, time.May, 21, time.June, 20},
	{config.ZodiacCancer, time.June, 21, time.July, 22},
	{config.ZodiacLeo, time.July, 23, time.August, 22},
	{config.ZodiacVirgo, time.August, 23, time.September, 22},
	{config.ZodiacLibra, time.September, 23, time.October, 22},
	{config.ZodiacScorpio, time.October, 23, time.November, 21},
	{config.ZodiacSagittarius, time.November, 22, time.December, 21},
}

// ZodiacSigns returns the sign names in table order, starting with Capricorn.
func ZodiacSigns() []string {
	names := make([]string, 0, len(zodiacTable))
	for _, z := range zodiacTable {
		names = append(names, z.name)
	}
	return names
}

// ZodiacSign maps a month/day to its western zodiac sign.
// It returns config.ZodiacUnknown when no range matches.
func ZodiacSign(month time.Month, day int) string {
	for _, z := range zodiacTable {
		if (month == z.startMonth && day >= z.startDay) || (month == z.endMonth && day <= z.endDay) {
			return z.name
		}
	}
	return config.ZodiacUnknown
}
