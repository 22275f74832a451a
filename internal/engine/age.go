package engine

import (
	"fmt"
	"time"
)

// Millisecond sizes of the flat units. All totals use integer arithmetic.
const (
	msPerSecond = int64(time.Second / time.Millisecond)
	msPerMinute = int64(time.Minute / time.Millisecond)
	msPerHour   = int64(time.Hour / time.Millisecond)
	msPerDay    = 24 * msPerHour
	daysPerWeek = 7
)

// NextBirthday is the projection of the upcoming anniversary.
type NextBirthday struct {
	Date      CalendarDate `json:"date" yaml:"date"`
	DaysUntil int          `json:"days_until" yaml:"days_until"`
	// Turns is the age reached on Date.
	Turns int `json:"turns" yaml:"turns"`
}

// AgeReport is the immutable result of one computation.
// The calendar decomposition and the flat totals are independent views of the
// same interval and are not expected to reconcile.
type AgeReport struct {
	Birth CalendarDate `json:"birth_date" yaml:"birth_date"`

	Years  int `json:"years" yaml:"years"`
	Months int `json:"months" yaml:"months"`
	Days   int `json:"days" yaml:"days"`

	TotalDays    int64 `json:"total_days" yaml:"total_days"`
	TotalWeeks   int64 `json:"total_weeks" yaml:"total_weeks"`
	TotalHours   int64 `json:"total_hours" yaml:"total_hours"`
	TotalMinutes int64 `json:"total_minutes" yaml:"total_minutes"`
	TotalSeconds int64 `json:"total_seconds" yaml:"total_seconds"`

	LeapYears    int          `json:"leap_years" yaml:"leap_years"`
	NextBirthday NextBirthday `json:"next_birthday" yaml:"next_birthday"`

	Weekday time.Weekday `json:"-" yaml:"-"`
	Zodiac  string       `json:"zodiac" yaml:"zodiac"`
}

// Compute converts (birth, now) into an AgeReport.
// It has no side effects: identical inputs always yield identical reports.
func Compute(birth CalendarDate, now time.Time) (AgeReport, error) {
	if !birth.Valid() {
		return AgeReport{}, fmt.Errorf("%w: %w: %s", ErrCalculationFailure, ErrInvalidDate, birth)
	}

	today := DateOf(now)
	if birth.After(today) {
		return AgeReport{}, fmt.Errorf("%w: %s after %s", ErrInvalidRange, birth, today)
	}

	years, months, days := decompose(birth, today)

	deltaMillis := now.Sub(birth.Midnight(now.Location())).Milliseconds()
	totalDays := floorDiv(deltaMillis, msPerDay)

	return AgeReport{
		Birth:        birth,
		Years:        years,
		Months:       months,
		Days:         days,
		TotalDays:    totalDays,
		TotalWeeks:   floorDiv(totalDays, daysPerWeek),
		TotalHours:   floorDiv(deltaMillis, msPerHour),
		TotalMinutes: floorDiv(deltaMillis, msPerMinute),
		TotalSeconds: floorDiv(deltaMillis, msPerSecond),
		LeapYears:    CountLeapYears(birth.Year, today.Year),
		NextBirthday: ProjectNextBirthday(birth, now),
		Weekday:      birth.Weekday(),
		Zodiac:       ZodiacSign(birth.Month, birth.Day),
	}, nil
}

// decompose performs the grade-school subtraction of two dates.
// A day borrow uses the length of the birth month, not of the month borrowed from.
func decompose(birth, today CalendarDate) (years, months, days int) {
	years = today.Year - birth.Year

	if today.Month >= birth.Month {
		months = int(today.Month - birth.Month)
	} else {
		years--
		months = 12 + int(today.Month) - int(birth.Month)
	}

	if today.Day >= birth.Day {
		days = today.Day - birth.Day
	} else {
		months--
		days = DaysInMonth(birth.Year, birth.Month) + today.Day - birth.Day
	}

	if months < 0 {
		months = 11
		years--
	}
	return years, months, days
}

// ProjectNextBirthday finds the next anniversary strictly after now.
// A birthday falling today counts as passed. Feb 29 rolls to Mar 1 in common years.
func ProjectNextBirthday(birth CalendarDate, now time.Time) NextBirthday {
	loc := now.Location()

	candidate := time.Date(now.Year(), birth.Month, birth.Day, 0, 0, 0, 0, loc)
	if !candidate.After(now) {
		candidate = time.Date(now.Year()+1, birth.Month, birth.Day, 0, 0, 0, 0, loc)
	}

	remaining := candidate.Sub(now).Milliseconds()
	return NextBirthday{
		Date:      DateOf(candidate),
		DaysUntil: int(ceilDiv(remaining, msPerDay)),
		Turns:     candidate.Year() - birth.Year,
	}
}

// ElapsedSeconds is the narrow recompute used by the live ticker.
func ElapsedSeconds(birth CalendarDate, now time.Time) int64 {
	return floorDiv(now.Sub(birth.Midnight(now.Location())).Milliseconds(), msPerSecond)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int64) int64 {
	return -floorDiv(-a, b)
}
