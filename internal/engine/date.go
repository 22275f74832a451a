package engine

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-age/internal/config"
)

// CalendarDate is a date at day granularity in the proleptic Gregorian calendar.
// Use NewCalendarDate or ParseCalendarDate to obtain a validated value.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// monthDays holds the day count of each month in a common year.
var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// NewCalendarDate validates the components and returns the date.
func NewCalendarDate(year int, month time.Month, day int) (CalendarDate, error) {
	d := CalendarDate{Year: year, Month: month, Day: day}
	if !d.Valid() {
		return CalendarDate{}, fmt.Errorf(config.FormatDateError, ErrInvalidDate, year, int(month), day)
	}
	return d, nil
}

// DateOf returns the wall-clock date of t in its own location.
func DateOf(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// ParseCalendarDate reads the date formats accepted on input (ISO, basic and RFC 3339).
// The time-of-day part of RFC 3339 values is discarded.
func ParseCalendarDate(value string) (CalendarDate, error) {
	layouts := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return DateOf(t), nil
		}
	}
	return CalendarDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

// Valid reports whether the components form a real Gregorian date.
func (d CalendarDate) Valid() bool {
	if d.Month < time.January || d.Month > time.December {
		return false
	}
	return d.Day >= 1 && d.Day <= DaysInMonth(d.Year, d.Month)
}

// Midnight returns the first instant of the date in loc.
func (d CalendarDate) Midnight(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after o.
func (d CalendarDate) Compare(o CalendarDate) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(int(d.Month) - int(o.Month))
	default:
		return sign(d.Day - o.Day)
	}
}

// Before reports whether d is strictly earlier than o.
func (d CalendarDate) Before(o CalendarDate) bool { return d.Compare(o) < 0 }

// After reports whether d is strictly later than o.
func (d CalendarDate) After(o CalendarDate) bool { return d.Compare(o) > 0 }

// Weekday returns the day of the week the date falls on.
func (d CalendarDate) Weekday() time.Weekday {
	return d.Midnight(time.UTC).Weekday()
}

// String formats the date as YYYY-MM-DD.
func (d CalendarDate) String() string {
	return fmt.Sprintf(config.FormatISODate, d.Year, int(d.Month), d.Day)
}

// MarshalText encodes the date as YYYY-MM-DD for JSON and YAML reports.
func (d CalendarDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a date written by MarshalText.
func (d *CalendarDate) UnmarshalText(text []byte) error {
	parsed, err := ParseCalendarDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// IsLeapYear applies the Gregorian leap-year rule.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInMonth returns the number of days of a 1-based month, or 0 for an invalid month.
func DaysInMonth(year int, month time.Month) int {
	if month < time.January || month > time.December {
		return 0
	}
	if month == time.February && IsLeapYear(year) {
		return 29
	}
	return monthDays[month-1]
}

// CountLeapYears counts leap years in [start, end).
func CountLeapYears(start, end int) int {
	count := 0
	for y := start; y < end; y++ {
		if IsLeapYear(y) {
			count++
		}
	}
	return count
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
