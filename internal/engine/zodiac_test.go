package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

func TestZodiacSign_Boundaries(t *testing.T) {
	tests := []struct {
		month time.Month
		day   int
		want  string
	}{
		{time.March, 21, config.ZodiacAries},
		{time.December, 25, config.ZodiacCapricorn},
		{time.December, 22, config.ZodiacCapricorn},
		{time.January, 19, config.ZodiacCapricorn},
		{time.January, 20, config.ZodiacAquarius},
		{time.February, 18, config.ZodiacAquarius},
		{time.February, 29, config.ZodiacPisces},
		{time.March, 20, config.ZodiacPisces},
		{time.June, 20, config.ZodiacGemini},
		{time.June, 21, config.ZodiacCancer},
		{time.November, 21, config.ZodiacScorpio},
		{time.December, 21, config.ZodiacSagittarius},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, engine.ZodiacSign(tt.month, tt.day))
		})
	}
}

// TestZodiacSign_Exhaustive walks every day of a leap year: none may be Unknown.
func TestZodiacSign_Exhaustive(t *testing.T) {
	seen := make(map[string]int)
	for d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC); d.Year() == 2024; d = d.AddDate(0, 0, 1) {
		sign := engine.ZodiacSign(d.Month(), d.Day())
		assert.NotEqual(t, config.ZodiacUnknown, sign, "No sign for %s", d.Format(config.DateFormatFullDash))
		seen[sign]++
	}

	assert.Len(t, seen, 12)
	for _, name := range engine.ZodiacSigns() {
		assert.Positive(t, seen[name], "Sign %s never matched", name)
	}
}

func TestZodiacSign_Unknown(t *testing.T) {
	assert.Equal(t, config.ZodiacUnknown, engine.ZodiacSign(13, 1))
}

type frenchWeekdays struct{}

func (frenchWeekdays) FormatWeekday(w time.Weekday) string {
	return []string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}[w]
}

func TestWeekdayName(t *testing.T) {
	d := engine.CalendarDate{Year: 1990, Month: time.June, Day: 20}

	assert.Equal(t, "Wednesday", engine.WeekdayName(d, nil))
	assert.Equal(t, "Wednesday", engine.WeekdayName(d, engine.EnglishWeekdays{}))
	assert.Equal(t, "mercredi", engine.WeekdayName(d, frenchWeekdays{}))
}
