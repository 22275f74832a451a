package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func newTestGate(now time.Time) *engine.Gate {
	return engine.NewGate(MockClock{CurrentTime: now})
}

func TestGate_Submit_Success(t *testing.T) {
	gate := newTestGate(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name  string
		input string
	}{
		{"ISO", "1990-06-20"},
		{"Padded", "  1990-06-20 \n"},
		{"Basic", "19900620"},
		{"RFC3339", "1990-06-20T08:30:00+02:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := gate.Submit(tt.input)
			require.NoError(t, err)
			assert.Equal(t, 33, r.Years)
			assert.Equal(t, 8, r.Months)
			assert.Equal(t, 25, r.Days)
			assert.Equal(t, 97, r.NextBirthday.DaysUntil)
		})
	}
}

func TestGate_Submit_Errors(t *testing.T) {
	gate := newTestGate(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"Empty", "", engine.ErrMissingInput},
		{"Blank", "   ", engine.ErrMissingInput},
		{"Garbage", "not-a-date", engine.ErrInvalidDate},
		{"Impossible day", "2023-02-30", engine.ErrInvalidDate},
		{"Future", "2025-01-01", engine.ErrFutureDate},
		{"Tomorrow", "2024-01-02", engine.ErrFutureDate},
		{"Too old", "1899-12-31", engine.ErrDateTooOld},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := gate.Submit(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, engine.AgeReport{}, r, "No partial report on failure")
		})
	}
}

func TestGate_TooOldIsAlsoInvalidDate(t *testing.T) {
	gate := newTestGate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := gate.Submit("1899-12-31")
	assert.ErrorIs(t, err, engine.ErrDateTooOld)
	assert.ErrorIs(t, err, engine.ErrInvalidDate)
	assert.NotErrorIs(t, err, engine.ErrFutureDate)
}

func TestGate_Boundaries(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	gate := newTestGate(now)

	r, err := gate.Submit("1900-01-01")
	require.NoError(t, err, "The minimum year itself is accepted")
	assert.Equal(t, 124, r.Years)

	r, err = gate.Submit("2024-01-01")
	require.NoError(t, err, "Born today is accepted")
	assert.Equal(t, 0, r.Years)
	assert.Equal(t, int64(0), r.TotalSeconds)
}

func TestGate_CustomMinimumYear(t *testing.T) {
	gate := newTestGate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	gate.MinimumYear = 1950

	_, err := gate.Submit("1949-12-31")
	assert.ErrorIs(t, err, engine.ErrDateTooOld)

	_, err = gate.Submit("1950-01-01")
	assert.NoError(t, err)
}

func TestGate_DefaultsWhenUnset(t *testing.T) {
	gate := &engine.Gate{}

	_, err := gate.Submit("1899-06-01")
	assert.ErrorIs(t, err, engine.ErrDateTooOld, "Zero MinimumYear falls back to the policy default")

	assert.Equal(t, config.MinimumValidYear, engine.NewGate(nil).MinimumYear)
}

func TestGate_SubmitDate(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	gate := newTestGate(now)

	_, err := gate.SubmitDate(engine.CalendarDate{Year: 2023, Month: time.February, Day: 29}, now)
	assert.ErrorIs(t, err, engine.ErrInvalidDate)

	r, err := gate.SubmitDate(engine.CalendarDate{Year: 2000, Month: time.February, Day: 29}, now)
	require.NoError(t, err)
	assert.Equal(t, 24, r.Years)
}

func TestParseCalendarDate(t *testing.T) {
	d, err := engine.ParseCalendarDate("2000-02-29")
	require.NoError(t, err)
	assert.Equal(t, engine.CalendarDate{Year: 2000, Month: time.February, Day: 29}, d)
	assert.Equal(t, "2000-02-29", d.String())
	assert.Equal(t, time.Tuesday, d.Weekday())

	_, err = engine.ParseCalendarDate("2001-02-29")
	assert.ErrorIs(t, err, engine.ErrInvalidDate)
}

func TestNewCalendarDate(t *testing.T) {
	_, err := engine.NewCalendarDate(2024, time.February, 29)
	assert.NoError(t, err)

	_, err = engine.NewCalendarDate(2023, time.February, 29)
	assert.ErrorIs(t, err, engine.ErrInvalidDate)

	_, err = engine.NewCalendarDate(2023, 0, 1)
	assert.ErrorIs(t, err, engine.ErrInvalidDate)
}

func TestCalendarDate_Compare(t *testing.T) {
	a := engine.CalendarDate{Year: 2024, Month: time.March, Day: 1}
	b := engine.CalendarDate{Year: 2024, Month: time.February, Day: 29}

	assert.True(t, b.Before(a))
	assert.True(t, a.After(b))
	assert.Equal(t, 0, a.Compare(a))
}
