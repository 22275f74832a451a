package engine_test

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

func decodeCalendar(t *testing.T, data []byte) *ical.Calendar {
	t.Helper()
	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err, "Generated feed must be valid iCalendar")
	return cal
}

func TestBirthdayCalendar_ThreeYears(t *testing.T) {
	birth := engine.CalendarDate{Year: 1990, Month: time.June, Day: 20}
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	data, err := engine.BirthdayCalendar(birth, now, engine.CalendarOptions{})
	require.NoError(t, err)

	cal := decodeCalendar(t, data)
	events := cal.Events()
	require.Len(t, events, 3)

	uids := make(map[string]bool)
	for i, ev := range events {
		year := 2023 + i

		start, err := ev.DateTimeStart(time.UTC)
		require.NoError(t, err)
		assert.Equal(t, time.Date(year, time.June, 20, 0, 0, 0, 0, time.UTC), start)

		summary, err := ev.Props.Text(config.PropSummary)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf(config.FallbackSummaryAge, year-1990), summary)

		uid, err := ev.Props.Text(config.PropUID)
		require.NoError(t, err)
		assert.Contains(t, uid, config.ICalDomain)
		uids[uid] = true
	}
	assert.Len(t, uids, 3, "Each occurrence has its own UID")

	name, err := cal.Props.Text(config.PropXWRCalName)
	require.NoError(t, err)
	assert.Equal(t, config.ICalCalName, name)
}

func TestBirthdayCalendar_BornThisYear(t *testing.T) {
	birth := engine.CalendarDate{Year: 2024, Month: time.January, Day: 5}
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	data, err := engine.BirthdayCalendar(birth, now, engine.CalendarOptions{})
	require.NoError(t, err)

	events := decodeCalendar(t, data).Events()
	require.Len(t, events, 2, "No occurrence before the birth year")

	summary, err := events[0].Props.Text(config.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, config.FallbackSummaryBirth, summary)
}

func TestBirthdayCalendar_NoEventsYieldsStub(t *testing.T) {
	birth := engine.CalendarDate{Year: 2030, Month: time.January, Day: 5}
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	data, err := engine.BirthdayCalendar(birth, now, engine.CalendarOptions{})
	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(data))
}

func TestBirthdayCalendar_CustomSummary(t *testing.T) {
	birth := engine.CalendarDate{Year: 1990, Month: time.June, Day: 20}
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	data, err := engine.BirthdayCalendar(birth, now, engine.CalendarOptions{
		Summary: func(age int) string { return fmt.Sprintf("Anniversaire (%d ans)", age) },
	})
	require.NoError(t, err)

	events := decodeCalendar(t, data).Events()
	require.NotEmpty(t, events)
	summary, err := events[1].Props.Text(config.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "Anniversaire (34 ans)", summary)
}

func TestBirthdayCalendar_StableUIDs(t *testing.T) {
	birth := engine.CalendarDate{Year: 1990, Month: time.June, Day: 20}
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	a, err := engine.BirthdayCalendar(birth, now, engine.CalendarOptions{})
	require.NoError(t, err)
	b, err := engine.BirthdayCalendar(birth, now.Add(time.Hour), engine.CalendarOptions{})
	require.NoError(t, err)

	evA, evB := decodeCalendar(t, a).Events(), decodeCalendar(t, b).Events()
	for i := range evA {
		uidA, _ := evA[i].Props.Text(config.PropUID)
		uidB, _ := evB[i].Props.Text(config.PropUID)
		assert.Equal(t, uidA, uidB)
	}
}

func TestBirthdayCalendar_InvalidDate(t *testing.T) {
	_, err := engine.BirthdayCalendar(engine.CalendarDate{Year: 2023, Month: time.February, Day: 29}, time.Now(), engine.CalendarOptions{})
	assert.ErrorIs(t, err, engine.ErrInvalidDate)
}
