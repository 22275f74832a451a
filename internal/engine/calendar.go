package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-age/internal/config"
)

// CalendarOptions customizes the birthday feed.
type CalendarOptions struct {
	// Summary renders the event title for the given age. Nil uses config.FallbackSummaryAge.
	Summary func(age int) string
}

// BirthdayCalendar renders an iCalendar containing the birthday for the previous,
// current and next year relative to now. No event is generated before the birth year.
func BirthdayCalendar(birth CalendarDate, now time.Time, opts CalendarOptions) ([]byte, error) {
	if !birth.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, birth)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Birthdays follow the local calendar date; only DTSTAMP is expressed in UTC.
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	uidBase := calendarUID(birth)
	loc := now.Location()

	for _, y := range []int{now.Year() - 1, now.Year(), now.Year() + 1} {
		if y < birth.Year {
			continue
		}
		age := y - birth.Year

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))
		event.Props.SetText(config.PropSummary, summaryFor(opts, age))

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(time.Date(y, birth.Month, birth.Day, 0, 0, 0, 0, loc))
		event.Props.Set(dtStartProp)
		event.Props.Set(dtStampProp)

		cal.Children = append(cal.Children, event.Component)
	}

	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

func summaryFor(opts CalendarOptions, age int) string {
	if opts.Summary != nil {
		return opts.Summary(age)
	}
	if age == 0 {
		return config.FallbackSummaryBirth
	}
	return fmt.Sprintf(config.FallbackSummaryAge, age)
}

func calendarUID(birth CalendarDate) string {
	input := fmt.Sprintf(config.FormatHashInput, config.ICalCalName, birth.String(), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}
