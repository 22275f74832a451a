// Package present turns age reports into localized display strings and pushes
// them to a Surface. It holds no display state of its own.
package present

import (
	"errors"

	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"golang.org/x/text/message"
)

// Surface is the display target of a Presenter. The desktop window and the
// terminal writer both implement it.
type Surface interface {
	ShowReport(view ReportView)
	// PatchSeconds replaces only the elapsed-seconds figure of the shown report.
	PatchSeconds(value string)
	ShowError(message string)
	HideReport()
}

// Stat is one flat total.
type Stat struct {
	Key   string
	Label string
	Value string
}

// ReportView is the display-ready form of an AgeReport.
type ReportView struct {
	Summary string
	Stats   []Stat
	Details []Stat
}

// Seconds returns the elapsed-seconds stat.
func (v ReportView) Seconds() (Stat, bool) {
	for _, s := range v.Stats {
		if s.Key == config.TKeyStatSeconds {
			return s, true
		}
	}
	return Stat{}, false
}

// Presenter formats reports with the active language of its catalog.
type Presenter struct {
	catalog *Catalog
}

// NewPresenter creates a presenter bound to catalog.
func NewPresenter(catalog *Catalog) *Presenter {
	return &Presenter{catalog: catalog}
}

// Catalog exposes the translation catalog.
func (p *Presenter) Catalog() *Catalog {
	return p.catalog
}

// Render shows a complete report on s.
func (p *Presenter) Render(s Surface, report engine.AgeReport) {
	s.ShowReport(p.View(report))
}

// RenderError hides any previous report, then shows the message for err.
func (p *Presenter) RenderError(s Surface, err error) {
	s.HideReport()
	s.ShowError(p.ErrorMessage(err))
}

// PatchElapsed pushes a freshly ticked seconds value to s.
func (p *Presenter) PatchElapsed(s Surface, seconds int64) {
	s.PatchSeconds(p.Number(seconds))
}

// View formats report without touching any surface.
func (p *Presenter) View(report engine.AgeReport) ReportView {
	c := p.catalog
	return ReportView{
		Summary: c.Format(config.TKeySummary, map[string]any{
			config.TmplYears:  report.Years,
			config.TmplMonths: report.Months,
			config.TmplDays:   report.Days,
		}),
		Stats: []Stat{
			p.stat(config.TKeyStatTotalDays, report.TotalDays),
			p.stat(config.TKeyStatWeeks, report.TotalWeeks),
			p.stat(config.TKeyStatHours, report.TotalHours),
			p.stat(config.TKeyStatMinutes, report.TotalMinutes),
			p.stat(config.TKeyStatSeconds, report.TotalSeconds),
			p.stat(config.TKeyStatLeapYears, int64(report.LeapYears)),
		},
		Details: []Stat{
			{Key: config.TKeyLblBornOn, Label: c.Msg(config.TKeyLblBornOn), Value: p.BornOn(report)},
			{Key: config.TKeyLblZodiac, Label: c.Msg(config.TKeyLblZodiac), Value: c.Zodiac(report.Zodiac)},
			{Key: config.TKeyLblNextBday, Label: c.Msg(config.TKeyLblNextBday), Value: c.Plural(config.TKeyDaysAway, report.NextBirthday.DaysUntil)},
		},
	}
}

// BornOn returns the localized weekday of the birth date.
func (p *Presenter) BornOn(report engine.AgeReport) string {
	return engine.WeekdayName(report.Birth, p.catalog)
}

// ErrorMessage maps an error to its user-facing message. Unknown errors are
// reported as a calculation failure.
func (p *Presenter) ErrorMessage(err error) string {
	var key string
	switch {
	case errors.Is(err, engine.ErrMissingInput):
		key = config.TKeyErrMissingInput
	case errors.Is(err, engine.ErrFutureDate):
		key = config.TKeyErrFutureDate
	case errors.Is(err, engine.ErrDateTooOld):
		key = config.TKeyErrDateTooOld
	case errors.Is(err, engine.ErrCalculationFailure):
		key = config.TKeyErrCalcFailure
	case errors.Is(err, engine.ErrInvalidDate):
		key = config.TKeyErrInvalidDate
	default:
		key = config.TKeyErrCalcFailure
	}
	return p.catalog.Msg(key)
}

// CalendarSummary titles the birthday feed events.
func (p *Presenter) CalendarSummary(age int) string {
	if age == 0 {
		return p.catalog.Msg(config.TKeyEvtSummaryBirth)
	}
	return p.catalog.Format(config.TKeyEvtSummaryAge, map[string]any{config.TmplAge: age})
}

// TrayStatus is the one-line status of the next birthday.
func (p *Presenter) TrayStatus(report *engine.AgeReport) string {
	if report == nil {
		return p.catalog.Msg(config.TKeyTrayIdle)
	}
	return p.catalog.Plural(config.TKeyTrayStatus, report.NextBirthday.DaysUntil)
}

// Number formats n with the digit grouping of the active language.
func (p *Presenter) Number(n int64) string {
	return message.NewPrinter(p.catalog.Tag()).Sprintf("%d", n)
}

func (p *Presenter) stat(key string, n int64) Stat {
	return Stat{Key: key, Label: p.catalog.Msg(key), Value: p.Number(n)}
}
