package engine

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tartampluch/go-age/internal/config"
)

// Gate validates raw input before it reaches Compute.
// Every failure is reported before any report is produced: callers receive either a
// complete AgeReport or exactly one of the taxonomy errors.
type Gate struct {
	Clock Clock

	// MinimumYear is the earliest accepted birth year (presentation policy).
	MinimumYear int
}

// NewGate returns a Gate using the default minimum year.
func NewGate(clock Clock) *Gate {
	if clock == nil {
		clock = RealClock{}
	}
	return &Gate{Clock: clock, MinimumYear: config.MinimumValidYear}
}

// Submit parses raw, validates it against the current instant and computes the report.
func (g *Gate) Submit(raw string) (AgeReport, error) {
	now := g.now()

	value := strings.TrimSpace(raw)
	if value == "" {
		return AgeReport{}, ErrMissingInput
	}

	birth, err := ParseCalendarDate(value)
	if err != nil {
		slog.Debug(config.MsgInputRejected,
			config.LogKeyComponent, config.CompGate,
			config.LogKeyValue, value,
			config.LogKeyError, err)
		return AgeReport{}, err
	}

	return g.SubmitDate(birth, now)
}

// SubmitDate validates an already parsed birth date (e.g. imported from a contact card).
func (g *Gate) SubmitDate(birth CalendarDate, now time.Time) (AgeReport, error) {
	if err := g.Check(birth, now); err != nil {
		slog.Debug(config.MsgInputRejected,
			config.LogKeyComponent, config.CompGate,
			config.LogKeyDOB, birth.String(),
			config.LogKeyError, err)
		return AgeReport{}, err
	}
	return g.compute(birth, now)
}

// Check applies the input policy: the date must be real, not in the future
// and not older than MinimumYear. The future check runs first.
func (g *Gate) Check(birth CalendarDate, now time.Time) error {
	if !birth.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidDate, birth)
	}
	if birth.After(DateOf(now)) {
		return fmt.Errorf("%w: %s", ErrFutureDate, birth)
	}
	if birth.Year < g.minimumYear() {
		return fmt.Errorf(config.FormatYearTooOld, ErrDateTooOld, birth.Year, g.minimumYear())
	}
	return nil
}

// compute runs the engine and converts any panic into ErrCalculationFailure.
func (g *Gate) compute(birth CalendarDate, now time.Time) (report AgeReport, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error(config.ErrCalcFailure,
				config.LogKeyComponent, config.CompGate,
				config.LogKeyDOB, birth.String(),
				config.LogKeyPanic, r)
			report, err = AgeReport{}, fmt.Errorf("%w: %v", ErrCalculationFailure, r)
		}
	}()

	report, err = Compute(birth, now)
	if err != nil {
		return AgeReport{}, err
	}

	slog.Debug(config.MsgReportComputed,
		config.LogKeyComponent, config.CompGate,
		config.LogKeyDOB, birth.String(),
		config.LogKeyYears, report.Years,
		config.LogKeyDaysUntil, report.NextBirthday.DaysUntil)
	return report, nil
}

func (g *Gate) now() time.Time {
	if g.Clock == nil {
		return time.Now()
	}
	return g.Clock.Now()
}

func (g *Gate) minimumYear() int {
	if g.MinimumYear == 0 {
		return config.MinimumValidYear
	}
	return g.MinimumYear
}
