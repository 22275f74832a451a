package engine

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-age/internal/config"
)

// Error taxonomy shared by the Gate, the engine and the presentation layer.
// Callers match with errors.Is; the concrete errors returned are wrapped with context.
var (
	// ErrMissingInput is returned when no birth date was supplied.
	ErrMissingInput = errors.New(config.ErrMissingInput)

	// ErrInvalidDate is returned for input that is not a real Gregorian date.
	ErrInvalidDate = errors.New(config.ErrInvalidDate)

	// ErrFutureDate is returned when the birth date lies after "now".
	ErrFutureDate = errors.New(config.ErrFutureDate)

	// ErrInvalidRange is the engine-level name of the birth > now contract violation.
	ErrInvalidRange = ErrFutureDate

	// ErrDateTooOld is returned when the birth year is below the configured minimum.
	// It also matches ErrInvalidDate.
	ErrDateTooOld = fmt.Errorf("%s: %w", config.ErrDateTooOld, ErrInvalidDate)

	// ErrCalculationFailure signals an unexpected internal fault during computation.
	ErrCalculationFailure = errors.New(config.ErrCalcFailure)
)
