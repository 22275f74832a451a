package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// The Gate reads "now" from it once per computation request.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant.
// It backs headless reports where "now" is supplied by the caller.
type FixedClock struct {
	Instant time.Time
}

// Now returns the configured instant.
func (c FixedClock) Now() time.Time {
	return c.Instant
}
