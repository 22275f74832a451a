// Package live holds the two schedulers around the age computation:
// input debouncing and the once-per-second elapsed refresh.
package live

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tartampluch/go-age/internal/config"
)

// Debouncer delays a callback until its input has been quiet for the interval.
// Every Trigger supersedes the pending one; only the latest value is delivered.
// The callback runs on a timer goroutine, callers that touch a UI must marshal.
// Deliveries never overlap, and a value superseded while waiting is dropped.
type Debouncer struct {
	interval time.Duration
	fn       func(string)

	// runMu serializes calls to fn. Always acquired before mu.
	runMu sync.Mutex

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	value   string
	pending bool
	stopped bool
}

// NewDebouncer creates a debouncer. A non-positive interval uses config.DebounceInterval.
func NewDebouncer(interval time.Duration, fn func(string)) *Debouncer {
	if interval <= 0 {
		interval = config.DebounceInterval
	}
	return &Debouncer{interval: interval, fn: fn}
}

// Trigger records value and (re)arms the timer.
func (d *Debouncer) Trigger(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.gen++
	gen := d.gen
	d.value = value
	d.pending = true

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() { d.fire(gen) })
}

// Flush cancels any pending trigger and runs the callback with value on the
// caller's goroutine, after a delivery already in progress has returned.
// Flush must not be called from inside the callback.
func (d *Debouncer) Flush(value string) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.cancelLocked()
	gen := d.gen
	d.mu.Unlock()

	d.runMu.Lock()
	defer d.runMu.Unlock()

	d.mu.Lock()
	current := gen == d.gen && !d.stopped
	d.mu.Unlock()
	if !current {
		return
	}
	d.fn(value)
}

// Cancel drops the pending trigger, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

// Pending reports whether a trigger is waiting to fire.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop cancels the pending trigger and ignores every later call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}

func (d *Debouncer) cancelLocked() {
	// Bumping the generation invalidates a timer or flush that is still
	// waiting for its turn to deliver.
	d.gen++
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire(gen uint64) {
	d.runMu.Lock()
	defer d.runMu.Unlock()

	d.mu.Lock()
	if gen != d.gen || !d.pending || d.stopped {
		d.mu.Unlock()
		return
	}
	d.pending = false
	value := d.value
	d.mu.Unlock()

	slog.Debug(config.MsgDebounceFired,
		config.LogKeyComponent, config.CompLive,
		config.LogKeyValue, value)
	d.fn(value)
}
