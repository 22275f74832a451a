package live

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// ElapsedTicker refreshes the elapsed-seconds figure of the displayed report.
// It never recomputes the full report; the last full computation stays authoritative.
type ElapsedTicker struct {
	clock    engine.Clock
	interval time.Duration
	sink     func(int64)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewElapsedTicker creates a stopped ticker. A nil clock uses engine.RealClock and a
// non-positive interval uses config.TickInterval.
func NewElapsedTicker(clock engine.Clock, interval time.Duration, sink func(int64)) *ElapsedTicker {
	if clock == nil {
		clock = engine.RealClock{}
	}
	if interval <= 0 {
		interval = config.TickInterval
	}
	return &ElapsedTicker{clock: clock, interval: interval, sink: sink}
}

// Start begins ticking for birth. A previous run is stopped first, so only one
// birth date is ever ticking.
func (t *ElapsedTicker) Start(ctx context.Context, birth engine.CalendarDate) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	t.cancel, t.done = cancel, done

	go t.run(runCtx, birth, done)
}

// Stop halts the current run and waits for its goroutine to exit. It is idempotent.
func (t *ElapsedTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

// Running reports whether a run is active.
func (t *ElapsedTicker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done == nil {
		return false
	}
	select {
	case <-t.done:
		return false
	default:
		return true
	}
}

func (t *ElapsedTicker) stopLocked() {
	if t.cancel == nil {
		return
	}
	t.cancel()
	<-t.done
	t.cancel, t.done = nil, nil
}

func (t *ElapsedTicker) run(ctx context.Context, birth engine.CalendarDate, done chan struct{}) {
	defer close(done)

	log := slog.With(config.LogKeyComponent, config.CompLive)
	log.Debug(config.MsgTickerStart,
		config.LogKeyDOB, birth.String(),
		config.LogKeyInterval, t.interval)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug(config.MsgTickerStop, config.LogKeyDOB, birth.String())
			return
		case <-ticker.C:
			t.sink(engine.ElapsedSeconds(birth, t.clock.Now()))
		}
	}
}
