package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// TickFunc is invoked once per heartbeat with the instant the tick observed.
type TickFunc func(now time.Time)

// Ticker drives the engine's heartbeat. Production hosts run it on a cron
// schedule; tests bypass it entirely and call the tick function directly with
// a fake clock.
//
// Invocations are serialized: a tick that overruns the interval delays the
// next one rather than running concurrently with it.
type Ticker struct {
	cron *cron.Cron
	now  func() time.Time
	fn   TickFunc

	mu sync.Mutex
}

// NewTicker builds a ticker that fires fn every interval. The now function
// supplies the timestamp handed to each tick; nil defaults to time.Now.
func NewTicker(interval time.Duration, now func() time.Time, fn TickFunc) (*Ticker, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("engine: tick interval must be positive")
	}
	if fn == nil {
		return nil, fmt.Errorf("engine: tick function is required")
	}
	if now == nil {
		now = time.Now
	}

	t := &Ticker{
		cron: cron.New(),
		now:  now,
		fn:   fn,
	}

	spec := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	if interval < time.Second {
		spec = fmt.Sprintf("@every %s", interval)
	}
	if _, err := t.cron.AddFunc(spec, t.tick); err != nil {
		return nil, fmt.Errorf("engine: schedule tick: %w", err)
	}
	return t, nil
}

func (t *Ticker) tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fn(t.now())
}

// Start begins emitting ticks.
func (t *Ticker) Start() {
	t.cron.Start()
}

// Stop halts the heartbeat and waits for an in-flight tick to finish.
func (t *Ticker) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
}
