package search

import (
	"sync"
	"time"
)

// DefaultInterval is the quiet period before a live search fires.
const DefaultInterval = 500 * time.Millisecond

// Debouncer runs a function once calls have stopped for the interval.
// Each call cancels the pending timer and schedules a new one.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	interval time.Duration
}

// NewDebouncer creates a debouncer; a non-positive interval uses DefaultInterval.
func NewDebouncer(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Debouncer{interval: interval}
}

// Interval returns the quiet period.
func (d *Debouncer) Interval() time.Duration {
	return d.interval
}

// Debounce schedules fn, replacing any pending call.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, fn)
}

// Cancel drops the pending call, if any. A call already running is not
// interrupted.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Immediate cancels any pending call and runs fn on the caller's goroutine.
func (d *Debouncer) Immediate(fn func()) {
	d.Cancel()
	fn()
}
