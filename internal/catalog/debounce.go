package catalog

import (
	"sync"
	"time"
)

// QueryDebounce is how long the free-text query must be idle before the
// pipeline recomputes. Rapid typing produces a single recompute of the
// settled value.
const QueryDebounce = 300 * time.Millisecond

// Debouncer delivers only the last value set after an idle interval.
type Debouncer struct {
	d  time.Duration
	fn func(string)

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a debouncer that calls fn with the settled value.
// A non-positive interval falls back to QueryDebounce.
func NewDebouncer(d time.Duration, fn func(string)) *Debouncer {
	if d <= 0 {
		d = QueryDebounce
	}
	return &Debouncer{d: d, fn: fn}
}

// Set records a new value, restarting the idle interval.
func (d *Debouncer) Set(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.d, func() { d.fn(value) })
}

// Stop cancels any pending delivery.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
