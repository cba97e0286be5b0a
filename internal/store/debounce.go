package store

import (
	"sync"
	"time"
)

// debouncer coalesces rapid calls into one trailing-edge execution: each
// call replaces the pending function and restarts the window, so only the
// last call within the window runs. A superseded call is dropped, never
// cancelled mid-flight.
type debouncer struct {
	window time.Duration

	mu    sync.Mutex
	timer *time.Timer
	fn    func()
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{window: window}
}

// Call schedules fn, superseding any not-yet-fired earlier call.
func (d *debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fn = fn
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *debouncer) fire() {
	d.mu.Lock()
	fn := d.fn
	d.fn = nil
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}
