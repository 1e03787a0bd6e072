package app

import (
	"sync"
	"time"
)

// Debouncer holds at most one pending scheduled callback. Scheduling again
// before the window elapses cancels the previous callback; only the most
// recent one ever fires. Stop cancels without firing.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer returns an idle debouncer.
func NewDebouncer() *Debouncer {
	return &Debouncer{}
}

// Schedule arranges for fn to run after the window, replacing any pending
// callback. fn runs on the timer goroutine.
func (d *Debouncer) Schedule(window time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(window, fn)
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
