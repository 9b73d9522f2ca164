package session

import (
	"sync"
	"time"
)

// DefaultAutosaveDelay is used when the configured delay is zero.
const DefaultAutosaveDelay = 500 * time.Millisecond

// Debouncer coalesces a burst of edits into one save. Each Trigger replaces
// the pending callback; only the last one runs, after the delay elapses
// with no further Trigger.
type Debouncer struct {
	delay time.Duration
	timer *time.Timer
	mu    sync.Mutex
	seq   uint64
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	return &Debouncer{delay: delay}
}

func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A timer that already fired can race a newer Trigger; the sequence
		// number decides which callback is current.
		current := seq == d.seq
		if current {
			d.timer = nil
		}
		d.mu.Unlock()
		if current {
			callback()
		}
	})
}

// Cancel drops any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a callback is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
