package geocode

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of calls into a single invocation per
// quiescent period: each Call supersedes any pending one, and the most
// recent function runs once the configured wait elapses with no further
// input. Stop cancels whatever is pending.
//
// It replaces the bare setTimeout-closure pattern with an explicit,
// testable contract.
type Debouncer struct {
	mu    sync.Mutex
	wait  time.Duration
	timer *time.Timer
}

// NewDebouncer returns a debouncer with the given quiescence window.
func NewDebouncer(wait time.Duration) *Debouncer {
	return &Debouncer{wait: wait}
}

// Call schedules fn to run after the wait elapses, cancelling any
// previously scheduled function. fn runs on a timer goroutine.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, fn)
}

// Stop cancels the pending invocation, if any. It does not wait for a
// function that has already started.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
