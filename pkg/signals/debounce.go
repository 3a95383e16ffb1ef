package signals

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of Trigger calls into one callback that runs
// after delay has passed without a new Trigger.
//
// The pending timer is acquired and replaced under a single mutex, and each
// timer carries a sequence number so a timer that was replaced while already
// firing drops its callback. The callback runs on the timer goroutine and is
// never invoked concurrently with itself by the debouncer.
type Debouncer struct {
	mu       sync.Mutex
	fire     sync.Mutex
	delay    time.Duration
	timer    *time.Timer
	pending  bool
	seq      uint64
	callback func()
}

// NewDebouncer creates a debouncer. A non-positive delay fires on the next
// timer tick.
func NewDebouncer(delay time.Duration, callback func()) *Debouncer {
	if delay < 0 {
		delay = 0
	}
	return &Debouncer{
		delay:    delay,
		callback: callback,
	}
}

// Delay returns the quiet period
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger (re)starts the quiet period
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = true
	d.seq++
	current := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if !d.pending || d.seq != current {
			d.mu.Unlock()
			return
		}
		d.pending = false
		d.timer = nil
		d.mu.Unlock()

		d.run()
	})
}

// Flush runs a pending callback now, on the caller's goroutine
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	wasPending := d.pending
	d.pending = false
	d.mu.Unlock()

	if wasPending {
		d.run()
	}
}

// Cancel drops a pending callback
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	d.pending = false
}

// Pending reports whether a callback is scheduled
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *Debouncer) run() {
	if d.callback == nil {
		return
	}
	d.fire.Lock()
	defer d.fire.Unlock()
	d.callback()
}
