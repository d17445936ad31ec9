package schedule

import "time"

// Debouncer coalesces bursts of triggers into a single callback that runs
// once the trigger has been quiet for the configured delay.
type Debouncer struct {
	scheduler Scheduler
	delay     time.Duration
	fn        func()
	timer     Timer
}

// NewDebouncer creates a debouncer that runs fn on s.
func NewDebouncer(s Scheduler, delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{
		scheduler: s,
		delay:     delay,
		fn:        fn,
	}
}

// Trigger (re)arms the callback, discarding any earlier pending one.
func (d *Debouncer) Trigger() {
	d.Cancel()
	var t Timer
	t = d.scheduler.AfterFunc(d.delay, func() {
		if d.timer != t {
			return
		}
		d.timer = nil
		d.fn()
	})
	d.timer = t
}

// Cancel drops the pending callback, if any.
func (d *Debouncer) Cancel() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a callback is armed.
func (d *Debouncer) Pending() bool {
	return d.timer != nil
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// SetDelay changes the quiet period used by subsequent triggers.
func (d *Debouncer) SetDelay(delay time.Duration) {
	d.delay = delay
}
