package schedule

import "time"

// Timer is a handle to a pending callback.
type Timer interface {
	// Stop cancels the callback. It returns false if the callback
	// already ran or was already stopped.
	Stop() bool
}

// Scheduler arms callbacks to run after a delay.
type Scheduler interface {
	// AfterFunc arranges for fn to run once after d has elapsed.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Poster is implemented by schedulers that can queue a callback for the
// next drain without a delay.
type Poster interface {
	Post(fn func())
}

// Post queues fn on s. Schedulers that do not implement Poster get a
// zero-delay timer instead.
func Post(s Scheduler, fn func()) {
	if p, ok := s.(Poster); ok {
		p.Post(fn)
		return
	}
	s.AfterFunc(0, fn)
}
