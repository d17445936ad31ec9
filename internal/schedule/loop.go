package schedule

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultLoopBuffer is the channel capacity used by NewLoop.
const DefaultLoopBuffer = 64

// Loop is a Scheduler whose callbacks run on the goroutine that drains it.
//
// Timers are real (time.AfterFunc) but expired callbacks are only queued;
// they run when the owner receives from C or calls RunPending.
type Loop struct {
	queue chan func()
	done  chan struct{}

	closeOnce sync.Once
	closed    atomic.Bool
}

// NewLoop creates a loop with the given queue capacity.
func NewLoop(buffer int) *Loop {
	if buffer <= 0 {
		buffer = DefaultLoopBuffer
	}
	return &Loop{
		queue: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// C returns the channel of callbacks ready to run.
func (l *Loop) C() <-chan func() {
	return l.queue
}

// AfterFunc implements Scheduler.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{loop: l, fn: fn}
	if d <= 0 {
		l.Post(t.run)
		return t
	}
	t.timer = time.AfterFunc(d, func() {
		if t.stopped.Load() {
			return
		}
		l.Post(t.run)
	})
	return t
}

// Post queues fn for the next drain. Post blocks while the queue is full
// and returns immediately once the loop is closed.
func (l *Loop) Post(fn func()) {
	if l.closed.Load() {
		return
	}
	select {
	case l.queue <- fn:
	case <-l.done:
	}
}

// RunPending runs every queued callback without blocking and returns the
// number of callbacks that ran. Callbacks queued while draining also run.
func (l *Loop) RunPending() int {
	n := 0
	for {
		select {
		case fn := <-l.queue:
			fn()
			n++
		default:
			return n
		}
	}
}

// Close stops accepting callbacks. Timers that expire after Close are
// dropped. It is safe to call Close multiple times.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		close(l.done)
	})
}

type loopTimer struct {
	loop    *Loop
	fn      func()
	timer   *time.Timer
	stopped atomic.Bool
	fired   atomic.Bool
}

func (t *loopTimer) run() {
	if t.stopped.Load() {
		return
	}
	if !t.fired.CompareAndSwap(false, true) {
		return
	}
	t.fn()
}

func (t *loopTimer) Stop() bool {
	if t.timer != nil {
		t.timer.Stop()
	}
	if t.stopped.Swap(true) {
		return false
	}
	return !t.fired.Load()
}
