package schedule

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Scheduler driven by a virtual clock. It is intended for
// tests: callbacks only run inside Advance or Flush.
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	timers []*manualTimer
}

// NewManual creates a manual scheduler at virtual time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Now returns the current virtual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc implements Scheduler.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTimer{
		m:   m,
		due: m.now + d,
		seq: m.seq,
		fn:  fn,
	}
	m.timers = append(m.timers, t)
	return t
}

// Post implements Poster.
func (m *Manual) Post(fn func()) {
	m.AfterFunc(0, fn)
}

// Pending returns the number of armed timers.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// Flush runs every callback that is already due.
func (m *Manual) Flush() {
	m.Advance(0)
}

// Advance moves the clock forward by d, running due callbacks in deadline
// order. Callbacks armed while advancing run too if they fall due before
// the new time.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		t := m.nextDue(target)
		if t == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.remove(t)
		if t.due > m.now {
			m.now = t.due
		}
		m.mu.Unlock()

		t.fn()
	}
}

// nextDue returns the earliest timer due at or before target.
func (m *Manual) nextDue(target time.Duration) *manualTimer {
	if len(m.timers) == 0 {
		return nil
	}
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].due != m.timers[j].due {
			return m.timers[i].due < m.timers[j].due
		}
		return m.timers[i].seq < m.timers[j].seq
	})
	if m.timers[0].due > target {
		return nil
	}
	return m.timers[0]
}

func (m *Manual) remove(t *manualTimer) bool {
	for i, other := range m.timers {
		if other == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return true
		}
	}
	return false
}

type manualTimer struct {
	m   *Manual
	due time.Duration
	seq uint64
	fn  func()
}

func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	return t.m.remove(t)
}
