// Package dimensions measures a scroll container and its content.
package dimensions

import (
	"time"

	"github.com/dshills/glide/internal/schedule"
	"github.com/dshills/glide/internal/scroll/host"
)

// DefaultDebounce is the quiet period before resize notifications are
// applied.
const DefaultDebounce = 250 * time.Millisecond

// Limit is the maximum scroll offset per axis.
type Limit struct {
	X float64
	Y float64
}

// On returns the limit on axis.
func (l Limit) On(axis host.Axis) float64 {
	if axis == host.AxisX {
		return l.X
	}
	return l.Y
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithAutoResize toggles recomputing on resize notifications.
func WithAutoResize(enabled bool) Option {
	return func(t *Tracker) {
		t.autoResize = enabled
	}
}

// WithDebounce sets the resize quiet period.
func WithDebounce(d time.Duration) Option {
	return func(t *Tracker) {
		t.debounce = d
	}
}

// WithScheduler sets the scheduler used for the resize debounce.
func WithScheduler(s schedule.Scheduler) Option {
	return func(t *Tracker) {
		t.sched = s
	}
}

// WithOnChange registers fn to run after every recompute.
func WithOnChange(fn func()) Option {
	return func(t *Tracker) {
		t.onChange = fn
	}
}

// Tracker holds the viewport and content sizes of a container.
type Tracker struct {
	wrapper host.Box
	content host.Box

	Width        float64
	Height       float64
	ScrollWidth  float64
	ScrollHeight float64

	autoResize bool
	debounce   time.Duration
	sched      schedule.Scheduler
	debouncer  *schedule.Debouncer
	onChange   func()
	cancels    []func()
}

// New measures wrapper and content. With auto resize on, which is the
// default, it follows their resize notifications. Auto resize needs a
// scheduler.
func New(wrapper, content host.Box, opts ...Option) *Tracker {
	t := &Tracker{
		wrapper:    wrapper,
		content:    content,
		autoResize: true,
		debounce:   DefaultDebounce,
	}
	for _, opt := range opts {
		opt(t)
	}

	t.measure()

	if t.autoResize && t.sched != nil {
		t.debouncer = schedule.NewDebouncer(t.sched, t.debounce, t.Resize)
		t.watch(wrapper)
		if content != wrapper {
			t.watch(content)
		}
	}
	return t
}

func (t *Tracker) watch(b host.Box) {
	if b == nil {
		return
	}
	if cancel := b.OnResize(t.debouncer.Trigger); cancel != nil {
		t.cancels = append(t.cancels, cancel)
	}
}

// Resize recomputes immediately.
func (t *Tracker) Resize() {
	if t.debouncer != nil {
		t.debouncer.Cancel()
	}
	t.measure()
	if t.onChange != nil {
		t.onChange()
	}
}

func (t *Tracker) measure() {
	if t.wrapper != nil {
		t.Width, t.Height = t.wrapper.ClientSize()
	}
	if t.content != nil {
		t.ScrollWidth, t.ScrollHeight = t.content.ScrollSize()
	}
}

// Limit returns the scrollable range. It is never negative.
func (t *Tracker) Limit() Limit {
	return Limit{
		X: max(0, t.ScrollWidth-t.Width),
		Y: max(0, t.ScrollHeight-t.Height),
	}
}

// Destroy releases the resize subscriptions and cancels a pending
// recompute.
func (t *Tracker) Destroy() {
	for _, cancel := range t.cancels {
		cancel()
	}
	t.cancels = nil
	if t.debouncer != nil {
		t.debouncer.Cancel()
	}
}
