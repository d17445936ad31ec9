package scroll

import (
	"time"

	"github.com/dshills/glide/internal/logging"
	"github.com/dshills/glide/internal/schedule"
	"github.com/dshills/glide/internal/scroll/animate"
	"github.com/dshills/glide/internal/scroll/dimensions"
	"github.com/dshills/glide/internal/scroll/easing"
	"github.com/dshills/glide/internal/scroll/gesture"
	"github.com/dshills/glide/internal/scroll/host"
)

// Orientation selects the scroll or gesture axis.
type Orientation uint8

const (
	Vertical Orientation = iota
	Horizontal
	// Both is only meaningful as a gesture orientation: the larger of the
	// two deltas wins.
	Both
)

// String returns the orientation name.
func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	case Both:
		return "both"
	default:
		return "unknown"
	}
}

// ParseOrientation parses an orientation name.
func ParseOrientation(s string) (Orientation, bool) {
	switch s {
	case "vertical", "":
		return Vertical, true
	case "horizontal":
		return Horizontal, true
	case "both":
		return Both, true
	default:
		return Vertical, false
	}
}

// Options are the behavior settings of a Scroller. They can be replaced at
// runtime with SetOptions.
type Options struct {
	// SmoothWheel intercepts wheel input and animates it.
	SmoothWheel bool
	// SyncTouch intercepts touch input and animates it.
	SyncTouch bool
	// SyncTouchLerp is the lerp used for touch inertia.
	SyncTouchLerp float64
	// TouchInertiaMultiplier scales the velocity at touch end into the
	// inertia distance.
	TouchInertiaMultiplier float64

	// Duration switches animations to eased mode when non-zero.
	Duration time.Duration
	Easing   easing.Func
	Lerp     float64
	// Spring switches animations to spring mode when Duration is zero.
	Spring *animate.Spring

	// Infinite wraps the scroll position instead of clamping it.
	Infinite bool

	Orientation        Orientation
	GestureOrientation Orientation

	TouchMultiplier float64
	WheelMultiplier float64
	LineHeight      float64

	// AutoResize follows host resize notifications.
	AutoResize     bool
	ResizeDebounce time.Duration
	// NaiveDimensions reads the limit from the container on every call
	// instead of tracking it.
	NaiveDimensions bool
}

// DefaultOptions returns the default behavior.
func DefaultOptions() Options {
	return Options{
		SmoothWheel:            true,
		SyncTouch:              false,
		SyncTouchLerp:          0.075,
		TouchInertiaMultiplier: 35,
		Easing:                 easing.OutExpo,
		Lerp:                   0.1,
		Orientation:            Vertical,
		GestureOrientation:     Vertical,
		TouchMultiplier:        1,
		WheelMultiplier:        1,
		LineHeight:             gesture.LineHeight,
		AutoResize:             true,
		ResizeDebounce:         dimensions.DefaultDebounce,
	}
}

// params returns the interpolation settings for wheel gestures and
// programmatic calls.
func (o Options) params() animate.Params {
	return animate.Params{
		Lerp:     o.Lerp,
		Duration: o.Duration.Seconds(),
		Easing:   o.Easing,
		Spring:   o.Spring,
	}
}

// Option configures a Scroller at construction.
type Option func(*Scroller)

// WithOptions replaces the behavior settings.
func WithOptions(opts Options) Option {
	return func(s *Scroller) {
		s.opts = opts
	}
}

// WithContent sets the box whose extent bounds scrolling. It defaults to
// the container.
func WithContent(content host.Box) Option {
	return func(s *Scroller) {
		s.content = content
	}
}

// WithEventsTarget sets where input comes from. It defaults to the
// container when the container is a gesture.Source.
func WithEventsTarget(src gesture.Source) Option {
	return func(s *Scroller) {
		s.events = src
	}
}

// WithPrevent sets a predicate that keeps gestures passing through a node
// native.
func WithPrevent(fn func(host.Node) bool) Option {
	return func(s *Scroller) {
		s.prevent = fn
	}
}

// WithVirtualScrollHook sets a hook that sees every gesture first.
// Returning false drops the gesture.
func WithVirtualScrollHook(fn func(gesture.Delta) bool) Option {
	return func(s *Scroller) {
		s.virtualScroll = fn
	}
}

// WithScheduler sets the scheduler for deferred work. Without one the
// Scroller owns a schedule.Loop and drains it in Advance.
func WithScheduler(sched schedule.Scheduler) Option {
	return func(s *Scroller) {
		s.sched = sched
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Scroller) {
		s.log = l
	}
}

// WithStateHook registers fn to run whenever the stopped, locked or
// scrolling state changes.
func WithStateHook(fn func(State)) Option {
	return func(s *Scroller) {
		s.stateHook = fn
	}
}
