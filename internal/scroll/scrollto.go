package scroll

import (
	"math"
	"time"

	"github.com/dshills/glide/internal/scroll/animate"
	"github.com/dshills/glide/internal/scroll/easing"
)

type scrollConfig struct {
	offset       float64
	immediate    bool
	lock         bool
	force        bool
	programmatic bool
	params       animate.Params
	userData     any
	onStart      func(*Scroller)
	onComplete   func(*Scroller)
}

// ScrollOption adjusts a single ScrollTo call.
type ScrollOption func(*scrollConfig)

// WithOffset adds v to the resolved target.
func WithOffset(v float64) ScrollOption {
	return func(c *scrollConfig) {
		c.offset = v
	}
}

// Immediate jumps to the target without animating.
func Immediate() ScrollOption {
	return func(c *scrollConfig) {
		c.immediate = true
	}
}

// Lock refuses other ScrollTo calls until this animation completes.
func Lock() ScrollOption {
	return func(c *scrollConfig) {
		c.lock = true
	}
}

// Force scrolls even when stopped or locked.
func Force() ScrollOption {
	return func(c *scrollConfig) {
		c.force = true
	}
}

// WithDuration animates over d with the call's easing curve.
func WithDuration(d time.Duration) ScrollOption {
	return func(c *scrollConfig) {
		c.params.Duration = d.Seconds()
	}
}

// WithEasing sets the curve used with a duration.
func WithEasing(fn easing.Func) ScrollOption {
	return func(c *scrollConfig) {
		c.params.Easing = fn
	}
}

// WithLerp sets the damping factor.
func WithLerp(v float64) ScrollOption {
	return func(c *scrollConfig) {
		c.params.Lerp = v
	}
}

// WithSpring animates with a spring.
func WithSpring(sp *animate.Spring) ScrollOption {
	return func(c *scrollConfig) {
		c.params.Spring = sp
	}
}

// WithUserData attaches v to the call. It is visible through UserData
// until the call completes.
func WithUserData(v any) ScrollOption {
	return func(c *scrollConfig) {
		c.userData = v
	}
}

// OnStart runs fn when the animation starts.
func OnStart(fn func(*Scroller)) ScrollOption {
	return func(c *scrollConfig) {
		c.onStart = fn
	}
}

// OnComplete runs fn when the target is reached.
func OnComplete(fn func(*Scroller)) ScrollOption {
	return func(c *scrollConfig) {
		c.onComplete = fn
	}
}

func fromGesture() ScrollOption {
	return func(c *scrollConfig) {
		c.programmatic = false
	}
}

func withParams(p animate.Params) ScrollOption {
	return func(c *scrollConfig) {
		c.params = p
	}
}

// ScrollTo moves to target. Unresolvable targets, calls made while stopped
// or locked without Force, and calls whose target equals the current one
// are ignored.
func (s *Scroller) ScrollTo(target Target, opts ...ScrollOption) {
	if s.destroyed || target == nil {
		return
	}
	cfg := scrollConfig{
		programmatic: true,
		params:       s.opts.params(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if (s.stopped || s.locked) && !cfg.force {
		s.log.Debug("scrollTo refused: stopped=%t locked=%t", s.stopped, s.locked)
		return
	}

	value, ok := target.resolve(s)
	if !ok {
		return
	}
	value = math.Round(value + cfg.offset)

	if s.opts.Infinite {
		if cfg.programmatic {
			s.animatedScroll = s.Scroll()
			s.targetScroll = s.animatedScroll
		}
	} else {
		value = min(max(value, 0), s.Limit())
	}

	if value == s.targetScroll {
		return
	}
	if cfg.programmatic && s.animator.IsRunning() && value == s.animator.To() {
		return
	}

	s.userData = cfg.userData

	if cfg.immediate {
		s.animatedScroll = value
		s.targetScroll = value
		s.setScroll(s.Scroll())
		s.Reset()
		s.armEchoSuppression()
		s.emit()
		if cfg.onComplete != nil {
			cfg.onComplete(s)
		}
		s.userData = nil
		return
	}

	if !cfg.programmatic {
		s.targetScroll = value
	}

	s.animator.Start(s.animatedScroll, value, cfg.params,
		func() {
			if cfg.lock {
				s.setLocked(true)
			}
			s.setMode(ModeSmooth)
			if cfg.onStart != nil {
				cfg.onStart(s)
			}
		},
		func(v float64, completed bool) {
			s.setMode(ModeSmooth)
			s.lastVelocity = s.velocity
			s.velocity = v - s.animatedScroll
			s.direction = sign(s.velocity)
			s.animatedScroll = v
			s.setScroll(s.Scroll())

			if cfg.programmatic {
				// Gestures arriving mid-animation compose from here.
				s.targetScroll = v
			}

			if !completed {
				s.emit()
				return
			}

			s.Reset()
			s.emit()
			if cfg.onComplete != nil {
				cfg.onComplete(s)
			}
			s.userData = nil
			s.armEchoSuppression()
		},
	)
}
