package snap

import (
	"time"

	"github.com/dshills/glide/internal/logging"
	"github.com/dshills/glide/internal/scroll/easing"
)

// Type selects how eagerly the engine snaps.
type Type uint8

const (
	// Mandatory always snaps once motion settles, and picks the next
	// point in the direction of travel while still moving.
	Mandatory Type = iota
	// Proximity only snaps to a point within one viewport of the current
	// position, and only once motion has settled.
	Proximity
)

// String returns the type name.
func (t Type) String() string {
	if t == Proximity {
		return "proximity"
	}
	return "mandatory"
}

// ParseType parses a type name. Unknown names yield Mandatory and false.
func ParseType(s string) (Type, bool) {
	switch s {
	case "mandatory", "":
		return Mandatory, true
	case "proximity":
		return Proximity, true
	default:
		return Mandatory, false
	}
}

// Defaults.
const (
	DefaultVelocityThreshold = 1.0
	DefaultDebounce          = 500 * time.Millisecond
)

// Options configure a Snap. Zero Lerp, Duration and Easing fall back to
// the scroller's own settings.
type Options struct {
	Type              Type
	Lerp              float64
	Easing            easing.Func
	Duration          time.Duration
	VelocityThreshold float64
	Debounce          time.Duration

	OnSnapStart    func(Item)
	OnSnapComplete func(Item)
}

// DefaultOptions returns the default settings.
func DefaultOptions() Options {
	return Options{
		Type:              Mandatory,
		VelocityThreshold: DefaultVelocityThreshold,
		Debounce:          DefaultDebounce,
	}
}

// Option configures a Snap.
type Option func(*Snap)

// WithOptions replaces all settings.
func WithOptions(opts Options) Option {
	return func(s *Snap) {
		s.opts = opts
	}
}

// WithType sets the snap type.
func WithType(t Type) Option {
	return func(s *Snap) {
		s.opts.Type = t
	}
}

// WithDebounce sets the quiet period before evaluating.
func WithDebounce(d time.Duration) Option {
	return func(s *Snap) {
		s.opts.Debounce = d
	}
}

// WithVelocityThreshold sets the speed below which motion counts as
// settled.
func WithVelocityThreshold(v float64) Option {
	return func(s *Snap) {
		s.opts.VelocityThreshold = v
	}
}

// OnSnapStart registers fn to run when a snap animation starts.
func OnSnapStart(fn func(Item)) Option {
	return func(s *Snap) {
		s.opts.OnSnapStart = fn
	}
}

// OnSnapComplete registers fn to run when a snap animation completes.
func OnSnapComplete(fn func(Item)) Option {
	return func(s *Snap) {
		s.opts.OnSnapComplete = fn
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Snap) {
		s.log = l
	}
}
