// Package gesture turns raw wheel and touch input into scroll deltas.
//
// Hosts deliver InputEvent values through a Source. A Normalizer scales
// them into pixel deltas: wheel deltas by their unit and a multiplier, touch
// moves by the finger travel since the previous move. Listeners receive a
// Delta that carries the originating event so they can cancel its default
// action.
package gesture

import "github.com/dshills/glide/internal/scroll/host"

// Kind identifies the input that produced an event.
type Kind uint8

const (
	KindWheel Kind = iota
	KindTouchStart
	KindTouchMove
	KindTouchEnd
	KindPointerDown
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindWheel:
		return "wheel"
	case KindTouchStart:
		return "touchstart"
	case KindTouchMove:
		return "touchmove"
	case KindTouchEnd:
		return "touchend"
	case KindPointerDown:
		return "pointerdown"
	default:
		return "unknown"
	}
}

// IsTouch reports whether k is one of the touch kinds.
func (k Kind) IsTouch() bool {
	return k == KindTouchStart || k == KindTouchMove || k == KindTouchEnd
}

// IsWheel reports whether k is a wheel event.
func (k Kind) IsWheel() bool {
	return k == KindWheel
}

// DeltaMode is the unit of a wheel delta.
type DeltaMode uint8

const (
	// DeltaPixel deltas are already in pixels.
	DeltaPixel DeltaMode = iota
	// DeltaLine deltas count lines.
	DeltaLine
	// DeltaPage deltas count viewport pages.
	DeltaPage
)

// Mouse buttons reported on pointer-down events.
const (
	ButtonPrimary   = 0
	ButtonMiddle    = 1
	ButtonSecondary = 2
)

// InputEvent is a single raw input event.
type InputEvent struct {
	Kind Kind

	// DeltaX and DeltaY are the wheel deltas in DeltaMode units.
	DeltaX    float64
	DeltaY    float64
	DeltaMode DeltaMode

	// X and Y are the touch or pointer position.
	X float64
	Y float64

	Button int
	Ctrl   bool

	// Path lists the nodes the event passed through, innermost first.
	Path []host.Node

	defaultPrevented bool
}

// PreventDefault asks the host to skip its native handling of the event.
func (e *InputEvent) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *InputEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Source delivers input events.
type Source interface {
	Subscribe(fn func(*InputEvent)) (cancel func())
}

// SourceFunc adapts a subscribe function to Source.
type SourceFunc func(fn func(*InputEvent)) (cancel func())

// Subscribe calls f.
func (f SourceFunc) Subscribe(fn func(*InputEvent)) (cancel func()) {
	return f(fn)
}

// Viewport is the area page-based wheel deltas are measured against.
type Viewport interface {
	ClientSize() (width, height float64)
	OnResize(fn func()) (cancel func())
}

// Delta is a normalized scroll request in pixels.
type Delta struct {
	DeltaX float64
	DeltaY float64
	Event  *InputEvent
}
