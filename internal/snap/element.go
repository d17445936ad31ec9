package snap

import (
	"github.com/dshills/glide/internal/scroll/host"
)

// Align is where an element lines up with the viewport.
type Align uint8

const (
	// AlignStart puts the element's leading edge at the viewport's.
	AlignStart Align = iota
	// AlignCenter centers the element in the viewport.
	AlignCenter
	// AlignEnd puts the element's trailing edge at the viewport's.
	AlignEnd
)

// String returns the alignment name.
func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	default:
		return "start"
	}
}

// ParseAlign parses an alignment name.
func ParseAlign(s string) (Align, bool) {
	switch s {
	case "start":
		return AlignStart, true
	case "center":
		return AlignCenter, true
	case "end":
		return AlignEnd, true
	default:
		return AlignStart, false
	}
}

// ElementOptions configure an element snap point.
type ElementOptions struct {
	// Align lists the alignments the element contributes. Empty means
	// start only.
	Align []Align
	// IgnoreSticky measures a sticky element at its laid-out position.
	IgnoreSticky bool
	// IgnoreTransform measures the element without its transform, when
	// the element can report its layout position.
	IgnoreTransform bool
}

type element struct {
	el      host.Element
	opts    ElementOptions
	seq     uint64
	start   float64
	size    float64
	cancels []func()
}

// measure records the element's position in content coordinates on axis.
func (e *element) measure(axis host.Axis, scroll float64, container host.Container) {
	if sticky, ok := e.el.(host.StickyNode); ok && e.opts.IgnoreSticky && sticky.Sticky() {
		sticky.SetSticky(false)
		defer sticky.SetSticky(true)
	}

	if le, ok := e.el.(host.LayoutElement); ok && e.opts.IgnoreTransform {
		r := le.LayoutRect()
		e.start, e.size = r.Start(axis), r.Size(axis)
		return
	}

	r := e.el.BoundingRect()
	e.start = r.Start(axis) + scroll
	if !container.IsDocument() {
		e.start -= container.BoundingRect().Start(axis)
	}
	e.size = r.Size(axis)
}

// values returns one snap offset per alignment for a viewport of the given
// size.
func (e *element) values(viewport float64) []float64 {
	aligns := e.opts.Align
	if len(aligns) == 0 {
		aligns = []Align{AlignStart}
	}
	out := make([]float64, 0, len(aligns))
	for _, a := range aligns {
		switch a {
		case AlignStart:
			out = append(out, e.start)
		case AlignCenter:
			out = append(out, e.start+e.size/2-viewport/2)
		case AlignEnd:
			out = append(out, e.start+e.size-viewport)
		}
	}
	return out
}

func (e *element) release() {
	for _, cancel := range e.cancels {
		cancel()
	}
	e.cancels = nil
}
