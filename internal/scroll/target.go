package scroll

import (
	"strings"

	"github.com/dshills/glide/internal/scroll/host"
)

// Target is a ScrollTo destination.
type Target interface {
	// resolve returns the destination before the call's offset is added.
	resolve(s *Scroller) (float64, bool)
}

type offsetTarget float64

func (t offsetTarget) resolve(*Scroller) (float64, bool) {
	return float64(t), true
}

// Offset targets an absolute scroll offset.
func Offset(v float64) Target {
	return offsetTarget(v)
}

type selectorTarget string

func (t selectorTarget) resolve(s *Scroller) (float64, bool) {
	switch strings.TrimSpace(string(t)) {
	case "top", "left", "start":
		return 0, true
	case "bottom", "right", "end":
		return s.Limit(), true
	}
	q, ok := s.container.(host.Querier)
	if !ok {
		return 0, false
	}
	el := q.Query(string(t))
	if el == nil {
		return 0, false
	}
	return elementTarget{el}.resolve(s)
}

// Selector targets a keyword (top, left, start, bottom, right, end) or the
// first element matching a selector. Selectors need a container that
// implements host.Querier.
func Selector(sel string) Target {
	return selectorTarget(sel)
}

type elementTarget struct {
	el host.Element
}

func (t elementTarget) resolve(s *Scroller) (float64, bool) {
	if t.el == nil {
		return 0, false
	}
	axis := s.axis()
	v := t.el.BoundingRect().Start(axis) + s.animatedScroll
	if !s.container.IsDocument() {
		v -= s.container.BoundingRect().Start(axis)
	}
	return v, true
}

// ElementTarget targets the leading edge of el.
func ElementTarget(el host.Element) Target {
	return elementTarget{el}
}
