package scroll

import (
	"math"

	"github.com/dshills/glide/internal/scroll/animate"
	"github.com/dshills/glide/internal/scroll/gesture"
)

// inertiaThreshold is the touch-end delta above which a flick continues
// with momentum.
const inertiaThreshold = 5

// onGesture decides whether a normalized gesture scrolls natively or is
// animated.
func (s *Scroller) onGesture(d gesture.Delta) {
	if s.destroyed {
		return
	}
	if s.virtualScroll != nil && !s.virtualScroll(d) {
		return
	}
	s.virtualEvents.Emit(d)

	ev := d.Event
	if ev == nil || ev.Ctrl {
		// Ctrl+wheel is pinch zoom.
		return
	}

	isTouch := ev.Kind.IsTouch()
	isWheel := ev.Kind.IsWheel()
	s.touching = ev.Kind == gesture.KindTouchStart || ev.Kind == gesture.KindTouchMove

	if s.stopped || s.locked {
		ev.PreventDefault()
		return
	}

	if s.opts.SyncTouch && ev.Kind == gesture.KindTouchStart {
		s.Reset()
		return
	}

	if d.DeltaX == 0 && d.DeltaY == 0 {
		return
	}
	switch s.opts.GestureOrientation {
	case Vertical:
		if d.DeltaY == 0 {
			return
		}
	case Horizontal:
		if d.DeltaX == 0 {
			return
		}
	}

	if s.prevented(ev, isTouch, isWheel) {
		return
	}

	smooth := (s.opts.SyncTouch && isTouch) || (s.opts.SmoothWheel && isWheel)
	if !smooth {
		s.setMode(ModeNative)
		s.animator.Stop()
		return
	}

	ev.PreventDefault()

	delta := d.DeltaY
	switch s.opts.GestureOrientation {
	case Both:
		if math.Abs(d.DeltaX) >= math.Abs(d.DeltaY) {
			delta = d.DeltaX
		}
	case Horizontal:
		delta = d.DeltaX
	}

	inertia := isTouch && ev.Kind == gesture.KindTouchEnd && math.Abs(delta) > inertiaThreshold
	if inertia {
		delta = s.velocity * s.opts.TouchInertiaMultiplier
	}

	opts := []ScrollOption{fromGesture()}
	if isTouch {
		lerp := 1.0
		if inertia {
			lerp = s.opts.SyncTouchLerp
		}
		opts = append(opts, withParams(animate.Params{Lerp: lerp}))
	}
	s.ScrollTo(Offset(s.targetScroll+delta), opts...)
}

// prevented reports whether a node on the event path, below the container
// root, opts out of interception.
func (s *Scroller) prevented(ev *gesture.InputEvent, isTouch, isWheel bool) bool {
	root := s.container.Root()
	for _, node := range ev.Path {
		if node == nil || node == root {
			break
		}
		if s.prevent != nil && s.prevent(node) {
			return true
		}
		if node.HasAttribute(AttrPrevent) ||
			(isTouch && node.HasAttribute(AttrPreventTouch)) ||
			(isWheel && node.HasAttribute(AttrPreventWheel)) {
			return true
		}
		// A nested scroller that is running handles its own input.
		if node.HasClass(ClassName) && !node.HasClass(ClassNameStopped) {
			return true
		}
	}
	return false
}

// onPointer resets on a middle-button press, which starts the host's own
// autoscroll.
func (s *Scroller) onPointer(ev *gesture.InputEvent) {
	if ev.Kind == gesture.KindPointerDown && ev.Button == gesture.ButtonMiddle {
		s.Reset()
	}
}
