package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/glide/internal/scroll/emitter"
	"github.com/dshills/glide/internal/scroll/gesture"
	"github.com/dshills/glide/internal/scroll/host"
)

// DefaultWheelLines is how many rows one wheel notch moves.
const DefaultWheelLines = 3

// InputOption configures an Input.
type InputOption func(*Input)

// WithWheelLines sets the rows per wheel notch.
func WithWheelLines(n float64) InputOption {
	return func(in *Input) {
		if n > 0 {
			in.wheelLines = n
		}
	}
}

// Input converts tcell mouse events on a pane into gesture events. It
// implements gesture.Source.
type Input struct {
	pane       *Pane
	listeners  *emitter.Emitter[*gesture.InputEvent]
	wheelLines float64

	dragging bool
	lastX    int
	lastY    int
}

// NewInput returns an Input for pane.
func NewInput(pane *Pane, opts ...InputOption) *Input {
	in := &Input{
		pane:       pane,
		listeners:  emitter.New[*gesture.InputEvent](),
		wheelLines: DefaultWheelLines,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Subscribe implements gesture.Source.
func (in *Input) Subscribe(fn func(*gesture.InputEvent)) func() {
	return in.listeners.On(fn).Unsubscribe
}

// Dragging reports whether a left-button drag is in progress.
func (in *Input) Dragging() bool {
	return in.dragging
}

// Handle processes ev and reports whether it was a mouse event for the
// pane. Events nobody prevented get native handling.
func (in *Input) Handle(ev tcell.Event) bool {
	me, ok := ev.(*tcell.EventMouse)
	if !ok {
		return false
	}
	x, y := me.Position()
	if !in.dragging && !in.inside(x, y) {
		return false
	}

	buttons := me.Buttons()
	ctrl := me.Modifiers()&tcell.ModCtrl != 0

	switch {
	case buttons&(tcell.WheelUp|tcell.WheelDown|tcell.WheelLeft|tcell.WheelRight) != 0:
		in.wheel(buttons, x, y, ctrl)
	case buttons&tcell.ButtonPrimary != 0:
		in.drag(x, y)
	case buttons&tcell.ButtonMiddle != 0:
		in.dispatch(&gesture.InputEvent{Kind: gesture.KindPointerDown, Button: gesture.ButtonMiddle}, x, y)
	case in.dragging:
		in.dragging = false
		in.dispatch(&gesture.InputEvent{Kind: gesture.KindTouchEnd}, in.lastX, in.lastY)
	}
	return true
}

func (in *Input) wheel(buttons tcell.ButtonMask, x, y int, ctrl bool) {
	ev := &gesture.InputEvent{Kind: gesture.KindWheel, DeltaMode: gesture.DeltaLine, Ctrl: ctrl}
	switch {
	case buttons&tcell.WheelUp != 0:
		ev.DeltaY = -in.wheelLines
	case buttons&tcell.WheelDown != 0:
		ev.DeltaY = in.wheelLines
	case buttons&tcell.WheelLeft != 0:
		ev.DeltaX = -in.wheelLines
	case buttons&tcell.WheelRight != 0:
		ev.DeltaX = in.wheelLines
	}
	if in.dispatch(ev, x, y) && !ctrl {
		in.pane.ScrollBy(ev.DeltaY)
	}
}

func (in *Input) drag(x, y int) {
	if !in.dragging {
		in.dragging = true
		in.lastX, in.lastY = x, y
		in.dispatch(&gesture.InputEvent{Kind: gesture.KindTouchStart}, x, y)
		return
	}
	if y == in.lastY && x == in.lastX {
		return
	}
	dy := y - in.lastY
	in.lastX, in.lastY = x, y
	if in.dispatch(&gesture.InputEvent{Kind: gesture.KindTouchMove}, x, y) {
		in.pane.ScrollBy(-float64(dy))
	}
}

// dispatch fills in position and path, delivers ev and reports whether
// native handling should follow.
func (in *Input) dispatch(ev *gesture.InputEvent, x, y int) bool {
	ev.X, ev.Y = float64(x), float64(y)
	ev.Path = in.path(y)
	in.listeners.Emit(ev)
	return !ev.DefaultPrevented()
}

func (in *Input) path(y int) []host.Node {
	root := in.pane.Root()
	row := y - in.pane.Region().Y + in.pane.TopLine()
	if el := in.pane.Line(row); el != nil {
		return []host.Node{el, root}
	}
	return []host.Node{root}
}

func (in *Input) inside(x, y int) bool {
	r := in.pane.Region()
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}
