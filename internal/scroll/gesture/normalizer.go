package gesture

import "github.com/dshills/glide/internal/scroll/emitter"

// LineHeight is the pixel size of one wheel line.
const LineHeight = 100.0 / 6.0

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithWheelMultiplier scales wheel deltas.
func WithWheelMultiplier(m float64) Option {
	return func(n *Normalizer) {
		n.wheelMultiplier = m
	}
}

// WithTouchMultiplier scales touch deltas.
func WithTouchMultiplier(m float64) Option {
	return func(n *Normalizer) {
		n.touchMultiplier = m
	}
}

// WithLineHeight sets the pixel size of DeltaLine units.
func WithLineHeight(h float64) Option {
	return func(n *Normalizer) {
		if h > 0 {
			n.lineHeight = h
		}
	}
}

// Normalizer converts raw input into Delta records.
type Normalizer struct {
	wheelMultiplier float64
	touchMultiplier float64
	lineHeight      float64

	viewport       Viewport
	viewportWidth  float64
	viewportHeight float64

	touchX, touchY float64
	lastX, lastY   float64

	listeners *emitter.Emitter[Delta]
	cancels   []func()
}

// NewNormalizer subscribes to src and tracks the size of viewport.
func NewNormalizer(src Source, viewport Viewport, opts ...Option) *Normalizer {
	n := &Normalizer{
		wheelMultiplier: 1,
		touchMultiplier: 1,
		lineHeight:      LineHeight,
		viewport:        viewport,
		listeners:       emitter.New[Delta](),
	}
	for _, opt := range opts {
		opt(n)
	}

	if viewport != nil {
		n.refreshViewport()
		if cancel := viewport.OnResize(n.refreshViewport); cancel != nil {
			n.cancels = append(n.cancels, cancel)
		}
	}
	if src != nil {
		if cancel := src.Subscribe(n.Handle); cancel != nil {
			n.cancels = append(n.cancels, cancel)
		}
	}
	return n
}

// On registers fn for every normalized delta.
func (n *Normalizer) On(fn func(Delta)) *emitter.Subscription {
	return n.listeners.On(fn)
}

// SetMultipliers replaces the wheel and touch multipliers.
func (n *Normalizer) SetMultipliers(wheel, touch float64) {
	n.wheelMultiplier = wheel
	n.touchMultiplier = touch
}

// SetLineHeight replaces the pixel size of DeltaLine units. Values <= 0
// are ignored.
func (n *Normalizer) SetLineHeight(h float64) {
	if h > 0 {
		n.lineHeight = h
	}
}

// Handle processes one raw event. Sources call it; tests may too.
func (n *Normalizer) Handle(ev *InputEvent) {
	switch ev.Kind {
	case KindWheel:
		n.wheel(ev)
	case KindTouchStart:
		n.touchX, n.touchY = ev.X, ev.Y
		n.lastX, n.lastY = 0, 0
		n.listeners.Emit(Delta{Event: ev})
	case KindTouchMove:
		dx := -(ev.X - n.touchX) * n.touchMultiplier
		dy := -(ev.Y - n.touchY) * n.touchMultiplier
		n.touchX, n.touchY = ev.X, ev.Y
		n.lastX, n.lastY = dx, dy
		n.listeners.Emit(Delta{DeltaX: dx, DeltaY: dy, Event: ev})
	case KindTouchEnd:
		n.listeners.Emit(Delta{DeltaX: n.lastX, DeltaY: n.lastY, Event: ev})
	}
}

func (n *Normalizer) wheel(ev *InputEvent) {
	dx, dy := ev.DeltaX, ev.DeltaY
	switch ev.DeltaMode {
	case DeltaLine:
		dx *= n.lineHeight
		dy *= n.lineHeight
	case DeltaPage:
		dx *= n.viewportWidth
		dy *= n.viewportHeight
	}
	dx *= n.wheelMultiplier
	dy *= n.wheelMultiplier
	n.listeners.Emit(Delta{DeltaX: dx, DeltaY: dy, Event: ev})
}

func (n *Normalizer) refreshViewport() {
	n.viewportWidth, n.viewportHeight = n.viewport.ClientSize()
}

// Destroy releases the source and viewport subscriptions and drops every
// listener.
func (n *Normalizer) Destroy() {
	for _, cancel := range n.cancels {
		cancel()
	}
	n.cancels = nil
	n.listeners.Clear()
}
