// Package dom is an in-memory host.Container.
//
// A Document lays its elements out as stacked blocks along one axis, much
// like a column of block elements in a browser. Scroll and resize
// notifications are delivered through a scheduler rather than inline, so
// writes made during a frame are observed the way a browser reports them:
// later, and coalesced.
package dom

import (
	"math"

	"github.com/dshills/glide/internal/schedule"
	"github.com/dshills/glide/internal/scroll/emitter"
	"github.com/dshills/glide/internal/scroll/gesture"
	"github.com/dshills/glide/internal/scroll/host"
)

// Option configures a Document.
type Option func(*Document)

// WithFlow stacks elements along axis instead of vertically.
func WithFlow(axis host.Axis) Option {
	return func(d *Document) {
		d.flow = axis
	}
}

// WithRect embeds the document in a page at r. The document is then a
// scrollable region rather than the whole page and its size follows r.
func WithRect(r host.Rect) Option {
	return func(d *Document) {
		d.embedded = true
		d.rect = r
		d.width = math.Abs(r.Width)
		d.height = math.Abs(r.Height)
	}
}

// Document is an in-memory scrollable container.
type Document struct {
	sched schedule.Scheduler

	flow     host.Axis
	embedded bool
	rect     host.Rect

	width  float64
	height float64
	offset [2]float64

	root *Node

	scrollQueued bool
	resizeQueued bool

	scrollListeners *emitter.Emitter[struct{}]
	resizeListeners *emitter.Emitter[struct{}]
	inputListeners  *emitter.Emitter[*gesture.InputEvent]
}

// New creates a document with a width x height viewport. Notifications are
// queued on sched, which must not be nil.
func New(sched schedule.Scheduler, width, height float64, opts ...Option) *Document {
	d := &Document{
		sched:           sched,
		width:           width,
		height:          height,
		scrollListeners: emitter.New[struct{}](),
		resizeListeners: emitter.New[struct{}](),
		inputListeners:  emitter.New[*gesture.InputEvent](),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.root = d.Create("root")
	return d
}

// Create returns a detached element.
func (d *Document) Create(tag string) *Node {
	return &Node{
		doc:       d,
		tag:       tag,
		attrs:     make(map[string]string),
		listeners: emitter.New[struct{}](),
	}
}

// Body returns the root element. Content is appended to it.
func (d *Document) Body() *Node {
	return d.root
}

// Root implements host.Container.
func (d *Document) Root() host.Node {
	return d.root
}

// ClientSize implements host.Box.
func (d *Document) ClientSize() (float64, float64) {
	return d.width, d.height
}

// ScrollSize implements host.Box. The extent along the flow axis is the
// stacked content length, never less than the viewport.
func (d *Document) ScrollSize() (float64, float64) {
	content := d.root.Extent()
	if d.flow == host.AxisX {
		return math.Max(content, d.width), d.height
	}
	return d.width, math.Max(content, d.height)
}

// OnResize implements host.Box.
func (d *Document) OnResize(fn func()) func() {
	sub := d.resizeListeners.On(func(struct{}) { fn() })
	return sub.Unsubscribe
}

// ScrollOffset implements host.Container.
func (d *Document) ScrollOffset(axis host.Axis) float64 {
	return d.offset[axis]
}

// SetScrollOffset implements host.Container. The offset is clamped to the
// scrollable range; a change is reported once per drain of the scheduler.
func (d *Document) SetScrollOffset(axis host.Axis, v float64) {
	v = math.Max(0, math.Min(v, d.maxOffset(axis)))
	if v == d.offset[axis] {
		return
	}
	d.offset[axis] = v
	d.queueScroll()
}

// OnScroll implements host.Container.
func (d *Document) OnScroll(fn func()) func() {
	sub := d.scrollListeners.On(func(struct{}) { fn() })
	return sub.Unsubscribe
}

// BoundingRect implements host.Container.
func (d *Document) BoundingRect() host.Rect {
	if d.embedded {
		return d.rect
	}
	return host.Rect{Width: d.width, Height: d.height}
}

// IsDocument implements host.Container.
func (d *Document) IsDocument() bool {
	return !d.embedded
}

// Resize changes the viewport size.
func (d *Document) Resize(width, height float64) {
	if width == d.width && height == d.height {
		return
	}
	d.width, d.height = width, height
	if d.embedded {
		d.rect.Width, d.rect.Height = width, height
	}
	d.clampOffsets()
	d.queueResize()
}

// Subscribe implements gesture.Source.
func (d *Document) Subscribe(fn func(*gesture.InputEvent)) func() {
	sub := d.inputListeners.On(fn)
	return sub.Unsubscribe
}

// Dispatch delivers ev to every input subscriber. Use Node.Path to fill
// ev.Path for events aimed at an element.
func (d *Document) Dispatch(ev *gesture.InputEvent) {
	d.inputListeners.Emit(ev)
}

// Query implements host.Querier. Supported selectors are "#id", ".class",
// "[attr]" and bare tag names. The first match in document order wins.
func (d *Document) Query(selector string) host.Element {
	match := compile(selector)
	if match == nil {
		return nil
	}
	if n := d.root.find(match); n != nil {
		return n
	}
	return nil
}

func (d *Document) maxOffset(axis host.Axis) float64 {
	sw, sh := d.ScrollSize()
	if axis == host.AxisX {
		return math.Max(0, sw-d.width)
	}
	return math.Max(0, sh-d.height)
}

func (d *Document) clampOffsets() {
	for _, axis := range []host.Axis{host.AxisY, host.AxisX} {
		if limit := d.maxOffset(axis); d.offset[axis] > limit {
			d.offset[axis] = limit
			d.queueScroll()
		}
	}
}

func (d *Document) queueScroll() {
	if d.scrollQueued {
		return
	}
	d.scrollQueued = true
	schedule.Post(d.sched, func() {
		d.scrollQueued = false
		d.scrollListeners.Emit(struct{}{})
	})
}

func (d *Document) queueResize() {
	if d.resizeQueued {
		return
	}
	d.resizeQueued = true
	schedule.Post(d.sched, func() {
		d.resizeQueued = false
		d.resizeListeners.Emit(struct{}{})
	})
}

// contentChanged runs after any element extent changes.
func (d *Document) contentChanged(n *Node) {
	for p := n; p != nil; p = p.parent {
		p.queueResize()
	}
	d.clampOffsets()
	d.queueResize()
}
