// Package host defines what the scroll engine needs from the thing it
// scrolls.
//
// A host is anything with a scroll offset, a viewport and a content extent:
// a whole document, a scrollable pane inside one, or a terminal region. The
// engine only reads and writes through these interfaces; it never assumes a
// rendering technology.
package host

// Axis selects a scroll axis.
type Axis uint8

const (
	// AxisY is the vertical axis.
	AxisY Axis = iota
	// AxisX is the horizontal axis.
	AxisX
)

// String returns the axis name.
func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// Box is a region with a viewport and a content extent.
type Box interface {
	// ClientSize is the visible viewport size.
	ClientSize() (width, height float64)
	// ScrollSize is the full content extent.
	ScrollSize() (width, height float64)
	// OnResize registers fn to run whenever either size changes.
	OnResize(fn func()) (cancel func())
}

// Container is a scrollable host.
type Container interface {
	Box

	// ScrollOffset returns the host's own offset on axis.
	ScrollOffset(axis Axis) float64
	// SetScrollOffset writes the offset. Hosts may clamp it and should
	// report the change through OnScroll, typically asynchronously.
	SetScrollOffset(axis Axis, offset float64)
	// OnScroll registers fn to run whenever the offset changes, whether
	// the change came from SetScrollOffset or from the user.
	OnScroll(fn func()) (cancel func())

	// Root is the node events bubble up to. Event paths are cut here
	// when looking for opt-out markers.
	Root() Node
	// BoundingRect is the container's position relative to the page
	// viewport.
	BoundingRect() Rect
	// IsDocument reports whether the container is the whole document,
	// in which case element positions need no container correction.
	IsDocument() bool
}

// Node is an element in an input event's path.
type Node interface {
	Parent() Node
	HasAttribute(name string) bool
	HasClass(name string) bool
}

// Element is a node with geometry.
type Element interface {
	Node
	// BoundingRect is the element's visual position relative to the
	// page viewport, transforms and stickiness included.
	BoundingRect() Rect
}

// LayoutElement can report its untransformed position in content
// coordinates.
type LayoutElement interface {
	Element
	LayoutRect() Rect
}

// StickyNode is a node whose position may stick to the viewport edge.
type StickyNode interface {
	Node
	Sticky() bool
	SetSticky(sticky bool)
}

// Resizable reports size changes of an element.
type Resizable interface {
	OnResize(fn func()) (cancel func())
}

// Querier resolves selectors to elements.
type Querier interface {
	// Query returns the first element matching selector, or nil.
	Query(selector string) Element
}
