package dom

import (
	"slices"
	"strings"

	"github.com/dshills/glide/internal/schedule"
	"github.com/dshills/glide/internal/scroll/emitter"
	"github.com/dshills/glide/internal/scroll/host"
)

// Node is an element of a Document.
type Node struct {
	doc      *Document
	tag      string
	id       string
	classes  []string
	attrs    map[string]string
	parent   *Node
	children []*Node

	size   float64
	shift  float64
	sticky bool

	resizeQueued bool
	listeners    *emitter.Emitter[struct{}]
}

// Tag returns the element tag.
func (n *Node) Tag() string {
	return n.tag
}

// ID returns the element id.
func (n *Node) ID() string {
	return n.id
}

// SetID sets the element id.
func (n *Node) SetID(id string) *Node {
	n.id = id
	return n
}

// Append adds children at the end of n and returns n.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c.parent != nil {
			c.parent.remove(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
	if len(children) > 0 {
		n.doc.contentChanged(n)
	}
	return n
}

// Remove detaches n from its parent.
func (n *Node) Remove() {
	if p := n.parent; p != nil {
		p.remove(n)
		n.parent = nil
		n.doc.contentChanged(p)
	}
}

func (n *Node) remove(c *Node) {
	if i := slices.Index(n.children, c); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
}

// Children returns the child elements.
func (n *Node) Children() []*Node {
	return n.children
}

// Parent implements host.Node.
func (n *Node) Parent() host.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Path returns n and its ancestors, innermost first, for use as an input
// event path.
func (n *Node) Path() []host.Node {
	var path []host.Node
	for p := n; p != nil; p = p.parent {
		path = append(path, p)
	}
	return path
}

// AddClass adds class names.
func (n *Node) AddClass(names ...string) *Node {
	for _, name := range names {
		if !n.HasClass(name) {
			n.classes = append(n.classes, name)
		}
	}
	return n
}

// RemoveClass removes a class name.
func (n *Node) RemoveClass(name string) *Node {
	if i := slices.Index(n.classes, name); i >= 0 {
		n.classes = slices.Delete(n.classes, i, i+1)
	}
	return n
}

// SetClassName replaces the class list with the space separated names.
func (n *Node) SetClassName(names string) *Node {
	n.classes = n.classes[:0]
	for _, name := range strings.Fields(names) {
		n.AddClass(name)
	}
	return n
}

// HasClass implements host.Node.
func (n *Node) HasClass(name string) bool {
	return slices.Contains(n.classes, name)
}

// SetAttribute sets an attribute.
func (n *Node) SetAttribute(name, value string) *Node {
	n.attrs[name] = value
	return n
}

// RemoveAttribute deletes an attribute.
func (n *Node) RemoveAttribute(name string) *Node {
	delete(n.attrs, name)
	return n
}

// HasAttribute implements host.Node.
func (n *Node) HasAttribute(name string) bool {
	_, ok := n.attrs[name]
	return ok
}

// SetSize fixes the element extent along the flow axis. Zero lets the
// extent follow the children.
func (n *Node) SetSize(size float64) *Node {
	if size == n.size {
		return n
	}
	n.size = size
	n.doc.contentChanged(n)
	return n
}

// Extent returns the element length along the flow axis.
func (n *Node) Extent() float64 {
	if n.size > 0 {
		return n.size
	}
	var total float64
	for _, c := range n.children {
		total += c.Extent()
	}
	return total
}

// SetTransform shifts the rendered element along the flow axis without
// affecting layout.
func (n *Node) SetTransform(shift float64) *Node {
	n.shift = shift
	return n
}

// Sticky implements host.StickyNode.
func (n *Node) Sticky() bool {
	return n.sticky
}

// SetSticky implements host.StickyNode. A sticky element never renders
// above the leading edge of the viewport.
func (n *Node) SetSticky(sticky bool) {
	n.sticky = sticky
}

// LayoutRect implements host.LayoutElement: the untransformed position in
// content coordinates.
func (n *Node) LayoutRect() host.Rect {
	return n.rect(n.layoutStart())
}

// BoundingRect implements host.Element: the rendered position relative to
// the page viewport.
func (n *Node) BoundingRect() host.Rect {
	d := n.doc
	start := n.layoutStart() - d.offset[d.flow] + n.transform()
	origin := d.BoundingRect().Start(d.flow)
	if n.sticky && start < 0 {
		start = 0
	}
	r := n.rect(start + origin)
	cross := crossAxis(d.flow)
	if cross == host.AxisX {
		r.X = d.BoundingRect().Left() - d.offset[cross]
	} else {
		r.Y = d.BoundingRect().Top() - d.offset[cross]
	}
	return r
}

// OnResize implements host.Resizable.
func (n *Node) OnResize(fn func()) func() {
	sub := n.listeners.On(func(struct{}) { fn() })
	return sub.Unsubscribe
}

func (n *Node) rect(start float64) host.Rect {
	d := n.doc
	if d.flow == host.AxisX {
		return host.Rect{X: start, Width: n.Extent(), Height: d.height}
	}
	return host.Rect{Y: start, Width: d.width, Height: n.Extent()}
}

func (n *Node) layoutStart() float64 {
	var start float64
	for c := n; c.parent != nil; c = c.parent {
		for _, sib := range c.parent.children {
			if sib == c {
				break
			}
			start += sib.Extent()
		}
	}
	return start
}

func (n *Node) transform() float64 {
	var shift float64
	for p := n; p != nil; p = p.parent {
		shift += p.shift
	}
	return shift
}

func (n *Node) queueResize() {
	if n.resizeQueued || n.listeners.Len() == 0 {
		return
	}
	n.resizeQueued = true
	schedule.Post(n.doc.sched, func() {
		n.resizeQueued = false
		n.listeners.Emit(struct{}{})
	})
}

func (n *Node) find(match func(*Node) bool) *Node {
	if match(n) {
		return n
	}
	for _, c := range n.children {
		if found := c.find(match); found != nil {
			return found
		}
	}
	return nil
}

func crossAxis(axis host.Axis) host.Axis {
	if axis == host.AxisX {
		return host.AxisY
	}
	return host.AxisX
}
