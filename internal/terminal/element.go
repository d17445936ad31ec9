package terminal

import (
	"strings"

	"github.com/dshills/glide/internal/scroll/host"
)

// LineElement is one content row as a host.Element. Elements are stable
// for a pane until SetLines replaces the content.
type LineElement struct {
	pane  *Pane
	index int
}

// Index returns the row number in the content.
func (e *LineElement) Index() int {
	return e.index
}

// Line returns the row's content.
func (e *LineElement) Line() Line {
	return e.pane.lines[e.index]
}

// Parent implements host.Node.
func (e *LineElement) Parent() host.Node {
	return e.pane.root
}

// HasAttribute implements host.Node. Lines carry no attributes.
func (e *LineElement) HasAttribute(string) bool {
	return false
}

// HasClass implements host.Node. Heading lines have class "heading".
func (e *LineElement) HasClass(name string) bool {
	return name == "heading" && e.Line().Heading > 0
}

// BoundingRect implements host.Element in screen cells.
func (e *LineElement) BoundingRect() host.Rect {
	r := e.pane.BoundingRect()
	return host.Rect{X: r.X, Y: r.Y + float64(e.index) - e.pane.offset, Width: r.Width, Height: 1}
}

// LayoutRect implements host.LayoutElement.
func (e *LineElement) LayoutRect() host.Rect {
	return host.Rect{Y: float64(e.index), Width: float64(e.pane.region.Width), Height: 1}
}

type paneNode struct {
	pane    *Pane
	classes map[string]bool
}

func (n *paneNode) Parent() host.Node {
	return nil
}

func (n *paneNode) HasAttribute(string) bool {
	return false
}

func (n *paneNode) HasClass(name string) bool {
	return n.classes[name]
}

func (n *paneNode) setClassName(names string) {
	clear(n.classes)
	for _, c := range strings.Fields(names) {
		n.classes[c] = true
	}
}
