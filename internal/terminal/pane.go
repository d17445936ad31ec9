package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/glide/internal/schedule"
	"github.com/dshills/glide/internal/scroll/emitter"
	"github.com/dshills/glide/internal/scroll/host"
)

// Line is one row of pane content.
type Line struct {
	Text  string
	Style tcell.Style
	// Anchor lets Query find the line as "#anchor".
	Anchor string
	// Heading is the heading level, zero for body text.
	Heading int
}

// Region is a rectangle of screen cells.
type Region struct {
	X, Y, Width, Height int
}

// Pane is a scrollable text region of a tcell screen. It must be used from
// one goroutine; change notifications are posted to its scheduler.
type Pane struct {
	screen tcell.Screen
	sched  schedule.Scheduler
	region Region

	lines    []Line
	elements []*LineElement
	offset   float64
	root     *paneNode

	scrollListeners *emitter.Emitter[struct{}]
	resizeListeners *emitter.Emitter[struct{}]
	scrollQueued    bool
	resizeQueued    bool
}

// NewPane returns a pane covering region of screen.
func NewPane(screen tcell.Screen, sched schedule.Scheduler, region Region) *Pane {
	p := &Pane{
		screen:          screen,
		sched:           sched,
		region:          region,
		scrollListeners: emitter.New[struct{}](),
		resizeListeners: emitter.New[struct{}](),
	}
	p.root = &paneNode{pane: p, classes: make(map[string]bool)}
	return p
}

// SetLines replaces the content.
func (p *Pane) SetLines(lines []Line) {
	p.lines = lines
	p.elements = make([]*LineElement, len(lines))
	p.contentChanged()
}

// Lines returns the content.
func (p *Pane) Lines() []Line {
	return p.lines
}

// SetRegion moves or resizes the pane.
func (p *Pane) SetRegion(r Region) {
	if r == p.region {
		return
	}
	p.region = r
	p.contentChanged()
}

// Region returns the pane's screen rectangle.
func (p *Pane) Region() Region {
	return p.region
}

// ClientSize implements host.Box.
func (p *Pane) ClientSize() (float64, float64) {
	return float64(p.region.Width), float64(p.region.Height)
}

// ScrollSize implements host.Box. The extent is never smaller than the
// viewport.
func (p *Pane) ScrollSize() (float64, float64) {
	return float64(p.region.Width), float64(max(len(p.lines), p.region.Height))
}

// OnResize implements host.Box.
func (p *Pane) OnResize(fn func()) func() {
	return p.resizeListeners.On(func(struct{}) { fn() }).Unsubscribe
}

// ScrollOffset implements host.Container. Panes only scroll vertically.
func (p *Pane) ScrollOffset(axis host.Axis) float64 {
	if axis == host.AxisX {
		return 0
	}
	return p.offset
}

// SetScrollOffset implements host.Container. The offset is clamped to the
// content and the change is reported asynchronously.
func (p *Pane) SetScrollOffset(axis host.Axis, v float64) {
	if axis == host.AxisX {
		return
	}
	v = min(max(v, 0), p.maxOffset())
	if v == p.offset {
		return
	}
	p.offset = v
	p.queueScroll()
}

// ScrollBy moves the offset by delta rows, as native input would.
func (p *Pane) ScrollBy(delta float64) {
	p.SetScrollOffset(host.AxisY, p.offset+delta)
}

// OnScroll implements host.Container.
func (p *Pane) OnScroll(fn func()) func() {
	return p.scrollListeners.On(func(struct{}) { fn() }).Unsubscribe
}

// Root implements host.Container.
func (p *Pane) Root() host.Node {
	return p.root
}

// SetClassName replaces the root node's classes, space separated.
func (p *Pane) SetClassName(names string) {
	p.root.setClassName(names)
}

// BoundingRect implements host.Container.
func (p *Pane) BoundingRect() host.Rect {
	r := p.region
	return host.Rect{X: float64(r.X), Y: float64(r.Y), Width: float64(r.Width), Height: float64(r.Height)}
}

// IsDocument implements host.Container.
func (p *Pane) IsDocument() bool {
	return false
}

// Line returns the element for row i of the content, or nil.
func (p *Pane) Line(i int) *LineElement {
	if i < 0 || i >= len(p.lines) {
		return nil
	}
	if p.elements[i] == nil {
		p.elements[i] = &LineElement{pane: p, index: i}
	}
	return p.elements[i]
}

// Headings returns the elements of every heading line.
func (p *Pane) Headings() []*LineElement {
	var out []*LineElement
	for i, l := range p.lines {
		if l.Heading > 0 {
			out = append(out, p.Line(i))
		}
	}
	return out
}

// Query implements host.Querier for "#anchor" selectors.
func (p *Pane) Query(selector string) host.Element {
	if len(selector) < 2 || selector[0] != '#' {
		return nil
	}
	for i, l := range p.lines {
		if l.Anchor == selector[1:] {
			return p.Line(i)
		}
	}
	return nil
}

// TopLine returns the index of the first visible row.
func (p *Pane) TopLine() int {
	return int(math.Round(p.offset))
}

// Draw renders the visible rows. It does not call Show.
func (p *Pane) Draw() {
	r := p.region
	top := p.TopLine()
	for row := 0; row < r.Height; row++ {
		y := r.Y + row
		x := r.X
		style := tcell.StyleDefault
		if i := top + row; i < len(p.lines) {
			line := p.lines[i]
			style = line.Style
			x = p.drawText(x, y, r.X+r.Width, line.Text, style)
		}
		for ; x < r.X+r.Width; x++ {
			p.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// drawText writes text from x up to limit and returns the next free
// column.
func (p *Pane) drawText(x, y, limit int, text string, style tcell.Style) int {
	return DrawText(p.screen, x, y, limit, text, style)
}

// DrawText writes text on row y from column x, stopping before a grapheme
// would cross limit. It returns the next free column.
func DrawText(screen tcell.Screen, x, y, limit int, text string, style tcell.Style) int {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w := g.Width()
		if w == 0 {
			continue
		}
		if x+w > limit {
			break
		}
		runes := g.Runes()
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
	return x
}

// TextWidth returns the number of cells text occupies.
func TextWidth(text string) int {
	return uniseg.StringWidth(text)
}

func (p *Pane) maxOffset() float64 {
	return math.Max(0, float64(len(p.lines)-p.region.Height))
}

func (p *Pane) contentChanged() {
	if limit := p.maxOffset(); p.offset > limit {
		p.offset = limit
		p.queueScroll()
	}
	p.queueResize()
}

func (p *Pane) queueScroll() {
	if p.scrollQueued {
		return
	}
	p.scrollQueued = true
	schedule.Post(p.sched, func() {
		p.scrollQueued = false
		p.scrollListeners.Emit(struct{}{})
	})
}

func (p *Pane) queueResize() {
	if p.resizeQueued {
		return
	}
	p.resizeQueued = true
	schedule.Post(p.sched, func() {
		p.resizeQueued = false
		p.resizeListeners.Emit(struct{}{})
	})
}
