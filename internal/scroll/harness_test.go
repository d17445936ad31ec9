package scroll

import (
	"testing"
	"time"

	"github.com/dshills/glide/internal/schedule"
	"github.com/dshills/glide/internal/scroll/gesture"
	"github.com/dshills/glide/internal/scroll/host/dom"
)

const frameTime = 16 * time.Millisecond

// harness drives a Scroller over an 800x600 document whose content is
// 2600 tall, so the limit is 2000.
type harness struct {
	t     *testing.T
	s     *Scroller
	doc   *dom.Document
	clock *schedule.Manual
	now   time.Time
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	clock := schedule.NewManual()
	doc := dom.New(clock, 800, 600)
	doc.Body().Append(
		doc.Create("section").SetID("a").SetSize(1000),
		doc.Create("section").SetID("b").SetSize(1000),
		doc.Create("section").SetID("c").SetSize(600),
	)
	clock.Flush()

	s := New(doc, append([]Option{WithScheduler(clock)}, opts...)...)
	t.Cleanup(s.Destroy)
	return &harness{
		t:     t,
		s:     s,
		doc:   doc,
		clock: clock,
		now:   time.Unix(1000, 0),
	}
}

// frame delivers pending host notifications then advances one frame.
func (h *harness) frame() {
	h.clock.Advance(frameTime)
	h.now = h.now.Add(frameTime)
	h.s.Advance(h.now)
}

func (h *harness) frames(n int) {
	for i := 0; i < n; i++ {
		h.frame()
	}
}

// settle runs frames until the Scroller stops animating, then delivers
// the trailing notifications.
func (h *harness) settle() {
	h.t.Helper()
	for i := 0; h.s.IsSmooth(); i++ {
		if i > 2000 {
			h.t.Fatal("animation did not settle")
		}
		h.frame()
	}
	h.frame()
}

func (h *harness) wheel(dy float64) *gesture.InputEvent {
	ev := &gesture.InputEvent{Kind: gesture.KindWheel, DeltaY: dy}
	h.doc.Dispatch(ev)
	return ev
}

func (h *harness) dispatch(ev *gesture.InputEvent) *gesture.InputEvent {
	h.doc.Dispatch(ev)
	return ev
}

func (h *harness) countScrolls() *int {
	n := 0
	h.s.OnScroll(func(*Scroller) { n++ })
	return &n
}
