package gesture

import (
	"math"
	"testing"
)

type fakeSource struct {
	fn        func(*InputEvent)
	cancelled bool
}

func (s *fakeSource) Subscribe(fn func(*InputEvent)) func() {
	s.fn = fn
	return func() { s.cancelled = true }
}

type fakeViewport struct {
	w, h     float64
	onResize func()
}

func (v *fakeViewport) ClientSize() (float64, float64) { return v.w, v.h }

func (v *fakeViewport) OnResize(fn func()) func() {
	v.onResize = fn
	return func() { v.onResize = nil }
}

func collect(n *Normalizer) *[]Delta {
	var got []Delta
	n.On(func(d Delta) { got = append(got, d) })
	return &got
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestWheelScaling(t *testing.T) {
	tests := []struct {
		name       string
		mode       DeltaMode
		dy         float64
		multiplier float64
		want       float64
	}{
		{"pixel", DeltaPixel, 40, 1, 40},
		{"line", DeltaLine, 3, 1, 50},
		{"page", DeltaPage, 1, 1, 600},
		{"pixel multiplied", DeltaPixel, 40, 2, 80},
		{"line multiplied", DeltaLine, 3, 0.5, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{}
			n := NewNormalizer(src, &fakeViewport{w: 800, h: 600}, WithWheelMultiplier(tt.multiplier))
			got := collect(n)

			src.fn(&InputEvent{Kind: KindWheel, DeltaY: tt.dy, DeltaMode: tt.mode})

			if len(*got) != 1 {
				t.Fatalf("expected 1 delta, got %d", len(*got))
			}
			if !approx((*got)[0].DeltaY, tt.want) {
				t.Errorf("expected deltaY %f, got %f", tt.want, (*got)[0].DeltaY)
			}
		})
	}
}

func TestWheelPageUsesViewportWidthForX(t *testing.T) {
	src := &fakeSource{}
	n := NewNormalizer(src, &fakeViewport{w: 800, h: 600})
	got := collect(n)

	src.fn(&InputEvent{Kind: KindWheel, DeltaX: 1, DeltaMode: DeltaPage})

	if (*got)[0].DeltaX != 800 {
		t.Errorf("expected deltaX 800, got %f", (*got)[0].DeltaX)
	}
}

func TestViewportResizeRefreshesPageSize(t *testing.T) {
	src := &fakeSource{}
	vp := &fakeViewport{w: 800, h: 600}
	n := NewNormalizer(src, vp)
	got := collect(n)

	vp.h = 300
	vp.onResize()
	src.fn(&InputEvent{Kind: KindWheel, DeltaY: 1, DeltaMode: DeltaPage})

	if (*got)[0].DeltaY != 300 {
		t.Errorf("expected deltaY 300, got %f", (*got)[0].DeltaY)
	}
}

func TestCustomLineHeight(t *testing.T) {
	n := NewNormalizer(nil, nil, WithLineHeight(20))
	got := collect(n)

	n.Handle(&InputEvent{Kind: KindWheel, DeltaY: 2, DeltaMode: DeltaLine})

	if (*got)[0].DeltaY != 40 {
		t.Errorf("expected deltaY 40, got %f", (*got)[0].DeltaY)
	}
}

func TestSetLineHeight(t *testing.T) {
	n := NewNormalizer(nil, nil)
	got := collect(n)

	n.SetLineHeight(10)
	n.SetLineHeight(0)
	n.Handle(&InputEvent{Kind: KindWheel, DeltaY: 3, DeltaMode: DeltaLine})

	if (*got)[0].DeltaY != 30 {
		t.Errorf("expected deltaY 30, got %f", (*got)[0].DeltaY)
	}
}

func TestTouchSequence(t *testing.T) {
	n := NewNormalizer(nil, nil, WithTouchMultiplier(2))
	got := collect(n)

	n.Handle(&InputEvent{Kind: KindTouchStart, X: 100, Y: 500})
	n.Handle(&InputEvent{Kind: KindTouchMove, X: 100, Y: 480})
	n.Handle(&InputEvent{Kind: KindTouchMove, X: 90, Y: 470})
	n.Handle(&InputEvent{Kind: KindTouchEnd})

	want := []Delta{
		{DeltaX: 0, DeltaY: 0},
		{DeltaX: 0, DeltaY: 40},
		{DeltaX: 20, DeltaY: 20},
		{DeltaX: 20, DeltaY: 20},
	}
	if len(*got) != len(want) {
		t.Fatalf("expected %d deltas, got %d", len(want), len(*got))
	}
	for i, w := range want {
		d := (*got)[i]
		if d.DeltaX != w.DeltaX || d.DeltaY != w.DeltaY {
			t.Errorf("delta %d: expected (%f, %f), got (%f, %f)", i, w.DeltaX, w.DeltaY, d.DeltaX, d.DeltaY)
		}
	}
}

func TestTouchStartResetsLastDelta(t *testing.T) {
	n := NewNormalizer(nil, nil)
	got := collect(n)

	n.Handle(&InputEvent{Kind: KindTouchStart, Y: 100})
	n.Handle(&InputEvent{Kind: KindTouchMove, Y: 50})
	n.Handle(&InputEvent{Kind: KindTouchStart, Y: 300})
	n.Handle(&InputEvent{Kind: KindTouchEnd})

	last := (*got)[len(*got)-1]
	if last.DeltaX != 0 || last.DeltaY != 0 {
		t.Errorf("expected zero delta after fresh touch start, got (%f, %f)", last.DeltaX, last.DeltaY)
	}
	if (*got)[2].DeltaY != 0 {
		t.Errorf("expected touch start to emit zero delta, got %f", (*got)[2].DeltaY)
	}
}

func TestDeltaCarriesEvent(t *testing.T) {
	n := NewNormalizer(nil, nil)
	got := collect(n)

	ev := &InputEvent{Kind: KindWheel, DeltaY: 1}
	n.Handle(ev)

	if (*got)[0].Event != ev {
		t.Error("expected delta to carry the originating event")
	}
}

func TestPointerEventsIgnored(t *testing.T) {
	n := NewNormalizer(nil, nil)
	got := collect(n)

	n.Handle(&InputEvent{Kind: KindPointerDown, Button: ButtonMiddle})

	if len(*got) != 0 {
		t.Errorf("expected no deltas, got %d", len(*got))
	}
}

func TestDestroyReleasesSubscriptions(t *testing.T) {
	src := &fakeSource{}
	vp := &fakeViewport{w: 1, h: 1}
	n := NewNormalizer(src, vp)
	got := collect(n)

	n.Destroy()

	if !src.cancelled {
		t.Error("expected source subscription to be cancelled")
	}
	if vp.onResize != nil {
		t.Error("expected viewport subscription to be cancelled")
	}
	n.Handle(&InputEvent{Kind: KindWheel, DeltaY: 1})
	if len(*got) != 0 {
		t.Errorf("expected no deltas after destroy, got %d", len(*got))
	}
}

func TestPreventDefault(t *testing.T) {
	ev := &InputEvent{}
	if ev.DefaultPrevented() {
		t.Error("expected fresh event not to be prevented")
	}
	ev.PreventDefault()
	if !ev.DefaultPrevented() {
		t.Error("expected event to be prevented")
	}
}

func TestKindHelpers(t *testing.T) {
	if !KindTouchMove.IsTouch() || KindWheel.IsTouch() {
		t.Error("unexpected IsTouch result")
	}
	if !KindWheel.IsWheel() || KindPointerDown.IsWheel() {
		t.Error("unexpected IsWheel result")
	}
	if KindTouchEnd.String() != "touchend" {
		t.Errorf("expected touchend, got %s", KindTouchEnd.String())
	}
}
