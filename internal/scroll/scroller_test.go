package scroll

import (
	"math"
	"testing"
	"time"

	"github.com/dshills/glide/internal/schedule"
	"github.com/dshills/glide/internal/scroll/animate"
	"github.com/dshills/glide/internal/scroll/easing"
	"github.com/dshills/glide/internal/scroll/host"
	"github.com/dshills/glide/internal/scroll/host/dom"
)

func TestNewAdoptsHostOffset(t *testing.T) {
	clock := schedule.NewManual()
	doc := dom.New(clock, 800, 600)
	doc.Body().Append(doc.Create("section").SetSize(3000))
	doc.SetScrollOffset(host.AxisY, 700)
	clock.Flush()

	s := New(doc, WithScheduler(clock))
	defer s.Destroy()

	if s.AnimatedScroll() != 700 || s.TargetScroll() != 700 {
		t.Errorf("expected 700/700, got %f/%f", s.AnimatedScroll(), s.TargetScroll())
	}
	if s.Limit() != 2400 {
		t.Errorf("expected limit 2400, got %f", s.Limit())
	}
}

func TestScrollToAnimatesAndCompletes(t *testing.T) {
	h := newHarness(t)
	scrolls := h.countScrolls()
	completed := 0

	h.s.ScrollTo(Offset(500), OnComplete(func(*Scroller) { completed++ }))
	if !h.s.IsSmooth() {
		t.Fatal("expected smooth mode after ScrollTo")
	}
	h.settle()

	if h.s.Scroll() != 500 {
		t.Errorf("expected scroll 500, got %f", h.s.Scroll())
	}
	if got := h.doc.ScrollOffset(host.AxisY); got != 500 {
		t.Errorf("expected host offset 500, got %f", got)
	}
	if h.s.IsScrolling() != ModeIdle {
		t.Errorf("expected idle, got %s", h.s.IsScrolling())
	}
	if h.s.Velocity() != 0 {
		t.Errorf("expected zero velocity, got %f", h.s.Velocity())
	}
	if completed != 1 {
		t.Errorf("expected 1 completion, got %d", completed)
	}
	if *scrolls < 2 {
		t.Errorf("expected several scroll events, got %d", *scrolls)
	}
}

func TestDestination(t *testing.T) {
	h := newHarness(t)

	h.s.ScrollTo(Offset(500))
	h.frames(3)
	if h.s.Destination() != 500 {
		t.Errorf("expected destination 500 mid-animation, got %f", h.s.Destination())
	}
	if h.s.TargetScroll() == 500 {
		t.Error("expected programmatic target to follow the animation")
	}

	h.settle()
	if h.s.Destination() != 500 {
		t.Errorf("expected destination 500 after completion, got %f", h.s.Destination())
	}
}

func TestScrollToDuplicateIsNoop(t *testing.T) {
	h := newHarness(t)
	starts := 0
	onStart := OnStart(func(*Scroller) { starts++ })

	h.s.ScrollTo(Offset(500), onStart)
	h.s.ScrollTo(Offset(500), onStart)
	h.frames(3)
	h.s.ScrollTo(Offset(500), onStart)

	if starts != 1 {
		t.Errorf("expected 1 animation, got %d", starts)
	}

	h.settle()
	h.s.ScrollTo(Offset(500), onStart)
	if starts != 1 {
		t.Errorf("expected no animation at the current target, got %d", starts)
	}
}

func TestScrollToClamps(t *testing.T) {
	tests := []struct {
		name   string
		target float64
		want   float64
	}{
		{"below zero", -300, 0},
		{"inside", 1234.4, 1234},
		{"past limit", 99999, 2000},
		{"rounds", 99.5, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.s.ScrollTo(Offset(tt.target))
			h.settle()

			got := h.s.AnimatedScroll()
			if got != tt.want {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
			if got < 0 || got > h.s.Limit() {
				t.Errorf("expected value within [0, %f], got %f", h.s.Limit(), got)
			}
		})
	}
}

func TestScrollToImmediate(t *testing.T) {
	h := newHarness(t)
	scrolls := h.countScrolls()
	completed := false

	h.s.ScrollTo(Offset(300), Immediate(), OnComplete(func(*Scroller) { completed = true }))

	if got := h.doc.ScrollOffset(host.AxisY); got != 300 {
		t.Errorf("expected host offset 300, got %f", got)
	}
	if h.s.Scroll() != 300 || h.s.TargetScroll() != 300 {
		t.Errorf("expected scroll and target 300, got %f and %f", h.s.Scroll(), h.s.TargetScroll())
	}
	if !completed {
		t.Error("expected completion callback")
	}
	if *scrolls != 1 {
		t.Errorf("expected 1 scroll event, got %d", *scrolls)
	}

	// The host echo of our own write is swallowed.
	h.clock.Flush()
	if *scrolls != 1 {
		t.Errorf("expected echo to be suppressed, got %d events", *scrolls)
	}
	if h.s.IsScrolling() != ModeIdle {
		t.Errorf("expected idle, got %s", h.s.IsScrolling())
	}
}

func TestEchoSuppressionExpiresAfterOneFrame(t *testing.T) {
	h := newHarness(t)
	h.s.ScrollTo(Offset(300), Immediate())
	h.clock.Flush()
	scrolls := h.countScrolls()

	h.frames(2)
	h.doc.SetScrollOffset(host.AxisY, 350)
	h.clock.Flush()

	if *scrolls != 1 {
		t.Errorf("expected user scroll to be reported, got %d events", *scrolls)
	}
	if h.s.Scroll() != 350 {
		t.Errorf("expected 350, got %f", h.s.Scroll())
	}
}

func TestStopRefusesUnlessForced(t *testing.T) {
	h := newHarness(t)
	h.s.Stop()

	h.s.ScrollTo(Offset(100))
	h.settle()
	if h.s.TargetScroll() != 0 || h.s.Scroll() != 0 {
		t.Errorf("expected no motion while stopped, got target %f scroll %f", h.s.TargetScroll(), h.s.Scroll())
	}

	h.s.ScrollTo(Offset(100), Force())
	h.settle()
	if h.s.Scroll() != 100 {
		t.Errorf("expected forced scroll to reach 100, got %f", h.s.Scroll())
	}
	if !h.s.IsStopped() {
		t.Error("expected to remain stopped")
	}
}

func TestStartStopIdempotent(t *testing.T) {
	var states []State
	h := newHarness(t, WithStateHook(func(st State) { states = append(states, st) }))

	h.s.Start()
	if len(states) != 0 {
		t.Errorf("expected Start on a running scroller to do nothing, got %d changes", len(states))
	}

	h.s.ScrollTo(Offset(800))
	h.frames(5)
	h.s.Stop()
	h.s.Stop()

	if h.s.IsSmooth() {
		t.Error("expected Stop to halt the animation")
	}
	if h.s.Velocity() != 0 {
		t.Errorf("expected zero velocity, got %f", h.s.Velocity())
	}
	pos := h.s.Scroll()
	h.frames(10)
	if h.s.Scroll() != pos {
		t.Errorf("expected position to hold at %f, got %f", pos, h.s.Scroll())
	}

	h.s.Start()
	if h.s.IsStopped() {
		t.Error("expected Start to clear stopped")
	}
	last := states[len(states)-1]
	if last.Stopped {
		t.Error("expected last state change to report running")
	}
}

func TestLockRefusesOtherCalls(t *testing.T) {
	h := newHarness(t)
	h.s.ScrollTo(Offset(1000), Lock())

	if !h.s.IsLocked() {
		t.Fatal("expected locked")
	}
	h.s.ScrollTo(Offset(100))
	ev := h.wheel(120)
	if !ev.DefaultPrevented() {
		t.Error("expected wheel to be swallowed while locked")
	}

	h.settle()
	if h.s.Scroll() != 1000 {
		t.Errorf("expected 1000, got %f", h.s.Scroll())
	}
	if h.s.IsLocked() {
		t.Error("expected lock released at completion")
	}
}

func TestUserDataLifetime(t *testing.T) {
	h := newHarness(t)
	var during any
	h.s.OnScroll(func(s *Scroller) {
		if s.IsSmooth() {
			during = s.UserData()
		}
	})

	h.s.ScrollTo(Offset(400), WithUserData("tag"))
	h.settle()

	if during != "tag" {
		t.Errorf("expected user data during animation, got %v", during)
	}
	if h.s.UserData() != nil {
		t.Errorf("expected user data cleared, got %v", h.s.UserData())
	}
}

func TestDurationModeCompletesOnce(t *testing.T) {
	h := newHarness(t)
	completed := 0
	h.s.ScrollTo(Offset(600),
		WithDuration(200*time.Millisecond),
		WithEasing(easing.Linear),
		OnComplete(func(*Scroller) { completed++ }),
	)

	h.frames(1)
	h.frames(6)
	if !h.s.IsSmooth() {
		t.Fatal("expected animation to still run before its duration")
	}
	if got := h.s.Scroll(); got <= 0 || got >= 600 {
		t.Errorf("expected intermediate value, got %f", got)
	}

	h.frames(20)
	if completed != 1 {
		t.Errorf("expected exactly 1 completion, got %d", completed)
	}
	if h.s.Scroll() != 600 {
		t.Errorf("expected 600, got %f", h.s.Scroll())
	}
}

func TestSpringMode(t *testing.T) {
	h := newHarness(t)
	h.s.ScrollTo(Offset(400), WithSpring(&animate.Spring{Frequency: 8, Damping: 1}))
	h.settle()

	if h.s.Scroll() != 400 {
		t.Errorf("expected 400, got %f", h.s.Scroll())
	}
}

func TestSelectorTargets(t *testing.T) {
	tests := []struct {
		name   string
		start  float64
		target Target
		opts   []ScrollOption
		want   float64
	}{
		{"bottom", 0, Selector("bottom"), nil, 2000},
		{"end", 0, Selector("end"), nil, 2000},
		{"top", 900, Selector("top"), nil, 0},
		{"start", 900, Selector("start"), nil, 0},
		{"id", 0, Selector("#b"), nil, 1000},
		{"id from scrolled", 300, Selector("#b"), nil, 1000},
		{"id with offset", 0, Selector("#b"), []ScrollOption{WithOffset(-100)}, 900},
		{"missing", 200, Selector("#missing"), nil, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			if tt.start != 0 {
				h.s.ScrollTo(Offset(tt.start), Immediate())
				h.frames(2)
			}
			h.s.ScrollTo(tt.target, append(tt.opts, Immediate())...)

			if h.s.Scroll() != tt.want {
				t.Errorf("expected %f, got %f", tt.want, h.s.Scroll())
			}
		})
	}
}

func TestElementTarget(t *testing.T) {
	h := newHarness(t)
	el := h.doc.Query("#c")

	h.s.ScrollTo(ElementTarget(el))
	h.settle()

	if h.s.Scroll() != 2000 {
		t.Errorf("expected clamped element offset 2000, got %f", h.s.Scroll())
	}
	h.s.ScrollTo(ElementTarget(nil))
	if h.s.IsSmooth() {
		t.Error("expected nil element to be ignored")
	}
}

func TestElementTargetInEmbeddedContainer(t *testing.T) {
	clock := schedule.NewManual()
	doc := dom.New(clock, 0, 0, dom.WithRect(host.Rect{Y: 150, Width: 400, Height: 300}))
	target := doc.Create("p").SetSize(200)
	doc.Body().Append(doc.Create("p").SetSize(700), target, doc.Create("p").SetSize(600))
	clock.Flush()

	s := New(doc, WithScheduler(clock))
	defer s.Destroy()
	s.ScrollTo(ElementTarget(target), Immediate())

	if s.Scroll() != 700 {
		t.Errorf("expected 700, got %f", s.Scroll())
	}
}

func TestHorizontalOrientation(t *testing.T) {
	clock := schedule.NewManual()
	doc := dom.New(clock, 800, 600, dom.WithFlow(host.AxisX))
	doc.Body().Append(doc.Create("col").SetSize(1000), doc.Create("col").SetSize(1000))
	clock.Flush()
	opts := DefaultOptions()
	opts.Orientation = Horizontal

	s := New(doc, WithScheduler(clock), WithOptions(opts))
	defer s.Destroy()
	s.ScrollTo(Selector("right"), Immediate())

	if !s.IsHorizontal() {
		t.Error("expected horizontal")
	}
	if got := doc.ScrollOffset(host.AxisX); got != 1200 {
		t.Errorf("expected x offset 1200, got %f", got)
	}
	if got := doc.ScrollOffset(host.AxisY); got != 0 {
		t.Errorf("expected y offset 0, got %f", got)
	}
}

func TestProgress(t *testing.T) {
	h := newHarness(t)
	h.s.ScrollTo(Offset(500), Immediate())
	if h.s.Progress() != 0.25 {
		t.Errorf("expected 0.25, got %f", h.s.Progress())
	}

	clock := schedule.NewManual()
	doc := dom.New(clock, 800, 600)
	s := New(doc, WithScheduler(clock))
	defer s.Destroy()
	if s.Limit() != 0 || s.Progress() != 1 {
		t.Errorf("expected limit 0 and progress 1, got %f and %f", s.Limit(), s.Progress())
	}
}

func TestInfiniteWraps(t *testing.T) {
	opts := DefaultOptions()
	opts.Infinite = true
	h := newHarness(t, WithOptions(opts))
	limit := h.s.Limit()
	var peak float64
	h.s.OnScroll(func(s *Scroller) { peak = max(peak, s.AnimatedScroll()) })

	for i := 0; i < 12; i++ {
		h.wheel(700)
		h.frames(4)
		if got := h.s.Scroll(); got < 0 || got >= limit {
			t.Fatalf("expected scroll within [0, %f), got %f", limit, got)
		}
	}
	h.settle()

	if peak < limit {
		t.Errorf("expected animated scroll to run past %f, peaked at %f", limit, peak)
	}
	if got := h.s.Scroll(); got < 0 || got >= limit {
		t.Errorf("expected wrapped scroll within [0, %f), got %f", limit, got)
	}
	if p := h.s.Progress(); p < 0 || p > 1 {
		t.Errorf("expected progress within [0, 1], got %f", p)
	}
}

func TestInfiniteProgrammaticRebases(t *testing.T) {
	opts := DefaultOptions()
	opts.Infinite = true
	h := newHarness(t, WithOptions(opts))
	for i := 0; i < 4; i++ {
		h.wheel(700)
	}
	h.settle()

	h.s.ScrollTo(Offset(100))
	h.settle()

	if h.s.AnimatedScroll() != 100 {
		t.Errorf("expected rebased scroll 100, got %f", h.s.AnimatedScroll())
	}
}

func TestNativeScrollAndIdleTimer(t *testing.T) {
	h := newHarness(t)
	scrolls := h.countScrolls()

	h.doc.SetScrollOffset(host.AxisY, 300)
	h.clock.Flush()

	if h.s.IsScrolling() != ModeNative {
		t.Errorf("expected native, got %s", h.s.IsScrolling())
	}
	if h.s.Velocity() != 300 || h.s.Direction() != 1 {
		t.Errorf("expected velocity 300 direction 1, got %f %d", h.s.Velocity(), h.s.Direction())
	}
	if h.s.TargetScroll() != 300 {
		t.Errorf("expected target to follow native offset, got %f", h.s.TargetScroll())
	}

	h.clock.Advance(IdleDelay / 2)
	h.doc.SetScrollOffset(host.AxisY, 250)
	h.clock.Flush()
	if h.s.Direction() != -1 {
		t.Errorf("expected direction -1, got %d", h.s.Direction())
	}

	h.clock.Advance(IdleDelay - time.Millisecond)
	if h.s.IsScrolling() != ModeNative {
		t.Error("expected idle timer to be re-armed by the second scroll")
	}
	h.clock.Advance(time.Millisecond)
	if h.s.IsScrolling() != ModeIdle || h.s.Velocity() != 0 {
		t.Errorf("expected idle with zero velocity, got %s %f", h.s.IsScrolling(), h.s.Velocity())
	}
	if *scrolls != 3 {
		t.Errorf("expected 3 scroll events, got %d", *scrolls)
	}
}

func TestNativeScrollIgnoredWhileSmooth(t *testing.T) {
	h := newHarness(t)
	h.s.ScrollTo(Offset(1000))
	h.frames(3)

	h.doc.SetScrollOffset(host.AxisY, 5)
	h.clock.Flush()

	if h.s.TargetScroll() == 5 {
		t.Error("expected native notification to be ignored during animation")
	}
	if !h.s.IsSmooth() {
		t.Error("expected animation to continue")
	}
}

func TestResize(t *testing.T) {
	h := newHarness(t)
	h.doc.Resize(800, 300)

	if h.s.Limit() != 2000 {
		t.Errorf("expected stale limit before debounce, got %f", h.s.Limit())
	}
	h.clock.Advance(250 * time.Millisecond)
	if h.s.Limit() != 2300 {
		t.Errorf("expected 2300, got %f", h.s.Limit())
	}

	h.doc.Body().Children()[2].SetSize(900)
	h.s.Resize()
	if h.s.Limit() != 2600 {
		t.Errorf("expected 2600 after explicit resize, got %f", h.s.Limit())
	}
}

func TestNaiveDimensions(t *testing.T) {
	opts := DefaultOptions()
	opts.NaiveDimensions = true
	h := newHarness(t, WithOptions(opts))

	h.doc.Body().Children()[2].SetSize(1600)

	if h.s.Limit() != 3000 {
		t.Errorf("expected limit read straight from the host, got %f", h.s.Limit())
	}
}

func TestStateHookAndClassName(t *testing.T) {
	var names []string
	var h *harness
	h = newHarness(t, WithStateHook(func(State) { names = append(names, h.s.ClassName()) }))

	h.s.ScrollTo(Offset(200), Lock())
	h.settle()
	h.s.Stop()

	want := []string{
		"glide glide-locked",
		"glide glide-locked glide-scrolling glide-smooth",
		"glide glide-scrolling glide-smooth",
		"glide",
		"glide glide-stopped",
	}
	if len(names) != len(want) {
		t.Fatalf("expected %d state changes %v, got %d %v", len(want), want, len(names), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("change %d: expected %q, got %q", i, want[i], names[i])
		}
	}
}

func TestOffRemovesListener(t *testing.T) {
	h := newHarness(t)
	n := 0
	sub := h.s.OnScroll(func(*Scroller) { n++ })
	h.s.Off(sub)

	h.s.ScrollTo(Offset(100), Immediate())

	if n != 0 {
		t.Errorf("expected no events, got %d", n)
	}
}

func TestDestroy(t *testing.T) {
	h := newHarness(t)
	n := 0
	h.s.OnScroll(func(*Scroller) { n++ })
	h.s.ScrollTo(Offset(1000))
	h.frames(2)
	before := n

	h.s.Destroy()
	h.frames(5)
	h.doc.SetScrollOffset(host.AxisY, 10)
	h.clock.Flush()
	ev := h.wheel(100)

	if n != before {
		t.Errorf("expected no events after destroy, got %d more", n-before)
	}
	if ev.DefaultPrevented() {
		t.Error("expected input to be ignored after destroy")
	}
	if h.clock.Pending() != 0 {
		t.Errorf("expected no pending timers, got %d", h.clock.Pending())
	}
}

func TestNegativeFrameTime(t *testing.T) {
	h := newHarness(t)
	h.s.ScrollTo(Offset(500))
	h.frames(3)
	pos := h.s.Scroll()

	h.s.Advance(h.now.Add(-time.Second))

	if h.s.Scroll() != pos {
		t.Errorf("expected a backwards frame to take no time, got %f -> %f", pos, h.s.Scroll())
	}
}

func TestOwnedLoop(t *testing.T) {
	clock := schedule.NewManual()
	doc := dom.New(clock, 800, 600)
	doc.Body().Append(doc.Create("section").SetSize(2000))
	clock.Flush()

	s := New(doc)
	if _, ok := s.Scheduler().(*schedule.Loop); !ok {
		t.Fatalf("expected an owned loop, got %T", s.Scheduler())
	}
	s.ScrollTo(Offset(300), Immediate())
	s.Advance(time.Now())
	s.Destroy()
}

func TestModuloAndSign(t *testing.T) {
	tests := []struct {
		n, d, want float64
	}{
		{2500, 2000, 500},
		{-100, 2000, 1900},
		{4000, 2000, 0},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := modulo(tt.n, tt.d); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("modulo(%f, %f): expected %f, got %f", tt.n, tt.d, tt.want, got)
		}
	}
	if sign(-3) != -1 || sign(0) != 0 || sign(2) != 1 {
		t.Error("unexpected sign results")
	}
}
