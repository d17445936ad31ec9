package scroll

import (
	"math"
	"time"

	"github.com/dshills/glide/internal/logging"
	"github.com/dshills/glide/internal/schedule"
	"github.com/dshills/glide/internal/scroll/animate"
	"github.com/dshills/glide/internal/scroll/dimensions"
	"github.com/dshills/glide/internal/scroll/emitter"
	"github.com/dshills/glide/internal/scroll/gesture"
	"github.com/dshills/glide/internal/scroll/host"
)

// Scroller coordinates native and animated scrolling of one container.
type Scroller struct {
	container host.Container
	content   host.Box
	events    gesture.Source
	opts      Options

	sched schedule.Scheduler
	loop  *schedule.Loop
	log   *logging.Logger

	prevent       func(host.Node) bool
	virtualScroll func(gesture.Delta) bool
	stateHook     func(State)

	animator   *animate.Animator
	dims       *dimensions.Tracker
	normalizer *gesture.Normalizer

	scrollEvents  *emitter.Emitter[*Scroller]
	virtualEvents *emitter.Emitter[gesture.Delta]

	animatedScroll float64
	targetScroll   float64
	velocity       float64
	lastVelocity   float64
	direction      int
	mode           Mode
	stopped        bool
	locked         bool
	touching       bool
	userData       any

	lastTick time.Time
	ticked   bool
	frame    uint64

	echoArmed bool
	echoFrame uint64

	idleTimer schedule.Timer
	cancels   []func()
	destroyed bool
}

// New attaches a Scroller to container.
func New(container host.Container, opts ...Option) *Scroller {
	s := &Scroller{
		container:     container,
		opts:          DefaultOptions(),
		animator:      animate.New(),
		scrollEvents:  emitter.New[*Scroller](),
		virtualEvents: emitter.New[gesture.Delta](),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.content == nil {
		s.content = container
	}
	if s.events == nil {
		if src, ok := container.(gesture.Source); ok {
			s.events = src
		}
	}
	if s.sched == nil {
		s.loop = schedule.NewLoop(64)
		s.sched = s.loop
	}
	if s.log == nil {
		s.log = logging.Nop()
	}
	s.log = s.log.WithComponent("scroll")

	s.dims = dimensions.New(container, s.content,
		dimensions.WithAutoResize(s.opts.AutoResize),
		dimensions.WithDebounce(s.opts.ResizeDebounce),
		dimensions.WithScheduler(s.sched),
	)

	s.animatedScroll = s.actualScroll()
	s.targetScroll = s.animatedScroll

	if cancel := container.OnScroll(s.onNativeScroll); cancel != nil {
		s.cancels = append(s.cancels, cancel)
	}

	s.normalizer = gesture.NewNormalizer(s.events, container,
		gesture.WithWheelMultiplier(s.opts.WheelMultiplier),
		gesture.WithTouchMultiplier(s.opts.TouchMultiplier),
		gesture.WithLineHeight(s.opts.LineHeight),
	)
	s.normalizer.On(s.onGesture)
	if s.events != nil {
		if cancel := s.events.Subscribe(s.onPointer); cancel != nil {
			s.cancels = append(s.cancels, cancel)
		}
	}

	s.log.Debug("attached: limit=%.0f scroll=%.0f", s.Limit(), s.animatedScroll)
	return s
}

// Scheduler returns the scheduler deferred work runs on. Collaborators
// such as the snap engine share it.
func (s *Scroller) Scheduler() schedule.Scheduler {
	return s.sched
}

// Logger returns the Scroller's logger.
func (s *Scroller) Logger() *logging.Logger {
	return s.log
}

// Container returns the scrolled container.
func (s *Scroller) Container() host.Container {
	return s.container
}

// Options returns the current behavior settings.
func (s *Scroller) Options() Options {
	return s.opts
}

// SetOptions replaces the behavior settings. Dimension tracking settings
// only apply to a new Scroller.
func (s *Scroller) SetOptions(opts Options) {
	s.opts = opts
	s.normalizer.SetMultipliers(opts.WheelMultiplier, opts.TouchMultiplier)
	s.normalizer.SetLineHeight(opts.LineHeight)
}

// Advance drives one frame. now must not go backwards; if it does the
// frame is treated as taking no time.
func (s *Scroller) Advance(now time.Time) {
	if s.destroyed {
		return
	}
	if s.loop != nil {
		s.loop.RunPending()
	}

	s.frame++
	if s.echoArmed && s.echoFrame < s.frame {
		s.echoArmed = false
	}

	var dt float64
	if s.ticked {
		dt = max(0, now.Sub(s.lastTick).Seconds())
	}
	s.lastTick = now
	s.ticked = true

	s.animator.Advance(dt)
}

// Reset drops any motion and adopts the host's offset.
func (s *Scroller) Reset() {
	s.setLocked(false)
	s.setMode(ModeIdle)
	s.animatedScroll = s.actualScroll()
	s.targetScroll = s.animatedScroll
	s.lastVelocity = 0
	s.velocity = 0
	s.animator.Stop()
}

// Start resumes a stopped Scroller.
func (s *Scroller) Start() {
	if !s.stopped {
		return
	}
	s.setStopped(false)
	s.Reset()
}

// Stop halts motion and ignores input until Start.
func (s *Scroller) Stop() {
	if s.stopped {
		return
	}
	s.setStopped(true)
	s.animator.Stop()
	s.Reset()
}

// Resize recomputes the dimensions now.
func (s *Scroller) Resize() {
	s.dims.Resize()
}

// Destroy releases every subscription and pending timer. The Scroller
// must not be used afterwards.
func (s *Scroller) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
	s.normalizer.Destroy()
	s.dims.Destroy()
	s.cancelIdleTimer()
	s.animator.Stop()
	s.echoArmed = false
	s.scrollEvents.Clear()
	s.virtualEvents.Clear()
	if s.loop != nil {
		s.loop.Close()
	}
	s.log.Debug("destroyed")
}

// OnScroll registers fn for scroll events.
func (s *Scroller) OnScroll(fn func(*Scroller)) *emitter.Subscription {
	return s.scrollEvents.On(fn)
}

// OnVirtualScroll registers fn for every normalized gesture, including
// ones that end up handled natively.
func (s *Scroller) OnVirtualScroll(fn func(gesture.Delta)) *emitter.Subscription {
	return s.virtualEvents.On(fn)
}

// Off removes a subscription made with OnScroll or OnVirtualScroll.
func (s *Scroller) Off(sub *emitter.Subscription) {
	sub.Unsubscribe()
}

func (s *Scroller) emit() {
	s.scrollEvents.Emit(s)
}

// Limit returns the maximum offset on the scroll axis.
func (s *Scroller) Limit() float64 {
	axis := s.axis()
	if s.opts.NaiveDimensions {
		cw, ch := s.container.ClientSize()
		sw, sh := s.container.ScrollSize()
		if axis == host.AxisX {
			return max(0, sw-cw)
		}
		return max(0, sh-ch)
	}
	return s.dims.Limit().On(axis)
}

// Scroll returns the animated position, wrapped into [0, limit) in
// infinite mode.
func (s *Scroller) Scroll() float64 {
	if s.opts.Infinite {
		return modulo(s.animatedScroll, s.Limit())
	}
	return s.animatedScroll
}

// Progress returns Scroll as a fraction of the limit. It is 1 when there
// is nothing to scroll.
func (s *Scroller) Progress() float64 {
	limit := s.Limit()
	if limit == 0 {
		return 1
	}
	return min(1, max(0, s.Scroll()/limit))
}

// ActualScroll returns the host's offset on the scroll axis.
func (s *Scroller) ActualScroll() float64 {
	return s.actualScroll()
}

// AnimatedScroll returns the unwrapped animated position.
func (s *Scroller) AnimatedScroll() float64 {
	return s.animatedScroll
}

// TargetScroll returns where the current motion is headed.
func (s *Scroller) TargetScroll() float64 {
	return s.targetScroll
}

// Destination returns where the running animation ends, or TargetScroll
// when nothing is animating.
func (s *Scroller) Destination() float64 {
	if s.animator.IsRunning() {
		return s.animator.To()
	}
	return s.targetScroll
}

// Velocity returns the change of the animated position in the last step.
func (s *Scroller) Velocity() float64 {
	return s.velocity
}

// LastVelocity returns the velocity before the last step.
func (s *Scroller) LastVelocity() float64 {
	return s.lastVelocity
}

// Direction returns the sign of the last motion: -1, 0 or 1.
func (s *Scroller) Direction() int {
	return s.direction
}

// IsHorizontal reports whether the scroll axis is horizontal.
func (s *Scroller) IsHorizontal() bool {
	return s.opts.Orientation == Horizontal
}

// IsTouching reports whether a touch is in progress.
func (s *Scroller) IsTouching() bool {
	return s.touching
}

// UserData returns the data passed to the running ScrollTo call, or nil.
func (s *Scroller) UserData() any {
	return s.userData
}

func (s *Scroller) axis() host.Axis {
	if s.IsHorizontal() {
		return host.AxisX
	}
	return host.AxisY
}

func (s *Scroller) actualScroll() float64 {
	return s.container.ScrollOffset(s.axis())
}

func (s *Scroller) setScroll(v float64) {
	s.container.SetScrollOffset(s.axis(), v)
}

// armEchoSuppression swallows the host notification caused by our own
// final write. The flag survives until the frame after this one.
func (s *Scroller) armEchoSuppression() {
	s.echoArmed = true
	s.echoFrame = s.frame
}

func (s *Scroller) cancelIdleTimer() {
	if s.idleTimer != nil {
		s.idleTimer.Stop()
		s.idleTimer = nil
	}
}

func modulo(n, d float64) float64 {
	if d <= 0 {
		return 0
	}
	return math.Mod(math.Mod(n, d)+d, d)
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
