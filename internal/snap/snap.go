// Package snap snaps a scroll.Scroller to registered points once motion
// settles.
//
// Points are either explicit offsets or derived from elements, one per
// configured alignment. Every scroll event re-arms a debounce; when it
// fires the engine picks a point and issues a forced ScrollTo. Scrolls the
// engine starts itself carry Initiator user data so they do not re-arm it.
package snap

import (
	"cmp"
	"math"
	"slices"

	"github.com/google/uuid"

	"github.com/dshills/glide/internal/logging"
	"github.com/dshills/glide/internal/schedule"
	"github.com/dshills/glide/internal/scroll"
	"github.com/dshills/glide/internal/scroll/emitter"
	"github.com/dshills/glide/internal/scroll/host"
)

// Initiator is the user data attached to scrolls the engine starts.
const Initiator = "snap"

// UserData is attached to every ScrollTo the engine issues.
type UserData struct {
	Initiator string
	Item      Item
}

// Item is a resolved snap point.
type Item struct {
	Value    float64
	UserData any
}

// point is an explicit snap point and its registration order.
type point struct {
	Item
	seq uint64
}

// Snap holds snap points for one Scroller. It is not safe for concurrent
// use and must run on the Scroller's goroutine.
type Snap struct {
	scroller *scroll.Scroller
	opts     Options
	log      *logging.Logger

	items    map[string]point
	elements map[string]*element
	seq      uint64

	debouncer    *schedule.Debouncer
	sub          *emitter.Subscription
	cancelResize func()
	stopped      bool
}

// New attaches a snap engine to s.
func New(s *scroll.Scroller, opts ...Option) *Snap {
	sn := &Snap{
		scroller: s,
		opts:     DefaultOptions(),
		items:    make(map[string]point),
		elements: make(map[string]*element),
	}
	for _, opt := range opts {
		opt(sn)
	}
	if sn.log == nil {
		sn.log = s.Logger()
	}
	sn.log = sn.log.WithComponent("snap")

	sn.debouncer = schedule.NewDebouncer(s.Scheduler(), sn.opts.Debounce, sn.evaluate)
	sn.sub = s.OnScroll(sn.onScroll)
	sn.cancelResize = s.Container().OnResize(sn.remeasure)
	return sn
}

// Start resumes evaluation.
func (sn *Snap) Start() {
	sn.stopped = false
}

// Options returns the current settings.
func (sn *Snap) Options() Options {
	return sn.opts
}

// SetOptions replaces the settings. Callbacks left nil in opts keep their
// current value.
func (sn *Snap) SetOptions(opts Options) {
	if opts.OnSnapStart == nil {
		opts.OnSnapStart = sn.opts.OnSnapStart
	}
	if opts.OnSnapComplete == nil {
		opts.OnSnapComplete = sn.opts.OnSnapComplete
	}
	sn.opts = opts
	sn.debouncer.SetDelay(opts.Debounce)
}

// Stop pauses evaluation. Registered points are kept.
func (sn *Snap) Stop() {
	sn.stopped = true
	sn.debouncer.Cancel()
}

// Add registers an explicit snap point and returns its id and a function
// that removes it.
func (sn *Snap) Add(value float64, userData any) (string, func()) {
	id := uuid.NewString()
	sn.seq++
	sn.items[id] = point{Item: Item{Value: value, UserData: userData}, seq: sn.seq}
	return id, func() { sn.Remove(id) }
}

// Remove deletes an explicit snap point.
func (sn *Snap) Remove(id string) {
	delete(sn.items, id)
}

// AddElement registers el as a snap source and returns its id and a
// function that removes it. The element is measured now and again whenever
// it or the container resizes.
func (sn *Snap) AddElement(el host.Element, opts ElementOptions) (string, func()) {
	id := uuid.NewString()
	sn.seq++
	e := &element{el: el, opts: opts, seq: sn.seq}
	sn.measure(e)
	if r, ok := el.(host.Resizable); ok {
		if cancel := r.OnResize(func() { sn.measure(e) }); cancel != nil {
			e.cancels = append(e.cancels, cancel)
		}
	}
	sn.elements[id] = e
	return id, func() { sn.RemoveElement(id) }
}

// RemoveElement deletes an element snap source and its observers.
func (sn *Snap) RemoveElement(id string) {
	if e, ok := sn.elements[id]; ok {
		e.release()
		delete(sn.elements, id)
	}
}

// Destroy releases every subscription and registered point.
func (sn *Snap) Destroy() {
	sn.debouncer.Cancel()
	sn.sub.Unsubscribe()
	if sn.cancelResize != nil {
		sn.cancelResize()
		sn.cancelResize = nil
	}
	for id := range sn.elements {
		sn.RemoveElement(id)
	}
	clear(sn.items)
}

func (sn *Snap) onScroll(s *scroll.Scroller) {
	if sn.stopped {
		return
	}
	if ud, ok := s.UserData().(UserData); ok && ud.Initiator == Initiator {
		return
	}
	sn.debouncer.Trigger()
}

func (sn *Snap) remeasure() {
	for _, e := range sn.elements {
		sn.measure(e)
	}
}

func (sn *Snap) measure(e *element) {
	s := sn.scroller
	e.measure(sn.axis(), s.ActualScroll(), s.Container())
}

func (sn *Snap) axis() host.Axis {
	if sn.scroller.IsHorizontal() {
		return host.AxisX
	}
	return host.AxisY
}

func (sn *Snap) viewport() float64 {
	w, h := sn.scroller.Container().ClientSize()
	if sn.axis() == host.AxisX {
		return w
	}
	return h
}

// candidates returns every snap point sorted by value. Equal values keep
// registration order.
func (sn *Snap) candidates(viewport float64) []Item {
	points := make([]point, 0, len(sn.items)+len(sn.elements))
	for _, p := range sn.items {
		points = append(points, p)
	}
	for _, e := range sn.elements {
		for _, v := range e.values(viewport) {
			points = append(points, point{Item: Item{Value: v, UserData: e.el}, seq: e.seq})
		}
	}
	slices.SortStableFunc(points, func(a, b point) int {
		if c := cmp.Compare(a.Value, b.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})

	out := make([]Item, len(points))
	for i, p := range points {
		out[i] = p.Item
	}
	return out
}

func (sn *Snap) evaluate() {
	s := sn.scroller
	if sn.stopped || s.IsStopped() {
		return
	}

	viewport := sn.viewport()
	items := sn.candidates(viewport)
	if len(items) == 0 {
		return
	}

	current := s.Scroll()
	velocity := s.Velocity()
	settled := math.Abs(velocity) < sn.opts.VelocityThreshold
	dir := sign(velocity)
	if dir == 0 {
		dir = s.Direction()
	}

	var (
		pick Item
		ok   bool
	)
	switch {
	case settled:
		pick, ok = nearest(items, current, dir)
	case sn.opts.Type == Mandatory:
		pick, ok = ahead(items, current, dir)
	}
	if !ok {
		return
	}
	if sn.opts.Type == Proximity && math.Abs(pick.Value-current) > viewport {
		return
	}

	sn.log.Debug("snapping from %.0f to %.0f (velocity %.2f)", current, pick.Value, velocity)
	sn.scrollTo(pick)
}

func (sn *Snap) scrollTo(pick Item) {
	opts := []scroll.ScrollOption{
		scroll.Force(),
		scroll.WithUserData(UserData{Initiator: Initiator, Item: pick}),
		scroll.OnStart(func(*scroll.Scroller) {
			if sn.opts.OnSnapStart != nil {
				sn.opts.OnSnapStart(pick)
			}
		}),
		scroll.OnComplete(func(*scroll.Scroller) {
			if sn.opts.OnSnapComplete != nil {
				sn.opts.OnSnapComplete(pick)
			}
		}),
	}
	if sn.opts.Lerp > 0 {
		opts = append(opts, scroll.WithLerp(sn.opts.Lerp))
	}
	if sn.opts.Duration > 0 {
		opts = append(opts, scroll.WithDuration(sn.opts.Duration))
	}
	if sn.opts.Easing != nil {
		opts = append(opts, scroll.WithEasing(sn.opts.Easing))
	}
	sn.scroller.ScrollTo(scroll.Offset(pick.Value), opts...)
}

// nearest returns the item closest to current. Equidistant items resolve
// toward dir, or to the earlier item when dir is zero.
func nearest(items []Item, current float64, dir int) (Item, bool) {
	best := -1
	bestDist := math.Inf(1)
	for i, it := range items {
		d := math.Abs(it.Value - current)
		switch {
		case d < bestDist:
			best, bestDist = i, d
		case d == bestDist && dir > 0 && it.Value > items[best].Value:
			best = i
		}
	}
	if best < 0 {
		return Item{}, false
	}
	return items[best], true
}

// ahead returns the first item past current in direction dir, falling back
// to the nearest one when nothing lies ahead.
func ahead(items []Item, current float64, dir int) (Item, bool) {
	switch {
	case dir > 0:
		for _, it := range items {
			if it.Value > current {
				return it, true
			}
		}
	case dir < 0:
		for i := len(items) - 1; i >= 0; i-- {
			if items[i].Value < current {
				return items[i], true
			}
		}
	}
	return nearest(items, current, dir)
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
