// Package animate advances a single scalar toward a target once per frame.
//
// An Animator holds at most one task. Starting a task discards the previous
// one without cross-fading. The frame driver calls Advance with the elapsed
// time in seconds; the animator performs no scheduling of its own.
//
// Four modes are supported, chosen from Params in this order:
//
//   - eased: Duration and Easing are set; progress follows the curve and
//     completes exactly when the accumulated time reaches Duration.
//   - spring: Spring is set; a damped harmonic oscillator pulls the value
//     toward the target.
//   - damped: Lerp is set; exponential smoothing with rate Lerp*60, which is
//     frame-rate independent.
//   - immediate: nothing is set; the value jumps to the target.
package animate

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/dshills/glide/internal/scroll/easing"
)

// Spring configures the spring mode.
type Spring struct {
	// Frequency is the angular frequency; higher is faster.
	Frequency float64
	// Damping is the damping ratio. 1 is critically damped, below 1
	// overshoots.
	Damping float64
}

// Params selects the interpolation mode of a task.
type Params struct {
	Lerp     float64
	Duration float64 // seconds
	Easing   easing.Func
	Spring   *Spring
}

// UpdateFunc receives the value after every Advance while a task runs,
// including the completing call.
type UpdateFunc func(value float64, completed bool)

// Animator runs one interpolation task at a time. It is not safe for
// concurrent use.
type Animator struct {
	running     bool
	value       float64
	from        float64
	to          float64
	currentTime float64
	velocity    float64

	params   Params
	onUpdate UpdateFunc

	// harmonica springs are precomputed for a fixed step; keep the last
	// one and rebuild only when the frame time changes.
	spring     harmonica.Spring
	springStep float64
}

// New creates an idle animator.
func New() *Animator {
	return &Animator{}
}

// Start begins a task from from to to. onStart runs synchronously before
// Start returns; onUpdate runs on every subsequent Advance.
func (a *Animator) Start(from, to float64, p Params, onStart func(), onUpdate UpdateFunc) {
	a.from = from
	a.value = from
	a.to = to
	a.params = p
	a.currentTime = 0
	a.velocity = 0
	a.running = true

	if onStart != nil {
		onStart()
	}
	a.onUpdate = onUpdate
}

// Advance moves the running task forward by dt seconds. Negative dt is
// treated as zero.
func (a *Animator) Advance(dt float64) {
	if !a.running {
		return
	}
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}

	completed := false
	p := a.params

	switch {
	case p.Duration > 0 && p.Easing != nil:
		a.currentTime += dt
		linear := clamp(0, a.currentTime/p.Duration, 1)
		completed = linear >= 1
		eased := 1.0
		if !completed {
			eased = p.Easing(linear)
		}
		a.value = a.from + (a.to-a.from)*eased

	case p.Spring != nil:
		if dt > 0 {
			if dt != a.springStep {
				a.spring = harmonica.NewSpring(dt, p.Spring.Frequency, p.Spring.Damping)
				a.springStep = dt
			}
			a.value, a.velocity = a.spring.Update(a.value, a.velocity, a.to)
		}
		if math.Round(a.value) == math.Round(a.to) && math.Abs(a.velocity) < 1 {
			a.value = a.to
			completed = true
		}

	case p.Lerp > 0:
		a.value = damp(a.value, a.to, p.Lerp*60, dt)
		// Exponential smoothing never reaches the target; finish once the
		// value rounds to it.
		if math.Round(a.value) == math.Round(a.to) {
			a.value = a.to
			completed = true
		}

	default:
		a.value = a.to
		completed = true
	}

	if completed {
		a.Stop()
	}

	if a.onUpdate != nil {
		a.onUpdate(a.value, completed)
	}
}

// Stop halts the current task. The value stays where it is.
func (a *Animator) Stop() {
	a.running = false
}

// IsRunning reports whether a task is active.
func (a *Animator) IsRunning() bool {
	return a.running
}

// Value returns the current value.
func (a *Animator) Value() float64 {
	return a.value
}

// From returns the start value of the current or last task.
func (a *Animator) From() float64 {
	return a.from
}

// To returns the target of the current or last task.
func (a *Animator) To() float64 {
	return a.to
}

// Elapsed returns the accumulated time of an eased task in seconds.
func (a *Animator) Elapsed() float64 {
	return a.currentTime
}

func clamp(lo, v, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func lerp(x, y, t float64) float64 {
	return (1-t)*x + t*y
}

// damp is frame-rate independent exponential smoothing.
func damp(x, y, lambda, dt float64) float64 {
	return lerp(x, y, 1-math.Exp(-lambda*dt))
}
