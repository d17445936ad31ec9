// Package easing provides the progress curves used by duration-based scroll
// animations.
//
// A Func maps linear progress t in [0, 1] to eased progress. Curves must
// return 0 at t=0 and approach 1 at t=1; the animator substitutes exactly 1
// on the completing frame, so a curve that only gets close is fine.
package easing

import (
	"errors"
	"math"
	"strings"
)

// Func is an easing curve.
type Func func(t float64) float64

// ErrUnknownEasing is returned by Lookup for names it does not know.
var ErrUnknownEasing = errors.New("unknown easing")

// Linear returns t unchanged.
func Linear(t float64) float64 {
	return t
}

// OutExpo decelerates exponentially. It is the default scroll curve and
// saturates slightly before t=1.
func OutExpo(t float64) float64 {
	return math.Min(1, 1.001-math.Pow(2, -10*t))
}

// OutQuad decelerates quadratically.
func OutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// OutCubic decelerates cubically.
func OutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// InOutCubic accelerates then decelerates.
func InOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// InOutSine follows half a cosine wave.
func InOutSine(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

var builtins = map[string]Func{
	"linear":       Linear,
	"out-expo":     OutExpo,
	"out-quad":     OutQuad,
	"out-cubic":    OutCubic,
	"in-out-cubic": InOutCubic,
	"in-out-sine":  InOutSine,
}

// Names returns the names accepted by Lookup.
func Names() []string {
	return []string{"linear", "out-expo", "out-quad", "out-cubic", "in-out-cubic", "in-out-sine"}
}

// Lookup resolves a curve by name. Names are case-insensitive and accept
// either dashes or camel case ("outExpo", "out-expo").
func Lookup(name string) (Func, error) {
	if fn, ok := builtins[normalize(name)]; ok {
		return fn, nil
	}
	return nil, &LookupError{Name: name}
}

// LookupError reports an easing name that could not be resolved.
type LookupError struct {
	Name string
}

func (e *LookupError) Error() string {
	return "easing: unknown curve " + `"` + e.Name + `"`
}

func (e *LookupError) Unwrap() error {
	return ErrUnknownEasing
}

// normalize folds "outExpo", "OUT_EXPO" and "out-expo" to the same key.
func normalize(name string) string {
	var b strings.Builder
	var prev rune
	for _, r := range strings.TrimSpace(name) {
		orig := r
		switch {
		case r == '_' || r == ' ':
			r = '-'
		case r >= 'A' && r <= 'Z':
			if prev >= 'a' && prev <= 'z' {
				b.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
		prev = orig
	}
	return b.String()
}
