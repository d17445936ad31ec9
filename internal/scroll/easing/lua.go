package easing

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultScriptTimeout bounds a single evaluation of a scripted curve.
const DefaultScriptTimeout = 50 * time.Millisecond

// ScriptError reports a Lua easing script that failed to compile or
// misbehaved while being validated.
type ScriptError struct {
	Source string
	Err    error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("easing script: %v", e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// Script is an easing curve implemented in Lua.
//
// The LState is not goroutine-safe; calls are serialized by mu.
type Script struct {
	mu      sync.Mutex
	L       *lua.LState
	fn      lua.LValue
	timeout time.Duration
	closed  bool
}

// FromLua compiles src into an easing curve.
//
// src is either a chunk returning a function of t:
//
//	return function(t) return t * t end
//
// or a bare expression in t:
//
//	1 - (1 - t) ^ 4
//
// Only the base and math libraries are available to the script.
func FromLua(src string) (*Script, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)

	chunk := src
	if !strings.Contains(src, "function") {
		chunk = "return function(t) return " + src + " end"
	}

	s := &Script{L: L, timeout: DefaultScriptTimeout}

	if err := s.withRecovery(func() error { return L.DoString(chunk) }); err != nil {
		L.Close()
		return nil, &ScriptError{Source: src, Err: err}
	}

	fn := L.Get(-1)
	L.Pop(1)
	if fn.Type() != lua.LTFunction {
		L.Close()
		return nil, &ScriptError{Source: src, Err: fmt.Errorf("chunk returned %s, want function", fn.Type())}
	}
	s.fn = fn

	// A curve that errors or returns a non-number on the unit interval is
	// rejected up front rather than at animation time.
	for _, t := range []float64{0, 0.5, 1} {
		if _, err := s.eval(t); err != nil {
			L.Close()
			return nil, &ScriptError{Source: src, Err: err}
		}
	}

	return s, nil
}

// Func returns the script as an easing curve. Evaluation errors fall back
// to linear progress so a broken curve still completes its animation.
func (s *Script) Func() Func {
	return func(t float64) float64 {
		v, err := s.eval(t)
		if err != nil {
			return t
		}
		return v
	}
}

// Close releases the Lua state. Curves returned by Func fall back to
// linear progress afterwards.
func (s *Script) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.L.Close()
}

func (s *Script) eval(t float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, fmt.Errorf("script closed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	top := s.L.GetTop()
	s.L.Push(s.fn)
	s.L.Push(lua.LNumber(t))

	err := s.withRecovery(func() error {
		return s.L.PCall(1, 1, nil)
	})
	if err != nil {
		s.L.SetTop(top)
		return 0, err
	}

	ret := s.L.Get(-1)
	s.L.SetTop(top)

	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("curve returned %s, want number", ret.Type())
	}
	return float64(n), nil
}

func (s *Script) withRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// loaderGlobals are the base library functions that reach the file system
// or load code.
var loaderGlobals = []string{"dofile", "loadfile", "load", "loadstring", "require", "module"}

// openSafeLibraries opens the libraries a curve may need. io, os, debug
// and package stay closed, as do the base loaders.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenMath(L)
	for _, name := range loaderGlobals {
		L.SetGlobal(name, lua.LNil)
	}
}
