package scroll

import "strings"

// Mode is the scrolling mode.
type Mode uint8

const (
	// ModeIdle means nothing is moving.
	ModeIdle Mode = iota
	// ModeNative means the host is scrolling on its own.
	ModeNative
	// ModeSmooth means the Scroller is animating the offset.
	ModeSmooth
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeNative:
		return "native"
	case ModeSmooth:
		return "smooth"
	default:
		return "unknown"
	}
}

// Class names reflecting Scroller state, for hosts that mark their
// container.
const (
	ClassName          = "glide"
	ClassNameStopped   = "glide-stopped"
	ClassNameLocked    = "glide-locked"
	ClassNameScrolling = "glide-scrolling"
	ClassNameSmooth    = "glide-smooth"
)

// Attributes that keep gestures passing through an element native.
const (
	AttrPrevent      = "data-glide-prevent"
	AttrPreventTouch = "data-glide-prevent-touch"
	AttrPreventWheel = "data-glide-prevent-wheel"
)

// State is the observable flag set of a Scroller.
type State struct {
	Stopped bool
	Locked  bool
	Mode    Mode
}

// ClassName returns the space separated class list for st.
func (st State) ClassName() string {
	names := []string{ClassName}
	if st.Stopped {
		names = append(names, ClassNameStopped)
	}
	if st.Locked {
		names = append(names, ClassNameLocked)
	}
	if st.Mode != ModeIdle {
		names = append(names, ClassNameScrolling)
	}
	if st.Mode == ModeSmooth {
		names = append(names, ClassNameSmooth)
	}
	return strings.Join(names, " ")
}

// State returns the current flags.
func (s *Scroller) State() State {
	return State{Stopped: s.stopped, Locked: s.locked, Mode: s.mode}
}

// ClassName returns the class list for the current state.
func (s *Scroller) ClassName() string {
	return s.State().ClassName()
}

// IsStopped reports whether the Scroller is stopped.
func (s *Scroller) IsStopped() bool {
	return s.stopped
}

// IsLocked reports whether a locking animation is running.
func (s *Scroller) IsLocked() bool {
	return s.locked
}

// IsScrolling returns the scrolling mode.
func (s *Scroller) IsScrolling() Mode {
	return s.mode
}

// IsSmooth reports whether the Scroller is animating.
func (s *Scroller) IsSmooth() bool {
	return s.mode == ModeSmooth
}

func (s *Scroller) setMode(m Mode) {
	if s.mode == m {
		return
	}
	s.mode = m
	s.stateChanged()
}

func (s *Scroller) setStopped(v bool) {
	if s.stopped == v {
		return
	}
	s.stopped = v
	s.stateChanged()
}

func (s *Scroller) setLocked(v bool) {
	if s.locked == v {
		return
	}
	s.locked = v
	s.stateChanged()
}

func (s *Scroller) stateChanged() {
	if s.stateHook != nil {
		s.stateHook(s.State())
	}
}
