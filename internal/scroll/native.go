package scroll

import (
	"time"

	"github.com/dshills/glide/internal/schedule"
)

// IdleDelay is how long native scrolling must be quiet before velocity is
// zeroed and the Scroller goes idle.
const IdleDelay = 400 * time.Millisecond

// onNativeScroll handles the host reporting a new offset.
func (s *Scroller) onNativeScroll() {
	s.cancelIdleTimer()

	if s.echoArmed {
		s.echoArmed = false
		return
	}

	if s.mode == ModeSmooth {
		return
	}

	last := s.animatedScroll
	s.animatedScroll = s.actualScroll()
	s.targetScroll = s.animatedScroll
	s.lastVelocity = s.velocity
	s.velocity = s.animatedScroll - last
	s.direction = sign(s.velocity)
	s.setMode(ModeNative)
	s.emit()

	if s.velocity != 0 {
		var t schedule.Timer
		t = s.sched.AfterFunc(IdleDelay, func() {
			if s.idleTimer != t {
				return
			}
			s.idleTimer = nil
			s.lastVelocity = s.velocity
			s.velocity = 0
			s.setMode(ModeIdle)
			s.emit()
		})
		s.idleTimer = t
	}
}
