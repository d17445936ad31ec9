// Package scroll implements the scroll coordinator.
//
// A Scroller sits between a host container and the user. Wheel and touch
// input arrive through a gesture.Normalizer; the Scroller decides per
// gesture whether the host scrolls natively or whether it intercepts the
// gesture and animates the offset itself. Programmatic ScrollTo calls use
// the same animation path.
//
// The Scroller does no frame scheduling. Its owner calls Advance once per
// frame with a monotonically increasing timestamp. Deferred work (the idle
// timer after native scrolling, resize debouncing) runs on a
// schedule.Scheduler that must be drained on the same goroutine.
//
// Scroll state has three values that usually differ while moving:
//
//   - the actual scroll, what the host reports;
//   - the animated scroll, the smoothed value written to the host each
//     frame;
//   - the target scroll, where the current motion is headed.
//
// A Scroller is not safe for concurrent use.
package scroll
