// Package schedule provides deferred callbacks for engines that are driven
// from a single goroutine.
//
// The scroll engine never runs timers concurrently with its own state
// mutations. Instead, every deferred callback (debounced resize, snap
// evaluation, velocity reset, asynchronous host notifications) is armed
// through a Scheduler, and the Scheduler decides on which goroutine the
// callback eventually runs.
//
// # Implementations
//
// Loop posts expired callbacks onto a channel. The owning goroutine drains
// it, either from a select loop:
//
//	for {
//	    select {
//	    case fn := <-loop.C():
//	        fn()
//	    case <-ticker.C:
//	        scroller.Advance(time.Now())
//	    }
//	}
//
// or by calling RunPending once per frame.
//
// Manual is a virtual clock for tests. Nothing fires until Advance is
// called, and timers fire in deadline order.
//
// Debouncer wraps a Scheduler with arm/cancel/fire-once semantics.
package schedule
