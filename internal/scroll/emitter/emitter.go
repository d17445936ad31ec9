// Package emitter provides ordered observer lists.
//
// Listeners run synchronously in subscription order. Removal is by
// subscription identity, so the same function may be registered twice and
// removed independently.
package emitter

// Listener receives emitted values.
type Listener[T any] func(v T)

// Subscription represents an active listener.
type Subscription struct {
	id     uint64
	remove func(id uint64)
}

// Unsubscribe removes the listener. It is safe to call more than once and
// on a nil subscription.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.remove == nil {
		return
	}
	s.remove(s.id)
	s.remove = nil
}

type entry[T any] struct {
	id uint64
	fn Listener[T]
}

// Emitter is an ordered list of listeners for values of type T. It is not
// safe for concurrent use.
type Emitter[T any] struct {
	listeners []entry[T]
	nextID    uint64
}

// New creates an empty emitter.
func New[T any]() *Emitter[T] {
	return &Emitter[T]{}
}

// On appends a listener.
func (e *Emitter[T]) On(fn Listener[T]) *Subscription {
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, entry[T]{id: id, fn: fn})
	return &Subscription{id: id, remove: e.off}
}

// Off removes the listener behind sub.
func (e *Emitter[T]) Off(sub *Subscription) {
	sub.Unsubscribe()
}

// Emit calls every listener in subscription order. Listeners added or
// removed during Emit take effect from the next Emit.
func (e *Emitter[T]) Emit(v T) {
	listeners := e.listeners
	for _, l := range listeners {
		l.fn(v)
	}
}

// Len returns the number of listeners.
func (e *Emitter[T]) Len() int {
	return len(e.listeners)
}

// Clear removes every listener.
func (e *Emitter[T]) Clear() {
	e.listeners = nil
}

func (e *Emitter[T]) off(id uint64) {
	for i, l := range e.listeners {
		if l.id == id {
			// Copy so an Emit in progress keeps iterating the old slice.
			next := make([]entry[T], 0, len(e.listeners)-1)
			next = append(next, e.listeners[:i]...)
			next = append(next, e.listeners[i+1:]...)
			e.listeners = next
			return
		}
	}
}
