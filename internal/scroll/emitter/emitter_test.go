package emitter

import "testing"

func TestEmitInSubscriptionOrder(t *testing.T) {
	e := New[int]()
	var got []string

	e.On(func(v int) { got = append(got, "a") })
	e.On(func(v int) { got = append(got, "b") })
	e.On(func(v int) { got = append(got, "c") })

	e.Emit(1)

	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("expected [a b c], got %v", got)
	}
}

func TestUnsubscribeByIdentity(t *testing.T) {
	e := New[int]()
	count := 0
	fn := func(int) { count++ }

	first := e.On(fn)
	e.On(fn)

	first.Unsubscribe()
	first.Unsubscribe()
	e.Emit(0)

	if count != 1 {
		t.Errorf("expected 1 call from the remaining subscription, got %d", count)
	}
	if e.Len() != 1 {
		t.Errorf("expected 1 listener, got %d", e.Len())
	}
}

func TestUnsubscribeDuringEmit(t *testing.T) {
	e := New[int]()
	var second *Subscription
	calls := 0

	e.On(func(int) {
		calls++
		second.Unsubscribe()
	})
	second = e.On(func(int) { calls++ })

	e.Emit(0)
	if calls != 2 {
		t.Errorf("expected removal to apply from the next emit, got %d calls", calls)
	}

	e.Emit(0)
	if calls != 3 {
		t.Errorf("expected 3 calls total, got %d", calls)
	}
}

func TestOffAndClear(t *testing.T) {
	e := New[string]()
	sub := e.On(func(string) { t.Error("removed listener called") })
	e.Off(sub)
	e.Emit("x")

	e.On(func(string) { t.Error("cleared listener called") })
	e.Clear()
	e.Emit("y")

	var nilSub *Subscription
	nilSub.Unsubscribe()
}
