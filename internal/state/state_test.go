package state

import (
	"sync"
	"testing"
)

func TestGetSet(t *testing.T) {
	v := NewValue(1)
	if got := v.Get(); got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
	v.Set(7)
	if got := v.Get(); got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
}

func TestSubscribeNotifies(t *testing.T) {
	v := NewValue("a")
	var got []string
	cancel := v.Subscribe(func(s string) { got = append(got, s) })
	defer cancel()

	v.Set("b")
	v.Set("c")

	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Fatalf("got %v, want [b c]", got)
	}
}

func TestCancelStopsNotifications(t *testing.T) {
	v := NewValue(0)
	calls := 0
	cancel := v.Subscribe(func(int) { calls++ })

	v.Set(1)
	cancel()
	v.Set(2)
	// Double cancel must be safe
	cancel()

	if calls != 1 {
		t.Fatalf("expected 1 notification, got %d", calls)
	}
}

func TestUpdate(t *testing.T) {
	v := NewValue([]int{1, 2})
	v.Update(func(s []int) []int { return append(s[:len(s):len(s)], 3) })
	got := v.Get()
	if len(got) != 3 || got[2] != 3 {
		t.Fatalf("got %v, want [1 2 3]", got)
	}
}

func TestConcurrentUpdates(t *testing.T) {
	v := NewValue(0)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v.Update(func(n int) int { return n + 1 })
		}()
	}
	wg.Wait()
	if got := v.Get(); got != 100 {
		t.Fatalf("got %d, want 100", got)
	}
}
