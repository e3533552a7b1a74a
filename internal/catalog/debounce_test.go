package catalog

import (
	"sync"
	"testing"
	"time"
)

func TestDebouncerDeliversOnlySettledValue(t *testing.T) {
	var mu sync.Mutex
	var got []string
	d := NewDebouncer(30*time.Millisecond, func(v string) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
	})
	defer d.Stop()

	// Rapid keystrokes: only the last one survives the idle interval.
	d.Set("a")
	d.Set("ap")
	d.Set("app")
	d.Set("apple")

	time.Sleep(120 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0] != "apple" {
		t.Errorf("delivered %v, want exactly [apple]", got)
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	var mu sync.Mutex
	delivered := false
	d := NewDebouncer(30*time.Millisecond, func(string) {
		mu.Lock()
		delivered = true
		mu.Unlock()
	})

	d.Set("query")
	d.Stop()

	time.Sleep(120 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if delivered {
		t.Error("Stop did not cancel the pending delivery")
	}
}

func TestDebouncerSeparateSettles(t *testing.T) {
	var mu sync.Mutex
	var got []string
	d := NewDebouncer(20*time.Millisecond, func(v string) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
	})
	defer d.Stop()

	d.Set("first")
	time.Sleep(80 * time.Millisecond)
	d.Set("second")
	time.Sleep(80 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("delivered %v, want [first second]", got)
	}
}
