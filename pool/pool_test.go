package pool

import (
	"errors"
	"math/rand"
	"testing"
)

func TestAcquireGrowsThenReuses(t *testing.T) {
	p := New[int](0, 0)

	a, _ := p.Acquire()
	b, _ := p.Acquire()
	if a != 0 || b != 1 {
		t.Fatalf("expected fresh indices 0,1, got %d,%d", a, b)
	}

	*p.Get(b) = 42
	p.Release(a)

	c, err := p.Acquire()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != a {
		t.Errorf("expected reuse of released index %d, got %d", a, c)
	}
	if *p.Get(c) != 0 {
		t.Errorf("reused slot should be zeroed, got %d", *p.Get(c))
	}
	if *p.Get(b) != 42 {
		t.Errorf("growth/reuse must preserve other slots, got %d", *p.Get(b))
	}
	if p.Len() != 2 {
		t.Errorf("expected 2 slots, got %d", p.Len())
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	p := New[int](4, 0)
	idx, _ := p.Acquire()

	if !p.Release(idx) {
		t.Fatal("first release should succeed")
	}
	if p.Release(idx) {
		t.Error("second release should be a no-op")
	}
	if p.Release(99) || p.Release(-1) {
		t.Error("out-of-range release should be a no-op")
	}
	if p.FreeLen() != 1 {
		t.Errorf("free-list should hold exactly one index, got %d", p.FreeLen())
	}
	if p.Count() != 0 {
		t.Errorf("expected 0 active, got %d", p.Count())
	}
}

func TestBoundedPoolExhausts(t *testing.T) {
	p := New[int](8, 2)
	p.Acquire()
	p.Acquire()

	if _, err := p.Acquire(); !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
	if p.Count() != 2 {
		t.Errorf("failed acquire must not change state, count=%d", p.Count())
	}

	p.Release(0)
	if _, err := p.Acquire(); err != nil {
		t.Errorf("acquire after release should succeed: %v", err)
	}
}

func TestForEachActiveSkipsReleased(t *testing.T) {
	p := New[int](0, 0)
	for i := 0; i < 5; i++ {
		idx, _ := p.Acquire()
		*p.Get(idx) = i
	}
	p.Release(1)
	p.Release(3)

	var seen []int
	p.ForEachActive(func(idx int, v *int) {
		seen = append(seen, *v)
	})

	want := []int{0, 2, 4}
	if len(seen) != len(want) {
		t.Fatalf("expected %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("seen[%d] = %d, want %d", i, seen[i], want[i])
		}
	}
}

func TestReleaseDuringIteration(t *testing.T) {
	p := New[int](0, 0)
	for i := 0; i < 6; i++ {
		p.Acquire()
	}

	visits := 0
	p.ForEachActive(func(idx int, _ *int) {
		visits++
		// Release self and the next slot; the next one must not be visited.
		p.Release(idx)
		p.Release(idx + 1)
	})

	if visits != 3 {
		t.Errorf("expected 3 visits, got %d", visits)
	}
	if p.Count() != 0 {
		t.Errorf("expected all released, got %d active", p.Count())
	}
	if p.Len() != 6 {
		t.Errorf("backing array must not shrink, len=%d", p.Len())
	}
}

func TestRangeStopsEarly(t *testing.T) {
	p := New[int](0, 0)
	for i := 0; i < 5; i++ {
		p.Acquire()
	}

	visits := 0
	p.Range(func(idx int, _ *int) bool {
		visits++
		return idx < 2
	})
	if visits != 3 {
		t.Errorf("expected 3 visits before stopping, got %d", visits)
	}
}

func TestReset(t *testing.T) {
	p := New[int](0, 0)
	p.Acquire()
	p.Acquire()
	p.Release(0)
	p.Reset()

	if p.Count() != 0 || p.Len() != 0 || p.FreeLen() != 0 {
		t.Errorf("reset should clear slots and free-list: count=%d len=%d free=%d",
			p.Count(), p.Len(), p.FreeLen())
	}
	idx, _ := p.Acquire()
	if idx != 0 {
		t.Errorf("expected fresh index 0 after reset, got %d", idx)
	}
}

// TestRandomSequenceSafety checks that no index is handed out twice while live
// and that every acquired index was either new or came off the free-list.
func TestRandomSequenceSafety(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := New[int](0, 64)
	live := make(map[int]bool)

	for step := 0; step < 5000; step++ {
		if rng.Intn(3) > 0 {
			before := p.Len()
			freeBefore := p.FreeLen()
			idx, err := p.Acquire()
			if err != nil {
				if !errors.Is(err, ErrExhausted) || p.Count() != 64 {
					t.Fatalf("unexpected acquire failure at step %d: %v", step, err)
				}
				continue
			}
			if live[idx] {
				t.Fatalf("index %d handed out while still live", idx)
			}
			if freeBefore == 0 && idx != before {
				t.Fatalf("expected fresh index %d, got %d", before, idx)
			}
			live[idx] = true
		} else if len(live) > 0 {
			for idx := range live {
				if !p.Release(idx) {
					t.Fatalf("release of live index %d failed", idx)
				}
				delete(live, idx)
				break
			}
		}

		if p.Count() != len(live) {
			t.Fatalf("count mismatch: pool=%d tracked=%d", p.Count(), len(live))
		}
	}
}
