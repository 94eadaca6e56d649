package reactive

import "testing"

func TestComputedLazy(t *testing.T) {
	rec := Wrap(map[string]any{"count": 2})

	computations := 0
	doubled := NewComputed(func() any {
		computations++
		return rec.Get("count").(int) * 2
	})

	if computations != 0 {
		t.Fatalf("computed must be lazy, got %d computations", computations)
	}
	if doubled.Value() != 4 {
		t.Errorf("expected 4, got %v", doubled.Value())
	}
	if computations != 1 {
		t.Errorf("expected 1 computation, got %d", computations)
	}

	// Repeated reads hit the cache.
	_ = doubled.Value()
	_ = doubled.Value()
	if computations != 1 {
		t.Errorf("cache miss on unchanged dependencies: %d computations", computations)
	}
}

func TestComputedInvalidation(t *testing.T) {
	rec := Wrap(map[string]any{"count": 1})

	computations := 0
	doubled := NewComputed(func() any {
		computations++
		return rec.Get("count").(int) * 2
	})
	_ = doubled.Value()

	rec.Set("count", 3)
	if computations != 1 {
		t.Errorf("invalidation must not recompute eagerly, got %d", computations)
	}
	if doubled.Value() != 6 {
		t.Errorf("expected 6 after invalidation, got %v", doubled.Value())
	}
	if computations != 2 {
		t.Errorf("expected 2 computations, got %d", computations)
	}
}

func TestComputedNotifiesSubscribers(t *testing.T) {
	sched := NewScheduler(&manualRequester{})
	rec := Wrap(map[string]any{"count": 1})
	doubled := NewComputed(func() any {
		return rec.Get("count").(int) * 2
	})

	var seen []any
	sched.Observe(func() {
		seen = append(seen, doubled.Value())
	})

	rec.Set("count", 5)
	sched.Flush()

	if len(seen) != 2 || seen[1] != 10 {
		t.Errorf("observer should see recomputed value, got %v", seen)
	}
}

func TestComputedChain(t *testing.T) {
	rec := Wrap(map[string]any{"n": 1})
	doubled := NewComputed(func() any { return rec.Get("n").(int) * 2 })
	quadrupled := NewComputed(func() any { return doubled.Value().(int) * 2 })

	if quadrupled.Value() != 4 {
		t.Errorf("expected 4, got %v", quadrupled.Value())
	}
	rec.Set("n", 3)
	if quadrupled.Value() != 12 {
		t.Errorf("chained invalidation failed, got %v", quadrupled.Value())
	}
}
