package reactive

import "testing"

func TestSchedulerBatchesPerFlush(t *testing.T) {
	req := &manualRequester{}
	sched := NewScheduler(req)
	rec := Wrap(map[string]any{"a": 0, "b": 0})

	runs := 0
	sched.Observe(func() {
		runs++
		_ = rec.Get("a")
		_ = rec.Get("b")
	})
	if runs != 1 {
		t.Fatalf("expected initial run, got %d", runs)
	}

	// Several writes within one turn.
	rec.Set("a", 1)
	rec.Set("b", 2)
	rec.Set("a", 3)

	if runs != 1 {
		t.Errorf("writes must not run the observer before the turn boundary, got %d", runs)
	}
	if req.requests != 1 {
		t.Errorf("expected exactly one flush request, got %d", req.requests)
	}

	sched.Flush()
	if runs != 2 {
		t.Errorf("expected one invocation observing all writes, got %d runs", runs)
	}
	if rec.Peek("a") != 3 {
		t.Errorf("flush must observe the final value, got %v", rec.Peek("a"))
	}
}

func TestSchedulerEnqueueOrder(t *testing.T) {
	sched := NewScheduler(&manualRequester{})

	var order []string
	recA := Wrap(map[string]any{"v": 0})
	recB := Wrap(map[string]any{"v": 0})

	sched.Observe(func() {
		_ = recA.Get("v")
		order = append(order, "first")
	})
	sched.Observe(func() {
		_ = recB.Get("v")
		order = append(order, "second")
	})
	order = nil

	recA.Set("v", 1)
	recB.Set("v", 1)
	sched.Flush()

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("flush order must match enqueue order, got %v", order)
	}
}

func TestSchedulerReentrantSchedulingDefers(t *testing.T) {
	req := &manualRequester{}
	sched := NewScheduler(req)
	rec := Wrap(map[string]any{"a": 0, "b": 0})

	bRuns := 0
	sched.Observe(func() {
		_ = rec.Get("b")
		bRuns++
	})

	sched.Observe(func() {
		if v, _ := rec.Get("a").(int); v == 1 {
			// Scheduling during a flush must land in the next flush.
			rec.Set("b", 99)
		}
	})
	bRuns = 0

	rec.Set("a", 1)
	sched.Flush()

	if bRuns != 0 {
		t.Errorf("reentrant schedule must defer to the next flush, got %d runs", bRuns)
	}
	if !sched.Pending() {
		t.Fatal("expected a pending window after reentrant scheduling")
	}
	sched.Flush()
	if bRuns != 1 {
		t.Errorf("expected deferred run in next flush, got %d", bRuns)
	}
}

func TestSchedulerBatch(t *testing.T) {
	req := &manualRequester{}
	sched := NewScheduler(req)
	rec := Wrap(map[string]any{"a": 0, "b": 0})

	runs := 0
	sched.Observe(func() {
		runs++
		_ = rec.Get("a")
		_ = rec.Get("b")
	})
	runs = 0

	sched.Batch(func() {
		rec.Set("a", 1)
		rec.Set("b", 2)
		if req.requests != 0 {
			t.Errorf("no flush request inside batch, got %d", req.requests)
		}
	})

	if req.requests != 1 {
		t.Errorf("expected one flush request after batch, got %d", req.requests)
	}
	sched.Flush()
	if runs != 1 {
		t.Errorf("expected single run after batch flush, got %d", runs)
	}
}

func TestSchedulerImmediateMode(t *testing.T) {
	sched := NewScheduler(nil)
	rec := Wrap(map[string]any{"count": 0})

	runs := 0
	sched.Observe(func() {
		runs++
		_ = rec.Get("count")
	})

	rec.Set("count", 1)
	if runs != 2 {
		t.Errorf("immediate mode should flush synchronously, got %d runs", runs)
	}
}

func TestSchedulerDedupesListener(t *testing.T) {
	sched := NewScheduler(&manualRequester{})
	rec := Wrap(map[string]any{"a": 0, "b": 0})

	runs := 0
	sched.Observe(func() {
		runs++
		_ = rec.Get("a")
		_ = rec.Get("b")
	})
	runs = 0

	// Both keys notify the same observer; it still runs once.
	rec.Set("a", 1)
	rec.Set("b", 1)
	sched.Flush()
	if runs != 1 {
		t.Errorf("observer enqueued twice must run once, got %d", runs)
	}
}
