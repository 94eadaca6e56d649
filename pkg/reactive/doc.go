// Package reactive provides the dependency-tracking state layer for the
// component runtime.
//
// The reactive system provides fine-grained reactivity over plain records,
// where dependencies are tracked automatically at runtime. Reading a record
// key while an observer is running subscribes that observer to the key's
// changes.
//
// # Core Types
//
// Record wraps a plain map[string]any:
//
//	rec := Wrap(map[string]any{"count": 0})
//	value := rec.Get("count")  // Read (subscribes current listener)
//	rec.Set("count", 5)        // Write (notifies subscribers)
//
// Nested map values are wrapped lazily on first read, and the wrapper is
// cached so repeated reads return the same *Record.
//
// Observer runs a callback under tracking and re-runs it when any key it
// read changes:
//
//	sched := NewScheduler(nil)
//	obs := sched.Observe(func() {
//	    fmt.Println("count is", rec.Get("count"))
//	})
//	defer obs.Dispose()
//
// Computed is a cached derived computation:
//
//	doubled := NewComputed(func() any { return rec.Get("count").(int) * 2 })
//
// # Batching
//
// Writes notify through a Scheduler, which collects affected listeners and
// invokes each at most once per flush. A flush is requested from a pluggable
// FlushRequester; the runtime loop defers it to the next turn, so all writes
// within one turn collapse into a single invocation per listener. Batch
// groups writes explicitly:
//
//	sched.Batch(func() {
//	    rec.Set("a", 1)
//	    rec.Set("b", 2)
//	})  // Single notification after both updates
//
// # Thread Safety
//
// The tracking context is per-goroutine. The runtime confines all reads,
// writes, and flushes to a single loop goroutine; standalone use from
// multiple goroutines is safe but observers then race on application state.
package reactive
