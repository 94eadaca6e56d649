package reactive

import "sync/atomic"

// Observer is a tracked callback: it runs under dependency tracking and is
// re-invoked through the scheduler whenever a record key it read changes.
//
// Before every run all prior dependency edges are removed, so the edge set
// always reflects the most recent code path through the callback.
type Observer struct {
	id uint64

	// fn is the tracked callback.
	fn func()

	// sources are the subscriber sets this observer joined on its last run.
	sources []*subscribers

	// sched receives this observer when a dependency changes.
	sched *Scheduler

	// pending indicates the observer is queued for the next flush.
	pending atomic.Bool

	// disposed marks the observer permanently inert.
	disposed atomic.Bool
}

// Observe creates an observer for fn and runs it synchronously once,
// recording every record key read during the run as a dependency edge.
// When any of those keys later changes, fn is re-invoked at the next
// flush. Dispose the observer to remove its edges and stop re-invocation.
func (s *Scheduler) Observe(fn func()) *Observer {
	o := &Observer{
		id:    nextID(),
		fn:    fn,
		sched: s,
	}
	o.run()
	return o
}

// ID implements Listener.
func (o *Observer) ID() uint64 {
	return o.id
}

// MarkDirty implements Listener: queue the observer for the next flush.
// A CAS on the pending flag ensures one queue entry per window.
func (o *Observer) MarkDirty() {
	if o.disposed.Load() {
		return
	}
	if o.pending.CompareAndSwap(false, true) {
		o.sched.Enqueue(o)
	}
}

// MarkDropped implements the scheduler's drop protocol: the queue entry
// was discarded without running, so the next dependency change must be
// able to queue the observer again.
func (o *Observer) MarkDropped() {
	o.pending.Store(false)
}

// Invoke implements Flushable: re-run the callback at flush time.
// Disposal after scheduling makes this a no-op, so a flush never reacts
// against a torn-down owner.
func (o *Observer) Invoke() {
	if !o.pending.Load() {
		return
	}
	o.run()
}

// run clears prior edges and executes the callback under tracking.
func (o *Observer) run() {
	if o.disposed.Load() {
		return
	}
	o.pending.Store(false)

	o.clearSources()

	WithListener(o, o.fn)
}

// addSource records membership in a subscriber set for later removal.
// Called by records when a key is read during this observer's run.
func (o *Observer) addSource(src *subscribers) {
	for _, s := range o.sources {
		if s == src {
			return
		}
	}
	o.sources = append(o.sources, src)
}

// clearSources removes every dependency edge recorded so far.
func (o *Observer) clearSources() {
	for _, src := range o.sources {
		src.unsubscribe(o)
	}
	o.sources = o.sources[:0]
}

// Dispose removes all edges and marks the observer permanently inert.
// An already-queued flush entry becomes a no-op.
func (o *Observer) Dispose() {
	if o.disposed.Swap(true) {
		return
	}
	o.pending.Store(false)
	o.clearSources()
	o.sources = nil
}

// IsDisposed reports whether Dispose has been called.
func (o *Observer) IsDisposed() bool {
	return o.disposed.Load()
}
