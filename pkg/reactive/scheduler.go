package reactive

import "sync"

// FlushRequester is asked to arrange a call to Scheduler.Flush at the next
// turn boundary. The runtime loop posts the flush as a task; tests can
// supply a manual requester and flush by hand.
//
// RequestFlush is called at most once per pending window: after a request,
// no further requests are made until that flush has run.
type FlushRequester interface {
	RequestFlush()
}

// FlushRequesterFunc adapts a function to the FlushRequester interface.
type FlushRequesterFunc func()

// RequestFlush calls the wrapped function.
func (f FlushRequesterFunc) RequestFlush() { f() }

// Flushable is an entry in the scheduled notification set: something the
// scheduler can invoke at flush time. Observers implement it; the runtime
// adds its own flushables for mount and coalescing work.
type Flushable interface {
	// ID is used for deduplication within one flush window.
	ID() uint64

	// Invoke performs the deferred work.
	Invoke()
}

// Scheduler owns the scheduled notification set: the listeners pending
// invocation in the current batching window. A listener enqueued multiple
// times runs at most once per flush; enqueue order is preserved within a
// flush, and nothing is guaranteed across flushes.
type Scheduler struct {
	mu sync.Mutex

	// queue holds pending listeners in enqueue order.
	queue []Flushable

	// queued deduplicates enqueues by listener ID.
	queued map[uint64]struct{}

	// requested is true while a flush request is outstanding.
	requested bool

	// batchDepth tracks nested Batch calls. While > 0, flush requests are
	// held back until the outermost batch completes.
	batchDepth int

	requester FlushRequester
}

// NewScheduler creates a Scheduler that asks requester for flushes.
// A nil requester gives immediate flushing: every pending window is
// flushed synchronously as soon as it opens (closing it again), which is
// the standalone mode used outside a runtime loop.
func NewScheduler(requester FlushRequester) *Scheduler {
	s := &Scheduler{
		queued: make(map[uint64]struct{}),
	}
	if requester == nil {
		requester = &immediateRequester{s: s}
	}
	s.requester = requester
	return s
}

// Enqueue adds f to the scheduled notification set, requesting a flush if
// none is pending. Duplicate enqueues within one window are dropped.
func (s *Scheduler) Enqueue(f Flushable) {
	s.mu.Lock()
	if _, dup := s.queued[f.ID()]; dup {
		s.mu.Unlock()
		return
	}
	s.queued[f.ID()] = struct{}{}
	s.queue = append(s.queue, f)
	request := !s.requested && s.batchDepth == 0
	if request {
		s.requested = true
	}
	s.mu.Unlock()

	if request {
		s.requester.RequestFlush()
	}
}

// Pending reports whether any listeners are waiting for a flush.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue) > 0
}

// Flush invokes every listener scheduled so far, once each, in enqueue
// order. The set is captured before any listener runs, so listeners
// scheduled during the flush defer to the next flush (which is requested
// again through the requester).
func (s *Scheduler) Flush() {
	s.mu.Lock()
	queue := s.queue
	s.queue = nil
	s.queued = make(map[uint64]struct{})
	s.requested = false
	s.mu.Unlock()

	for _, f := range queue {
		f.Invoke()
	}
}

// DropPending discards every scheduled listener without invoking it and
// returns how many were dropped. The listeners stay subscribed and will
// be rescheduled by their next source change.
func (s *Scheduler) DropPending() int {
	s.mu.Lock()
	queue := s.queue
	s.queue = nil
	s.queued = make(map[uint64]struct{})
	s.mu.Unlock()

	for _, f := range queue {
		if d, ok := f.(interface{ MarkDropped() }); ok {
			d.MarkDropped()
		}
	}
	return len(queue)
}

// Batch runs fn, holding back flush requests until the outermost batch
// completes. Writes inside the batch still collapse per listener.
//
// Example:
//
//	sched.Batch(func() {
//	    props.Set("first", "Ada")
//	    props.Set("last", "Lovelace")
//	})
//	// Dependents are invoked once, after both writes.
func (s *Scheduler) Batch(fn func()) {
	s.mu.Lock()
	s.batchDepth++
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.batchDepth--
		request := s.batchDepth == 0 && len(s.queue) > 0 && !s.requested
		if request {
			s.requested = true
		}
		s.mu.Unlock()
		if request {
			s.requester.RequestFlush()
		}
	}()

	fn()
}

// immediateRequester flushes synchronously, looping until the scheduler
// quiesces so reentrant scheduling still lands in a fresh flush.
type immediateRequester struct {
	s        *Scheduler
	flushing bool
}

func (r *immediateRequester) RequestFlush() {
	if r.flushing {
		// The active flush loop below picks up the new window.
		return
	}
	r.flushing = true
	defer func() { r.flushing = false }()
	for r.s.Pending() {
		r.s.Flush()
	}
}
