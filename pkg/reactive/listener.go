package reactive

import "sync/atomic"

// idCounter hands out listener and record IDs. Monotonic, never reused.
var idCounter uint64

func nextID() uint64 {
	return atomic.AddUint64(&idCounter, 1)
}

// Listener is anything that can be notified when a dependency changes.
// This interface is implemented by observers, computed values, and the
// runtime's component instances.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies has changed.
	// For observers, this schedules the callback to re-run.
	// For computed values, this invalidates the cached value.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used for deduplication in the scheduled notification set.
	ID() uint64
}

// edgeTracker is implemented by listeners that record their dependency
// edges so they can be cleared before the next run. Records call
// addSource on the current listener when a key is read under tracking.
type edgeTracker interface {
	Listener
	addSource(src *subscribers)
}

// subscribers is the type-erased subscriber set shared by record keys and
// computed values. Each dependency edge is a membership in one of these sets.
type subscribers struct {
	subs []Listener
}

// subscribe adds a listener, deduplicating by listener ID.
func (s *subscribers) subscribe(l Listener) {
	if l == nil {
		return
	}
	lid := l.ID()
	for _, existing := range s.subs {
		if existing.ID() == lid {
			return
		}
	}
	s.subs = append(s.subs, l)
}

// unsubscribe removes a listener from the set.
func (s *subscribers) unsubscribe(l Listener) {
	if l == nil {
		return
	}
	lid := l.ID()
	for i, existing := range s.subs {
		if existing.ID() == lid {
			// Order is preserved by the scheduler queue, not here.
			s.subs[i] = s.subs[len(s.subs)-1]
			s.subs = s.subs[:len(s.subs)-1]
			return
		}
	}
}

// notify marks every subscriber dirty. The slice is copied first so a
// listener that unsubscribes during notification does not perturb iteration.
func (s *subscribers) notify() {
	if len(s.subs) == 0 {
		return
	}
	subs := make([]Listener, len(s.subs))
	copy(subs, s.subs)
	for _, sub := range subs {
		sub.MarkDirty()
	}
}
