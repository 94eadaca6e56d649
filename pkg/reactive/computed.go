package reactive

import (
	"sync"
	"sync/atomic"
)

// Computed is a cached derived computation over reactive records.
// When any dependency changes, the cached value is invalidated and
// recomputed on the next read. Computed values can themselves be read
// under tracking, so chains of derived values propagate correctly.
//
// Computed values are lazy: nothing recomputes until Value is called.
type Computed struct {
	id uint64

	// base is this computed's own subscriber set.
	base subscribers

	// compute produces the derived value.
	compute func() any

	mu    sync.Mutex
	value any

	// valid indicates whether the cached value is current.
	valid atomic.Bool

	// sources are the subscriber sets joined during the last computation.
	sources []*subscribers

	// computing guards against self-referential computations.
	computing atomic.Bool
}

// NewComputed creates a computed value. The computation does not run until
// the first Value call.
func NewComputed(compute func() any) *Computed {
	return &Computed{
		id:      nextID(),
		compute: compute,
	}
}

// ID implements Listener.
func (c *Computed) ID() uint64 {
	return c.id
}

// Value returns the derived value, recomputing it if a dependency changed
// since the last read, and subscribes the current listener to this
// computed value.
func (c *Computed) Value() any {
	if l := CurrentListener(); l != nil {
		c.base.subscribe(l)
		if t, ok := l.(edgeTracker); ok {
			t.addSource(&c.base)
		}
	}

	if !c.valid.Load() {
		c.recompute()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Peek returns the cached value without subscribing or recomputing.
func (c *Computed) Peek() any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// MarkDirty implements Listener: a dependency changed, so the cache is
// stale. Subscribers are notified immediately; they re-read (and thereby
// recompute) at their next flush.
func (c *Computed) MarkDirty() {
	if !c.valid.Swap(false) {
		return
	}
	c.base.notify()
}

// addSource records a dependency edge for later removal.
func (c *Computed) addSource(src *subscribers) {
	for _, s := range c.sources {
		if s == src {
			return
		}
	}
	c.sources = append(c.sources, src)
}

// recompute runs the computation under tracking with fresh edges.
func (c *Computed) recompute() {
	if !c.computing.CompareAndSwap(false, true) {
		// Self-referential computation; hand back the stale value rather
		// than recurse.
		return
	}
	defer c.computing.Store(false)

	for _, src := range c.sources {
		src.unsubscribe(c)
	}
	c.sources = c.sources[:0]

	var value any
	WithListener(c, func() {
		value = c.compute()
	})

	c.mu.Lock()
	c.value = value
	c.mu.Unlock()
	c.valid.Store(true)
}
