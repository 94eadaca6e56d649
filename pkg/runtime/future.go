package runtime

import "sync"

// Future is a single-settlement awaitable. It settles exactly once,
// with either a value or an error; later settlements are ignored.
// Settlement may happen on any goroutine. Callbacks registered before
// settlement run on the settling goroutine; consumers that need loop
// affinity re-dispatch themselves.
type Future struct {
	mu        sync.Mutex
	settled   bool
	value     any
	err       error
	callbacks []func(any, error)
}

// NewFuture returns an unsettled future.
func NewFuture() *Future {
	return &Future{}
}

// GoFuture runs fn on its own goroutine and settles the returned future
// with its result.
func GoFuture(fn func() (any, error)) *Future {
	f := NewFuture()
	go func() {
		v, err := fn()
		if err != nil {
			f.Reject(err)
			return
		}
		f.Resolve(v)
	}()
	return f
}

// Resolve settles the future with a value. No-op if already settled.
func (f *Future) Resolve(v any) {
	f.settle(v, nil)
}

// Reject settles the future with an error. No-op if already settled.
func (f *Future) Reject(err error) {
	f.settle(nil, err)
}

func (f *Future) settle(v any, err error) {
	f.mu.Lock()
	if f.settled {
		f.mu.Unlock()
		return
	}
	f.settled = true
	f.value = v
	f.err = err
	cbs := f.callbacks
	f.callbacks = nil
	f.mu.Unlock()
	for _, cb := range cbs {
		cb(v, err)
	}
}

// Done reports whether the future has settled.
func (f *Future) Done() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settled
}

// Result returns the settlement. Only meaningful once Done reports true.
func (f *Future) Result() (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.err
}

// onSettled registers cb to run at settlement. An already-settled future
// invokes cb immediately on the calling goroutine.
func (f *Future) onSettled(cb func(any, error)) {
	f.mu.Lock()
	if f.settled {
		v, err := f.value, f.err
		f.mu.Unlock()
		cb(v, err)
		return
	}
	f.callbacks = append(f.callbacks, cb)
	f.mu.Unlock()
}
