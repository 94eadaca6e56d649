package reactive

import "sync/atomic"

// testListener counts MarkDirty calls. It records edges like an observer
// so stale-edge behavior can be asserted directly.
type testListener struct {
	id      uint64
	dirty   atomic.Int64
	sources []*subscribers
}

func newTestListener() *testListener {
	return &testListener{id: nextID()}
}

func (l *testListener) ID() uint64 { return l.id }

func (l *testListener) MarkDirty() {
	l.dirty.Add(1)
}

func (l *testListener) addSource(src *subscribers) {
	for _, s := range l.sources {
		if s == src {
			return
		}
	}
	l.sources = append(l.sources, src)
}

func (l *testListener) getDirtyCount() int {
	return int(l.dirty.Load())
}

// manualRequester records flush requests without flushing, standing in for
// the runtime loop's turn boundary in tests.
type manualRequester struct {
	requests int
}

func (r *manualRequester) RequestFlush() {
	r.requests++
}
