package runtime

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
)

// Loop is the single goroutine on which all component work runs. Setup,
// render, lifecycle callbacks and state flushes are tasks on this loop,
// so none of them ever race with each other. External goroutines hand
// work in through Dispatch; a flush scheduled during a task runs as a
// later task, which is what makes one task a coalescing window for
// state writes.
type Loop struct {
	tasks  chan func()
	done   chan struct{}
	closed atomic.Bool
	gid    atomic.Uint64
}

// NewLoop starts the loop goroutine.
func NewLoop() *Loop {
	l := &Loop{
		tasks: make(chan func(), 256),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	l.gid.Store(goroutineID())
	for {
		select {
		case fn := <-l.tasks:
			fn()
		case <-l.done:
			// Drain whatever was queued before the close so teardown
			// tasks still run.
			for {
				select {
				case fn := <-l.tasks:
					fn()
				default:
					return
				}
			}
		}
	}
}

// Dispatch queues fn as a task. Tasks run in FIFO order. Dispatch after
// Close drops the task.
func (l *Loop) Dispatch(fn func()) {
	if l.closed.Load() {
		return
	}
	select {
	case l.tasks <- fn:
	case <-l.done:
	}
}

// RunSync queues fn and waits for it to finish. Called from the loop
// goroutine itself it runs fn inline, so loop tasks can use APIs built
// on RunSync without deadlocking.
func (l *Loop) RunSync(fn func()) {
	if l.gid.Load() == goroutineID() {
		fn()
		return
	}
	if l.closed.Load() {
		return
	}
	ch := make(chan struct{})
	l.Dispatch(func() {
		defer close(ch)
		fn()
	})
	select {
	case <-ch:
	case <-l.done:
	}
}

// Close stops the loop after draining queued tasks.
func (l *Loop) Close() {
	if l.closed.CompareAndSwap(false, true) {
		close(l.done)
	}
}

func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	// "goroutine 123 [running]:"
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return 0
	}
	id, _ := strconv.ParseUint(string(fields[1]), 10, 64)
	return id
}
