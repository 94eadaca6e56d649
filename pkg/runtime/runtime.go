package runtime

import (
	"log/slog"
	"sync/atomic"

	"github.com/christianalfoni/superfine-reactive-components/pkg/reactive"
	"github.com/christianalfoni/superfine-reactive-components/pkg/vdom"
)

// stormLimit is the number of consecutive flush cycles that may leave
// new work scheduled before the runtime declares a render storm and
// drops the window.
const stormLimit = 64

// Runtime owns one attached component root: its loop, scheduler,
// instance tree and patch backend.
type Runtime struct {
	backend vdom.Backend
	host    vdom.Node
	loop    *Loop
	sched   *reactive.Scheduler
	log     *slog.Logger
	instr   Instrumentation

	root *Instance

	stormStreak int
	detached    atomic.Bool
}

// Option configures a Runtime at attach time.
type Option func(*Runtime)

// WithLogger sets the structured logger. Defaults to slog.Default.
func WithLogger(log *slog.Logger) Option {
	return func(rt *Runtime) { rt.log = log }
}

// WithInstrumentation sets the instrumentation sink.
func WithInstrumentation(instr Instrumentation) Option {
	return func(rt *Runtime) { rt.instr = instr }
}

// Attach sets up fn as a component root, renders it and appends its
// output to host. State writes from any goroutine are applied through
// the runtime's loop; use Dispatch for writes and Settle in tests to
// wait for scheduled re-renders.
func Attach(fn vdom.Component, backend vdom.Backend, host vdom.Node, opts ...Option) (*Runtime, error) {
	if backend == nil {
		return nil, ErrNoBackend
	}
	rt := &Runtime{
		backend: backend,
		host:    host,
		loop:    NewLoop(),
		log:     slog.Default(),
		instr:   nopInstrumentation{},
	}
	for _, opt := range opts {
		opt(rt)
	}
	rt.sched = reactive.NewScheduler(reactive.FlushRequesterFunc(rt.requestFlush))

	var err error
	rt.loop.RunSync(func() {
		err = rt.attachRoot(fn)
	})
	if err != nil {
		rt.loop.Close()
		return nil, err
	}
	return rt, nil
}

func (rt *Runtime) attachRoot(fn vdom.Component) error {
	root, err := rt.createInstance(nil, fn, nil, "", "")
	if err != nil {
		return err
	}
	rt.root = root
	if _, err := rt.backend.CreateOrUpdate(rt.host, root.host); err != nil {
		rt.teardown(root)
		rt.root = nil
		return err
	}
	rt.mountSweep(root)
	return nil
}

// Detach tears the root down: cleanups run bottom-up, the rendered
// output is emptied, and the loop stops. Further use of the runtime is
// an error.
func (rt *Runtime) Detach() error {
	if !rt.detached.CompareAndSwap(false, true) {
		return ErrDetached
	}
	var err error
	rt.loop.RunSync(func() {
		if rt.root != nil {
			rt.teardown(rt.root)
			rt.root.host.Children = nil
			if rt.root.anchor != nil {
				if _, perr := rt.backend.CreateOrUpdate(rt.root.anchor, rt.root.host); perr != nil {
					err = perr
				}
			}
			rt.root = nil
		}
	})
	rt.loop.Close()
	return err
}

// Dispatch runs fn as a loop task. All state writes from outside the
// loop go through here; re-renders the writes cause run as later tasks
// on the same loop.
func (rt *Runtime) Dispatch(fn func()) {
	rt.loop.Dispatch(fn)
}

// Settle blocks until no flush work remains scheduled. Test and
// benchmark helper; it does not wait for unsettled awaitables.
func (rt *Runtime) Settle() {
	for {
		pending := false
		rt.loop.RunSync(func() { pending = rt.sched.Pending() })
		if !pending {
			return
		}
	}
}

// Scheduler exposes the runtime's scheduler, for batching writes with
// reactive.Scheduler.Batch.
func (rt *Runtime) Scheduler() *reactive.Scheduler { return rt.sched }

// Logger returns the runtime's structured logger.
func (rt *Runtime) Logger() *slog.Logger { return rt.log }

// requestFlush is the scheduler's flush requester. Scheduling the flush
// as a loop task puts it behind every task already queued, so all state
// writes of the current task share one flush cycle.
func (rt *Runtime) requestFlush() {
	rt.loop.Dispatch(rt.flushTurn)
}

func (rt *Runtime) flushTurn() {
	if rt.detached.Load() {
		return
	}
	end := rt.instr.FlushStart()
	rt.sched.Flush()
	end()
	if !rt.sched.Pending() {
		rt.stormStreak = 0
		return
	}
	rt.stormStreak++
	if rt.stormStreak < stormLimit {
		return
	}
	// A render keeps dirtying state it reads. Drop the window instead
	// of spinning the loop forever.
	rt.stormStreak = 0
	dropped := rt.sched.DropPending()
	rt.log.Error("render storm",
		"err", ErrRenderStorm,
		"dropped", dropped,
		"cycles", stormLimit)
	rt.instr.StormDetected()
}
