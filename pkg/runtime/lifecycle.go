package runtime

import (
	"github.com/christianalfoni/superfine-reactive-components/pkg/reactive"
)

// sweep removes children of in's active branch whose output is no
// longer connected after a patch. Children of other branches are
// parked: they keep their state and come back on a later branch flip.
// Runs after each in-place patch of in.
func (rt *Runtime) sweep(in *Instance) {
	for ck, child := range in.children {
		if child.branch != in.activeBranch {
			continue
		}
		if child.anchor == nil || rt.backend.IsConnected(child.anchor) {
			continue
		}
		delete(in.children, ck)
		rt.teardown(child)
	}
}

// mountSweep runs pending mounted callbacks bottom-up for every
// instance in the subtree whose output is connected. Each instance
// mounts at most once for its lifetime.
func (rt *Runtime) mountSweep(in *Instance) {
	for _, child := range in.children {
		rt.mountSweep(child)
	}
	if in.mounted || in.anchor == nil || !rt.backend.IsConnected(in.anchor) {
		return
	}
	in.mounted = true
	for _, fn := range in.mounts {
		rt.safeCall(in, "mounted", fn)
	}
}

// teardown destroys in and its whole subtree: children first, then the
// instance's own cleanups in reverse registration order, then its
// dependency edges. Parked branch children go down with their owner.
func (rt *Runtime) teardown(in *Instance) {
	if in.destroyed {
		return
	}
	in.destroyed = true
	for ck, child := range in.children {
		delete(in.children, ck)
		rt.teardown(child)
	}
	for i := len(in.cleanups) - 1; i >= 0; i-- {
		rt.safeCall(in, "cleanup", in.cleanups[i])
	}
	if in.observer != nil {
		in.observer.Dispose()
	}
	rt.instr.InstanceDestroyed(in.fnName)
}

// safeCall runs a lifecycle callback, containing panics so one broken
// callback cannot take the loop down. The callback runs untracked:
// sweeps fire inside an observer run, and a record read from a mount
// or cleanup body must not subscribe that observer.
func (rt *Runtime) safeCall(in *Instance, phase string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			rt.log.Error("lifecycle callback panicked",
				"component", in.fnName,
				"instance", in.id,
				"phase", phase,
				"panic", r)
		}
	}()
	reactive.Untracked(fn)
}
