package runtime

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/christianalfoni/superfine-reactive-components/pkg/reactive"
	"github.com/christianalfoni/superfine-reactive-components/pkg/vdom"
)

var instanceIDs atomic.Uint64

func nextInstanceID() uint64 { return instanceIDs.Add(1) }

// childKey identifies a child instance inside its parent. Explicitly
// keyed children are addressed by (branch, key) so a key collision with
// a different component function can be detected and the stale instance
// disposed. Unkeyed children are addressed by (branch, fn, ordinal)
// where the ordinal counts same-function siblings within one render
// pass of that branch.
type childKey struct {
	branch  string
	key     string
	fn      uintptr
	ordinal int
}

// Instance is one live occurrence of a component. Setup ran exactly
// once when it was created; after that only its render callback re-runs.
// All fields are owned by the loop goroutine.
type Instance struct {
	id     uint64
	rt     *Runtime
	parent *Instance

	fnPtr  uintptr
	fnName string
	key    string
	branch string

	props  *reactive.Record
	render vdom.RenderFn

	// host is the stable output description handed to the parent on
	// every pass. The backend skips over it by pointer identity, which
	// is what keeps a parent patch independent of child re-renders.
	host   *vdom.VNode
	anchor vdom.Node

	observer *reactive.Observer

	children map[childKey]*Instance

	mounts   []func()
	cleanups []func()
	mounted  bool

	context  map[*Token][]*reactive.Record
	boundary *boundaryState

	// per render pass
	activeBranch string
	ordinals     map[uintptr]int

	inSetup   bool
	inRender  bool
	destroyed bool
}

// ID returns the instance's unique id.
func (in *Instance) ID() uint64 { return in.id }

// Component returns the component function's name.
func (in *Instance) Component() string { return in.fnName }

func currentInstance() *Instance {
	in, _ := reactive.CurrentScope().(*Instance)
	return in
}

func mustSetup(op string) *Instance {
	in := currentInstance()
	if in == nil || !in.inSetup {
		panic(fmt.Errorf("%w: %s", ErrOutsideSetup, op))
	}
	return in
}

// OnMount registers fn to run once, after the instance's output first
// becomes connected to the attached tree. Setup-only.
func OnMount(fn func()) {
	in := mustSetup("OnMount")
	in.mounts = append(in.mounts, fn)
}

// OnCleanup registers fn to run when the instance is destroyed.
// Cleanups run in reverse registration order, after the instance's
// children have been torn down. Setup-only.
func OnCleanup(fn func()) {
	in := mustSetup("OnCleanup")
	in.cleanups = append(in.cleanups, fn)
}

// SelectBranch sets the active branch tag for the current render pass.
// Children produced under different tags keep independent identity
// namespaces, and children of inactive tags are parked rather than
// destroyed when the parent's output no longer includes them. A pass
// that never selects runs under the empty tag. Render-only.
func SelectBranch(tag string) {
	in := currentInstance()
	if in == nil || !in.inRender {
		panic(fmt.Errorf("%w: SelectBranch", ErrOutsideRender))
	}
	in.activeBranch = tag
}

func (in *Instance) nextOrdinal(fn uintptr) int {
	if in.ordinals == nil {
		in.ordinals = make(map[uintptr]int)
	}
	n := in.ordinals[fn]
	in.ordinals[fn] = n + 1
	return n
}

func componentName(fn uintptr) string {
	f := runtime.FuncForPC(fn)
	if f == nil {
		return "unknown"
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}
