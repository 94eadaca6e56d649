package runtime

import (
	"fmt"

	"github.com/christianalfoni/superfine-reactive-components/pkg/reactive"
	"github.com/christianalfoni/superfine-reactive-components/pkg/vdom"
)

// boundaryState tracks the in-flight awaitables registered below one
// Boundary instance. The count lives in a record so the boundary's
// render observes it like any other state, which is also what coalesces
// several same-turn adjustments into one re-render.
type boundaryState struct {
	rt   *Runtime
	rec  *reactive.Record
	seen map[*Future]struct{}
}

func (st *boundaryState) pending() int {
	n, _ := st.rec.Peek("pending").(int)
	return n
}

// adjust is loop-confined.
func (st *boundaryState) adjust(delta int) {
	st.rec.Set("pending", st.pending()+delta)
}

// Boundary is the suspense component. It renders its "content" prop
// while no registered awaitable below it is pending, and its "fallback"
// prop otherwise. Both props hold descriptions (*vdom.VNode or
// []*vdom.VNode). The two branches keep independent child identity and
// neither branch's instances are destroyed by a flip, so content state
// survives a fallback excursion and setup never re-runs.
//
//	vdom.Child(runtime.Boundary, map[string]any{
//	    "fallback": vdom.El("div", nil, vdom.Text("loading")),
//	    "content":  vdom.Child(profile, nil),
//	})
func Boundary(props *reactive.Record) any {
	in := mustSetup("Boundary")
	st := &boundaryState{
		rt:   in.rt,
		rec:  reactive.Wrap(map[string]any{"pending": 0}),
		seen: make(map[*Future]struct{}),
	}
	in.boundary = st

	return vdom.RenderFn(func() *vdom.VNode {
		if n, _ := st.rec.Get("pending").(int); n > 0 {
			SelectBranch("fallback")
			return branchContent(props.Get("fallback"))
		}
		SelectBranch("content")
		return branchContent(props.Get("content"))
	})
}

func branchContent(v any) *vdom.VNode {
	switch c := v.(type) {
	case *vdom.VNode:
		return c
	case []*vdom.VNode:
		return &vdom.VNode{Kind: vdom.KindFragment, Children: c}
	case nil:
		return nil
	default:
		panic(fmt.Errorf("runtime: boundary branch must be a description, got %T", v))
	}
}

// RegisterAsync registers awaitables with the nearest ancestor
// Boundary and returns a record the resolved values land in, keyed by
// the names given here. Each awaitable counts against the boundary's
// pending count exactly once, no matter how many instances register it.
// An already-settled awaitable contributes its value synchronously and
// never touches the count. Rejections are logged and decrement without
// writing a value. Setup-only.
func RegisterAsync(futures map[string]*Future) *reactive.Record {
	in := mustSetup("RegisterAsync")
	var st *boundaryState
	for p := in.parent; p != nil; p = p.parent {
		if p.boundary != nil {
			st = p.boundary
			break
		}
	}
	if st == nil {
		panic(fmt.Errorf("%w: %s", ErrNoBoundary, in.fnName))
	}

	rt := in.rt
	results := reactive.Wrap(make(map[string]any, len(futures)))
	for name, f := range futures {
		if f.Done() {
			v, err := f.Result()
			if err != nil {
				rt.log.Error("async rejected", "name", name, "err", err)
				rt.instr.AsyncRejected(name, err)
				continue
			}
			results.Set(name, v)
			continue
		}

		newly := false
		if _, ok := st.seen[f]; !ok {
			st.seen[f] = struct{}{}
			newly = true
			st.adjust(1)
		}
		counted := newly
		f.onSettled(func(v any, err error) {
			// Settlement may come from any goroutine; the write and the
			// count adjustment belong on the loop.
			rt.loop.Dispatch(func() {
				if err != nil {
					rt.log.Error("async rejected", "name", name, "err", err)
					rt.instr.AsyncRejected(name, err)
				} else {
					results.Set(name, v)
				}
				if counted {
					st.adjust(-1)
				}
			})
		})
	}
	return results
}
