package runtime

import (
	"github.com/christianalfoni/superfine-reactive-components/pkg/reactive"
	"github.com/christianalfoni/superfine-reactive-components/pkg/vdom"
)

// renderInstance wires the instance's render callback into an observer
// and performs the first render synchronously. The first render errors
// out through the return value; re-render errors are logged, since they
// surface inside a flush with no caller to hand them to.
func (rt *Runtime) renderInstance(in *Instance) error {
	first := true
	var firstErr error
	in.observer = rt.sched.Observe(func() {
		if in.destroyed {
			return
		}
		isFirst := first
		first = false
		end := rt.instr.RenderStart(in.fnName)
		err := rt.renderPass(in, isFirst)
		end(err)
		if err == nil {
			return
		}
		if isFirst {
			firstErr = err
			return
		}
		rt.log.Error("render failed",
			"component", in.fnName,
			"instance", in.id,
			"err", err)
	})
	return firstErr
}

// renderPass runs one render of in: produce the description, resolve
// component placeholders against the child cache, then patch. The first
// pass materializes into a detached anchor that the parent attaches by
// embedding in.host in its own output; later passes patch the anchor in
// place, so the parent is never re-entered.
func (rt *Runtime) renderPass(in *Instance, first bool) error {
	in.activeBranch = ""
	in.inRender = true
	var tree *vdom.VNode
	reactive.WithScope(in, func() {
		tree = in.render()
	})
	in.inRender = false

	// Positional identity restarts every pass.
	in.ordinals = nil

	if tree == nil {
		in.host.Children = nil
	} else {
		resolved, err := rt.resolveNode(in, tree)
		if err != nil {
			return err
		}
		in.host.Children = []*vdom.VNode{resolved}
	}

	if first {
		node, err := rt.backend.CreateOrUpdate(nil, in.host)
		if err != nil {
			return err
		}
		in.anchor = node
		return nil
	}

	// A parked instance patches its detached subtree too, so its output
	// and dependency edges are current when a branch flip reattaches it.
	if _, err := rt.backend.CreateOrUpdate(in.anchor, in.host); err != nil {
		return err
	}
	// Connectivity is meaningless below a detached subtree, so removal
	// and mounting wait until the output is attached again.
	if rt.backend.IsConnected(in.anchor) {
		rt.sweep(in)
		rt.mountSweep(in)
	}
	return nil
}

// resolveNode swaps component placeholders in the description for the
// matching instances' stable hosts. Stable hosts themselves are opaque
// here: their children belong to the instance that owns them.
func (rt *Runtime) resolveNode(in *Instance, n *vdom.VNode) (*vdom.VNode, error) {
	if n.Stable {
		return n, nil
	}
	if n.Kind == vdom.KindComponent {
		child, err := rt.getOrCreate(in, n.Fn, n.Props, n.Key)
		if err != nil {
			return nil, err
		}
		return child.host, nil
	}
	for i, c := range n.Children {
		rc, err := rt.resolveNode(in, c)
		if err != nil {
			return nil, err
		}
		n.Children[i] = rc
	}
	return n, nil
}
