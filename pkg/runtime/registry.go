package runtime

import (
	"fmt"
	"reflect"

	"github.com/christianalfoni/superfine-reactive-components/pkg/reactive"
	"github.com/christianalfoni/superfine-reactive-components/pkg/vdom"
)

// getOrCreate resolves a component placeholder against parent's child
// cache. A hit reuses the cached instance without re-running setup,
// applying the placeholder's props as one bulk update. A miss runs the
// full create path. The identity key is scoped to parent's active
// branch for the current pass.
func (rt *Runtime) getOrCreate(parent *Instance, fn vdom.Component, props map[string]any, key string) (*Instance, error) {
	fnPtr := reflect.ValueOf(fn).Pointer()

	ck := childKey{branch: parent.activeBranch, key: key}
	if key == "" {
		ck.fn = fnPtr
		ck.ordinal = parent.nextOrdinal(fnPtr)
	}

	if existing, ok := parent.children[ck]; ok {
		if existing.fnPtr != fnPtr {
			// Same key, different component. The cached instance can
			// never be revived, so dispose it and start over.
			delete(parent.children, ck)
			rt.teardown(existing)
		} else {
			if len(props) > 0 {
				existing.props.ApplyPartial(props)
			}
			return existing, nil
		}
	}

	child, err := rt.createInstance(parent, fn, props, key, parent.activeBranch)
	if err != nil {
		return nil, err
	}
	if parent.children == nil {
		parent.children = make(map[childKey]*Instance)
	}
	parent.children[ck] = child
	return child, nil
}

// createInstance allocates an instance, runs its setup exactly once and
// performs its first render into a detached anchor. The parent attaches
// the anchor by including the instance's stable host in its own output.
func (rt *Runtime) createInstance(parent *Instance, fn vdom.Component, props map[string]any, key, branch string) (*Instance, error) {
	fnPtr := reflect.ValueOf(fn).Pointer()
	in := &Instance{
		id:     nextInstanceID(),
		rt:     rt,
		parent: parent,
		fnPtr:  fnPtr,
		fnName: componentName(fnPtr),
		key:    key,
		branch: branch,
		host:   &vdom.VNode{Kind: vdom.KindFragment, Key: key, Stable: true},
	}
	if props == nil {
		props = make(map[string]any)
	}
	in.props = reactive.Wrap(props)

	// Setup runs untracked: it may execute inside an ancestor's render
	// pass, and reads made during setup must not subscribe that
	// ancestor's observer.
	var result any
	in.inSetup = true
	reactive.Untracked(func() {
		reactive.WithScope(in, func() {
			result = fn(in.props)
		})
	})
	in.inSetup = false

	switch r := result.(type) {
	case vdom.RenderFn:
		in.render = r
	case func() *vdom.VNode:
		in.render = r
	case *vdom.VNode:
		// A component returning a description directly renders it as a
		// constant. Its children still resolve per pass.
		in.render = func() *vdom.VNode { return r }
	case nil:
		in.render = func() *vdom.VNode { return nil }
	default:
		return nil, fmt.Errorf("runtime: component %s setup returned %T, want a render callback or description", in.fnName, result)
	}

	if err := rt.renderInstance(in); err != nil {
		rt.teardown(in)
		return nil, err
	}
	rt.instr.InstanceCreated(in.fnName)
	return in, nil
}
