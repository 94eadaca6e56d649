// Package components provides the public API for the reactive component
// runtime.
//
// This is the recommended import for most applications:
//
//	import components "github.com/christianalfoni/superfine-reactive-components"
//
// Usage:
//
//	counter := func(props *components.Record) any {
//	    state := components.Wrap(map[string]any{"count": 0})
//	    return components.RenderFn(func() *components.VNode {
//	        return components.El("button", nil, fmt.Sprint(state.Get("count")))
//	    })
//	}
//	rt, err := components.Attach(counter, backend, host)
package components

import (
	"github.com/christianalfoni/superfine-reactive-components/pkg/reactive"
	"github.com/christianalfoni/superfine-reactive-components/pkg/vdom"
)

// =============================================================================
// Reactive state
// =============================================================================

// Record is the reactive container for component props and state.
type Record = reactive.Record

// Scheduler batches dependent re-renders per flush window.
type Scheduler = reactive.Scheduler

// Observer is a tracked callback re-run when its dependencies change.
type Observer = reactive.Observer

// Computed is a cached derived value.
type Computed = reactive.Computed

// Wrap creates a reactive Record over a plain map.
func Wrap(data map[string]any) *Record {
	return reactive.Wrap(data)
}

// NewComputed creates a lazily evaluated derived value.
func NewComputed(compute func() any) *Computed {
	return reactive.NewComputed(compute)
}

// Untracked runs fn without recording dependency edges.
func Untracked(fn func()) {
	reactive.Untracked(fn)
}

// =============================================================================
// Descriptions
// =============================================================================

// VNode is a structural description node.
type VNode = vdom.VNode

// Attrs holds element attributes.
type Attrs = vdom.Attrs

// Component is a component function: setup over props, returning a
// render callback or a description.
type Component = vdom.Component

// RenderFn is the render callback a component returns from setup.
type RenderFn = vdom.RenderFn

// Backend is the patching capability descriptions are rendered through.
type Backend = vdom.Backend

// El creates an element description.
func El(tag string, attrs Attrs, children ...any) *VNode {
	return vdom.El(tag, attrs, children...)
}

// Text creates a text description.
func Text(text string) *VNode {
	return vdom.Text(text)
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	return vdom.Fragment(children...)
}

// Child embeds a component with positional identity.
func Child(fn Component, props map[string]any) *VNode {
	return vdom.Child(fn, props)
}

// Keyed embeds a component with explicit identity.
func Keyed(key string, fn Component, props map[string]any) *VNode {
	return vdom.Keyed(key, fn, props)
}
