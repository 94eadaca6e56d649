package vdom

import "github.com/christianalfoni/superfine-reactive-components/pkg/reactive"

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement   Kind = iota // <div>, <button>, etc.
	KindText                  // Plain text node
	KindFragment              // Grouping without wrapper
	KindComponent             // Embedded component placeholder
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// Attrs holds element attributes and event handlers.
type Attrs map[string]any

// Component is a user-defined view function. It is invoked exactly once per
// instance, as the setup phase, and returns either a RenderFn or, for
// zero-identity passthrough ("fragment") components, a *VNode directly.
type Component func(props *reactive.Record) any

// RenderFn produces the component's current structural description.
// It is re-invoked reactively when state it read changes.
type RenderFn func() *VNode

// VNode is a structural description node.
type VNode struct {
	Kind     Kind
	Tag      string   // Element tag name (e.g. "div")
	Attrs    Attrs    // Attributes for KindElement
	Children []*VNode // Child nodes
	Key      string   // Identity key for keyed reconciliation
	Text     string   // For KindText

	// Component placeholder fields (KindComponent).
	Fn    Component      // The component function
	Props map[string]any // Initial or updated props

	// Stable marks a subtree host whose pointer identity is the
	// skip-diffing signal for patchers. Set by the runtime only.
	Stable bool
}

// IsStable reports whether this node is a stable subtree host.
func (v *VNode) IsStable() bool {
	return v != nil && v.Stable
}
