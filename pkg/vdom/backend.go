package vdom

// Node is an opaque concrete node owned by the patching backend.
type Node any

// Backend is the tree-patching capability the runtime consumes. Concrete
// implementations (a browser bridge, the in-memory test backend) own the
// retained node tree and the diffing algorithm.
//
// CreateOrUpdate has three modes, distinguished by the anchor:
//
//   - anchor == nil: materialize desc detached and return its node. If desc
//     is a stable host the backend has already materialized, the existing
//     node is returned instead of a fresh one.
//   - anchor is the node previously returned for desc: patch that node in
//     place against desc's current contents (an isolated patch; nothing
//     outside the subtree is touched).
//   - anchor is any other container node: materialize desc and append it to
//     the container.
//
// While patching, a stable child description the backend has seen before is
// attached (or moved) by identity and its subtree is never diffed; its
// owning instance patches it through its own anchor.
type Backend interface {
	// CreateOrUpdate creates or updates a concrete node from a structural
	// description, returning the node. Errors propagate synchronously to
	// the caller; no partial mutation is guaranteed.
	CreateOrUpdate(anchor Node, desc *VNode) (Node, error)

	// IsConnected reports whether node is reachable from the backend's
	// retained root.
	IsConnected(node Node) bool
}
