// Package vdom defines the structural description format exchanged between
// components and the tree-patching backend.
//
// A VNode describes elements, text, fragments, and embedded component
// placeholders with optional identity keys. The runtime resolves component
// placeholders into stable subtree hosts; everything else is handed to the
// Backend, the two-operation patching capability:
//
//	node, err := backend.CreateOrUpdate(anchor, desc)
//	alive := backend.IsConnected(node)
//
// The concrete diffing algorithm lives behind Backend. The one contract the
// runtime relies on is reference stability: when a patch pass encounters the
// same stable *VNode it has already materialized, it reuses (or moves) the
// existing concrete node and skips diffing that subtree entirely. A stable
// host's contents are only ever patched by its owning component instance,
// directly against its own anchor.
//
// # Building descriptions
//
//	vdom.El("div", vdom.Attrs{"class": "card"},
//	    vdom.El("h1", nil, vdom.Text("Title")),
//	    vdom.Child(Counter, map[string]any{"count": 0}),
//	)
package vdom
