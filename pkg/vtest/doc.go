// Package vtest provides an in-memory tree-patching backend and rendering
// assertions for testing components without a browser.
//
// The backend implements vdom.Backend over a retained tree of *Node values
// with real connectivity semantics: a node is connected while it is
// reachable from the backend's host. Stable subtree hosts are attached and
// moved by identity without re-diffing, matching the contract component
// runtimes rely on for render-skipping.
//
// # Quick start
//
//	backend := vtest.NewBackend()
//	rt, err := runtime.Attach(App, backend.Host(), runtime.WithBackend(backend))
//	if err != nil {
//	    t.Fatalf("attach: %v", err)
//	}
//	defer rt.Detach()
//
//	vtest.ExpectMarkup(t, backend.Host(), `<div>0</div>`)
package vtest
