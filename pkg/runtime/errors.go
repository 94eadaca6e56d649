package runtime

import "errors"

// Sentinel errors for API misuse. Misuse of a setup-scoped operation is a
// programming error and panics with one of these values wrapped, so tests
// and recovery layers can match with errors.Is.

// ErrOutsideSetup is raised when a setup-only operation (OnMount,
// OnCleanup, Publish, Lookup, RegisterAsync) is called with no component
// instance currently in its setup phase.
var ErrOutsideSetup = errors.New("runtime: setup-only operation called outside component setup")

// ErrOutsideRender is raised when a render-only operation (SelectBranch)
// is called with no component instance currently rendering.
var ErrOutsideRender = errors.New("runtime: render-only operation called outside component render")

// ErrDoublePublish is raised when an instance publishes the same context
// token twice.
var ErrDoublePublish = errors.New("runtime: context token already published by this instance")

// ErrTokenNotPublished is raised when a context lookup finds no publisher
// in the ancestor chain.
var ErrTokenNotPublished = errors.New("runtime: context token not published by any ancestor")

// ErrNoBoundary is raised when RegisterAsync is called with no ancestor
// suspense boundary.
var ErrNoBoundary = errors.New("runtime: no ancestor boundary for async registration")

// ErrRenderStorm reports that a root attachment kept scheduling new
// flushes without quiescing, which indicates a component that writes
// state it also reads on every render. The runtime drops the pending
// window and surfaces this through the logger and instrumentation
// instead of hanging.
var ErrRenderStorm = errors.New("runtime: render storm detected, dropping scheduled updates")

// ErrNoBackend is returned by Attach when no patch backend was supplied.
var ErrNoBackend = errors.New("runtime: no patch backend configured")

// ErrDetached is returned for operations on a runtime that has been
// detached.
var ErrDetached = errors.New("runtime: already detached")
