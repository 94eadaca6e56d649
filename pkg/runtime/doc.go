// Package runtime hosts component instances: it runs setup exactly
// once per instance, re-runs render callbacks when their tracked state
// changes, reconciles child identity across passes, and drives
// lifecycle, context propagation and suspense boundaries.
//
// All component work runs on a single loop goroutine per attached
// root. Each instance hands its parent one stable output description
// for its whole life, so a child re-render patches its own subtree
// without re-entering the parent, and a parent pass costs only its
// direct children.
package runtime
