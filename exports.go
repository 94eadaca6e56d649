package components

import (
	"github.com/christianalfoni/superfine-reactive-components/pkg/runtime"
	"github.com/christianalfoni/superfine-reactive-components/pkg/vdom"
)

// =============================================================================
// Runtime
// =============================================================================

// Runtime owns one attached component root.
type Runtime = runtime.Runtime

// Option configures a Runtime at attach time.
type Option = runtime.Option

// InstanceSnapshot is a point-in-time view of one instance.
type InstanceSnapshot = runtime.InstanceSnapshot

// Attach renders fn into host through backend and starts the runtime
// loop.
func Attach(fn Component, backend Backend, host vdom.Node, opts ...Option) (*Runtime, error) {
	return runtime.Attach(fn, backend, host, opts...)
}

// WithLogger sets the runtime's structured logger.
var WithLogger = runtime.WithLogger

// WithInstrumentation sets the runtime's instrumentation sink.
var WithInstrumentation = runtime.WithInstrumentation

// =============================================================================
// Lifecycle (setup-only)
// =============================================================================

// OnMount registers a callback for after first attachment.
func OnMount(fn func()) { runtime.OnMount(fn) }

// OnCleanup registers a callback for instance destruction.
func OnCleanup(fn func()) { runtime.OnCleanup(fn) }

// SelectBranch sets the active branch tag for the current render pass.
func SelectBranch(tag string) { runtime.SelectBranch(tag) }

// =============================================================================
// Context
// =============================================================================

// Token names a context channel between an ancestor and descendants.
type Token = runtime.Token

// ContextView is a read-through merge over published records.
type ContextView = runtime.ContextView

// NewToken creates a context token.
func NewToken(name string) *Token { return runtime.NewToken(name) }

// Publish makes values available to descendants. Setup-only.
func Publish(token *Token, values ...any) { runtime.Publish(token, values...) }

// Lookup finds the nearest ancestor publisher of token. Setup-only.
func Lookup(token *Token) *ContextView { return runtime.Lookup(token) }

// =============================================================================
// Suspense
// =============================================================================

// Future is a single-settlement awaitable.
type Future = runtime.Future

// Boundary is the suspense component.
var Boundary = runtime.Boundary

// NewFuture returns an unsettled future.
func NewFuture() *Future { return runtime.NewFuture() }

// GoFuture settles a future from a goroutine's result.
func GoFuture(fn func() (any, error)) *Future { return runtime.GoFuture(fn) }

// RegisterAsync registers awaitables with the nearest ancestor
// Boundary. Setup-only.
func RegisterAsync(futures map[string]*Future) *Record {
	return runtime.RegisterAsync(futures)
}
