package reactive

import (
	"runtime"
	"sync"
)

// trackingContext holds the ambient reactive state for a goroutine.
// Each goroutine has its own tracking context so one runtime loop cannot
// observe another's in-progress tracking.
type trackingContext struct {
	// currentListener is what's currently tracking dependencies.
	// When a record key is read, it subscribes this listener.
	// nil means no tracking (reads don't create subscriptions).
	currentListener Listener

	// currentScope holds the runtime scope active on this goroutine
	// (the component instance currently in setup or render).
	// Stored as any to avoid a circular import with the runtime package.
	currentScope any
}

// trackingContexts stores per-goroutine tracking contexts.
var trackingContexts sync.Map

// goroutineID returns a unique identifier for the current goroutine,
// parsed from the runtime stack header. Implementation detail; never
// exposed to callers.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	// The stack starts with "goroutine <id> ".
	var id uint64
	for i := 10; i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// getTrackingContext returns the tracking context for the current goroutine,
// creating one if needed.
func getTrackingContext() *trackingContext {
	gid := goroutineID()
	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*trackingContext)
	}
	ctx := &trackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

// CurrentListener returns the listener currently tracking dependencies,
// or nil if no tracking is active.
func CurrentListener() Listener {
	return getTrackingContext().currentListener
}

// setCurrentListener sets the current listener and returns the previous
// one so it can be restored.
func setCurrentListener(l Listener) Listener {
	ctx := getTrackingContext()
	old := ctx.currentListener
	ctx.currentListener = l
	return old
}

// WithListener runs fn with l as the current tracking listener.
// Used internally to set up dependency tracking around observer runs.
func WithListener(l Listener, fn func()) {
	old := setCurrentListener(l)
	defer setCurrentListener(old)
	fn()
}

// Untracked runs fn without tracking record reads as dependencies.
//
// Example:
//
//	reactive.Untracked(func() {
//	    // Reading rec here won't subscribe the current observer.
//	    value = rec.Get("count")
//	})
func Untracked(fn func()) {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	fn()
}

// CurrentScope returns the runtime scope bound to this goroutine, or nil.
// The runtime package stores the component instance currently in setup
// here so nested lifecycle calls can find their owner.
func CurrentScope() any {
	return getTrackingContext().currentScope
}

// WithScope runs fn with scope as the ambient runtime scope, restoring
// the previous scope afterwards. Dynamic binding scoped to one call.
func WithScope(scope any, fn func()) {
	ctx := getTrackingContext()
	old := ctx.currentScope
	ctx.currentScope = scope
	defer func() { ctx.currentScope = old }()
	fn()
}
