package runtime

// Instrumentation receives structural and timing events from a running
// root. The runtime calls every method on the loop goroutine. The
// default implementation discards everything; pkg/observe provides a
// Prometheus and OpenTelemetry backed one.
type Instrumentation interface {
	// InstanceCreated fires after an instance's setup completed.
	InstanceCreated(component string)
	// InstanceDestroyed fires after an instance's cleanup ran.
	InstanceDestroyed(component string)
	// RenderStart fires before a component's render callback runs. The
	// returned func is called when the render and its patch finished.
	RenderStart(component string) func(err error)
	// FlushStart fires before a scheduled flush cycle. The returned
	// func is called when the cycle finished.
	FlushStart() func()
	// StormDetected fires when the runtime drops a non-quiescing
	// update window.
	StormDetected()
	// AsyncRejected fires when a registered awaitable settles with an
	// error.
	AsyncRejected(name string, err error)
}

type nopInstrumentation struct{}

func (nopInstrumentation) InstanceCreated(string)   {}
func (nopInstrumentation) InstanceDestroyed(string) {}
func (nopInstrumentation) RenderStart(string) func(error) {
	return func(error) {}
}
func (nopInstrumentation) FlushStart() func() {
	return func() {}
}
func (nopInstrumentation) StormDetected()              {}
func (nopInstrumentation) AsyncRejected(string, error) {}
