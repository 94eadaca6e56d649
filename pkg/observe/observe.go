// Package observe provides a runtime.Instrumentation backed by
// Prometheus metrics and OpenTelemetry spans.
//
// Usage:
//
//	instr := observe.New(observe.WithNamespace("myapp"))
//	rt, err := runtime.Attach(app, backend, host,
//	    runtime.WithInstrumentation(instr))
package observe

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for component runtimes.
const defaultTracerName = "superfine"

// Config configures the instrumentation.
type Config struct {
	// Namespace is the metrics namespace (default: "superfine").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer

	// TracerName is the name of the tracer (default: "superfine").
	TracerName string
}

// Option configures the instrumentation.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// WithTracerName sets the tracer name.
func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

func defaultConfig() Config {
	return Config{
		Namespace:  "superfine",
		Buckets:    prometheus.DefBuckets,
		Registry:   prometheus.DefaultRegisterer,
		TracerName: defaultTracerName,
	}
}

// Instrumentation implements runtime.Instrumentation over Prometheus
// and OpenTelemetry. All methods are called on the runtime loop.
type Instrumentation struct {
	m      *metrics
	tracer trace.Tracer
}

// New creates an Instrumentation, registering its collectors with the
// configured registry.
func New(opts ...Option) *Instrumentation {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &Instrumentation{
		m:      newMetrics(config),
		tracer: otel.Tracer(config.TracerName),
	}
}

// InstanceCreated implements runtime.Instrumentation.
func (i *Instrumentation) InstanceCreated(component string) {
	i.m.instancesTotal.WithLabelValues(component).Inc()
	i.m.instancesLive.Inc()
}

// InstanceDestroyed implements runtime.Instrumentation.
func (i *Instrumentation) InstanceDestroyed(component string) {
	i.m.instancesLive.Dec()
}

// RenderStart implements runtime.Instrumentation: one span and one
// histogram observation per render pass.
func (i *Instrumentation) RenderStart(component string) func(error) {
	start := time.Now()
	_, span := i.tracer.Start(context.Background(), "component.render",
		trace.WithAttributes(attribute.String("component", component)))
	return func(err error) {
		elapsed := time.Since(start).Seconds()
		i.m.renderDuration.WithLabelValues(component).Observe(elapsed)
		status := "ok"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		i.m.rendersTotal.WithLabelValues(component, status).Inc()
		span.End()
	}
}

// FlushStart implements runtime.Instrumentation.
func (i *Instrumentation) FlushStart() func() {
	start := time.Now()
	_, span := i.tracer.Start(context.Background(), "runtime.flush")
	return func() {
		i.m.flushesTotal.Inc()
		i.m.flushDuration.Observe(time.Since(start).Seconds())
		span.End()
	}
}

// StormDetected implements runtime.Instrumentation.
func (i *Instrumentation) StormDetected() {
	i.m.stormsTotal.Inc()
}

// AsyncRejected implements runtime.Instrumentation.
func (i *Instrumentation) AsyncRejected(name string, err error) {
	i.m.asyncRejections.WithLabelValues(name).Inc()
}
