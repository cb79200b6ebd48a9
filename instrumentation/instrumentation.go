package instrumentation

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const (
	// DefaultServiceName is used when no service name is provided.
	DefaultServiceName = "authfile"

	// DefaultServiceVersion is used when no service version is provided.
	DefaultServiceVersion = "unknown"
)

// Config holds instrumentation configuration.
type Config struct {
	// ServiceName is the name of the service (e.g., "authfile", "my-auth-daemon")
	ServiceName string

	// ServiceVersion is the version of the service
	ServiceVersion string

	// Enabled controls whether instrumentation is active
	// When false, uses no-op providers (zero overhead)
	Enabled bool

	// Resource allows custom resource attributes
	// If nil, a default resource is created with service name and version
	Resource *resource.Resource
}

// Instrumentation provides OpenTelemetry instrumentation components.
type Instrumentation struct {
	config   Config
	resource *resource.Resource

	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider

	metrics *Metrics

	// Shutdown functions (registered during New() only, not thread-safe after initialization)
	shutdownFuncs []func(context.Context) error
	shutdownOnce  sync.Once
}

// New creates a new instrumentation instance.
func New(config Config) (*Instrumentation, error) {
	if config.ServiceName == "" {
		config.ServiceName = DefaultServiceName
	}
	if config.ServiceVersion == "" {
		config.ServiceVersion = DefaultServiceVersion
	}

	res := config.Resource
	if res == nil {
		var err error
		res, err = resource.New(
			context.Background(),
			resource.WithAttributes(
				semconv.ServiceName(config.ServiceName),
				semconv.ServiceVersion(config.ServiceVersion),
			),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create resource: %w", err)
		}
	}

	inst := &Instrumentation{
		config:   config,
		resource: res,
	}

	if config.Enabled {
		if err := inst.initializeProviders(); err != nil {
			return nil, fmt.Errorf("failed to initialize providers: %w", err)
		}
	} else {
		inst.meterProvider = noop.NewMeterProvider()
		inst.tracerProvider = tracenoop.NewTracerProvider()
	}

	var err error
	inst.metrics, err = newMetrics(inst)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	return inst, nil
}

// initializeProviders initializes metric and trace providers.
// Currently uses no-op providers; actual exporters (Prometheus, OTLP) can be
// added in a backward-compatible way.
func (i *Instrumentation) initializeProviders() error {
	i.meterProvider = noop.NewMeterProvider()
	i.tracerProvider = tracenoop.NewTracerProvider()
	return nil
}

// Shutdown gracefully shuts down all instrumentation providers.
func (i *Instrumentation) Shutdown(ctx context.Context) error {
	var shutdownErr error

	i.shutdownOnce.Do(func() {
		for _, fn := range i.shutdownFuncs {
			if err := fn(ctx); err != nil && shutdownErr == nil {
				shutdownErr = err
			}
		}
	})

	return shutdownErr
}

// Meter returns a named meter for the given scope.
// Scopes are layer names like "engine", "security", "storage".
func (i *Instrumentation) Meter(scope string) metric.Meter {
	return i.meterProvider.Meter("github.com/giantswarm/authfile/" + scope)
}

// Tracer returns a named tracer for the given scope.
func (i *Instrumentation) Tracer(scope string) trace.Tracer {
	return i.tracerProvider.Tracer("github.com/giantswarm/authfile/" + scope)
}

// Metrics returns the metrics holder for recording metric values.
func (i *Instrumentation) Metrics() *Metrics {
	return i.metrics
}

// MeterProvider returns the underlying meter provider.
func (i *Instrumentation) MeterProvider() metric.MeterProvider {
	return i.meterProvider
}

// TracerProvider returns the underlying tracer provider.
func (i *Instrumentation) TracerProvider() trace.TracerProvider {
	return i.tracerProvider
}

// LimiterStats is a snapshot of attempt limiter counters for metric export.
type LimiterStats struct {
	TrackedIdentities int64
	UntrackedAllows   int64
}

// RegisterLimiterStatsCallback registers an observable callback reporting the
// attempt limiter's tracked-identity gauge and its cumulative untracked-allow
// counter.
func (i *Instrumentation) RegisterLimiterStatsCallback(stats func() LimiterStats) error {
	if i.meterProvider == nil {
		return fmt.Errorf("meter provider not initialized")
	}

	meter := i.Meter("security")
	_, err := meter.RegisterCallback(
		func(_ context.Context, observer metric.Observer) error {
			s := stats()
			observer.ObserveInt64(i.metrics.RateLimitTrackedIdentities, s.TrackedIdentities)
			observer.ObserveInt64(i.metrics.RateLimitUntrackedAllows, s.UntrackedAllows)
			return nil
		},
		i.metrics.RateLimitTrackedIdentities,
		i.metrics.RateLimitUntrackedAllows,
	)
	if err != nil {
		return fmt.Errorf("failed to register limiter stats callback: %w", err)
	}
	return nil
}
