package instrumentation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all metric instruments for the validation engine.
type Metrics struct {
	// Validation Metrics
	ValidationsTotal   metric.Int64Counter
	ValidationDuration metric.Float64Histogram

	// Security Metrics
	AuthFailuresTotal          metric.Int64Counter
	RateLimitExceeded          metric.Int64Counter
	RateLimitUntrackedAllows   metric.Int64ObservableCounter
	RateLimitTrackedIdentities metric.Int64ObservableGauge
	SecurityChecksFailed       metric.Int64Counter

	// Storage Metrics
	StoreLookupsTotal   metric.Int64Counter
	StoreLookupDuration metric.Float64Histogram

	// Crypto Metrics
	HashDuration metric.Float64Histogram

	// Secure Buffer Metrics
	SecureBufferAcquired metric.Int64Counter
}

// newMetrics creates and registers all metric instruments.
func newMetrics(inst *Instrumentation) (*Metrics, error) {
	m := &Metrics{}

	engineMeter := inst.Meter("engine")
	securityMeter := inst.Meter("security")
	storageMeter := inst.Meter("storage")

	var err error
	m.ValidationsTotal, err = engineMeter.Int64Counter(
		"authfile.validations.total",
		metric.WithDescription("Total number of credential validation requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create validations.total counter: %w", err)
	}

	m.ValidationDuration, err = engineMeter.Float64Histogram(
		"authfile.validation.duration",
		metric.WithDescription("Credential validation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create validation.duration histogram: %w", err)
	}

	m.AuthFailuresTotal, err = securityMeter.Int64Counter(
		"authfile.auth.failures.total",
		metric.WithDescription("Total number of failed credential validations"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth.failures.total counter: %w", err)
	}

	m.RateLimitExceeded, err = securityMeter.Int64Counter(
		"authfile.ratelimit.exceeded",
		metric.WithDescription("Number of validation attempts rejected by the attempt limiter"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ratelimit.exceeded counter: %w", err)
	}

	m.RateLimitUntrackedAllows, err = securityMeter.Int64ObservableCounter(
		"authfile.ratelimit.untracked_allows",
		metric.WithDescription("Attempts admitted without tracking because the attempt table was full"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ratelimit.untracked_allows counter: %w", err)
	}

	m.RateLimitTrackedIdentities, err = securityMeter.Int64ObservableGauge(
		"authfile.ratelimit.tracked_identities",
		metric.WithDescription("Current number of identities tracked by the attempt limiter"),
		metric.WithUnit("{identity}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ratelimit.tracked_identities gauge: %w", err)
	}

	m.SecurityChecksFailed, err = securityMeter.Int64Counter(
		"authfile.security.checks.failed",
		metric.WithDescription("Number of failed runtime security checks"),
		metric.WithUnit("{check}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create security.checks.failed counter: %w", err)
	}

	m.StoreLookupsTotal, err = storageMeter.Int64Counter(
		"authfile.store.lookups.total",
		metric.WithDescription("Total number of credential store lookups"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create store.lookups.total counter: %w", err)
	}

	m.StoreLookupDuration, err = storageMeter.Float64Histogram(
		"authfile.store.lookup.duration",
		metric.WithDescription("Credential store lookup duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create store.lookup.duration histogram: %w", err)
	}

	m.HashDuration, err = securityMeter.Float64Histogram(
		"authfile.hash.duration",
		metric.WithDescription("Password hashing duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create hash.duration histogram: %w", err)
	}

	m.SecureBufferAcquired, err = securityMeter.Int64Counter(
		"authfile.securebuffer.acquired",
		metric.WithDescription("Number of secure buffer acquisitions"),
		metric.WithUnit("{buffer}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create securebuffer.acquired counter: %w", err)
	}

	return m, nil
}

// RecordValidation records a validation request outcome.
func (m *Metrics) RecordValidation(ctx context.Context, outcome string, durationMs float64) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.ValidationsTotal.Add(ctx, 1, attrs)
	m.ValidationDuration.Record(ctx, durationMs, attrs)
}

// RecordStoreLookup records a credential store lookup.
func (m *Metrics) RecordStoreLookup(ctx context.Context, found bool, durationMs float64) {
	attrs := metric.WithAttributes(attribute.Bool("found", found))
	m.StoreLookupsTotal.Add(ctx, 1, attrs)
	m.StoreLookupDuration.Record(ctx, durationMs, attrs)
}
