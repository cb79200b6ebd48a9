package instrumentation

import (
	"context"
	"testing"
)

func TestMetrics_Record(t *testing.T) {
	inst, err := New(Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	m := inst.Metrics()
	ctx := context.Background()

	// Recording against no-op providers must not panic.
	m.RecordValidation(ctx, "success", 1.5)
	m.RecordValidation(ctx, "auth_failed", 0.7)
	m.RecordStoreLookup(ctx, true, 0.2)
	m.RecordStoreLookup(ctx, false, 0.1)
	m.AuthFailuresTotal.Add(ctx, 1)
	m.RateLimitExceeded.Add(ctx, 1)
	m.HashDuration.Record(ctx, 0.05)
	m.SecureBufferAcquired.Add(ctx, 1)
}

func TestNewMetrics_AllInstrumentsCreated(t *testing.T) {
	inst, err := New(Config{Enabled: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	m := inst.Metrics()
	if m.ValidationsTotal == nil || m.ValidationDuration == nil {
		t.Error("validation instruments missing")
	}
	if m.AuthFailuresTotal == nil || m.RateLimitExceeded == nil ||
		m.RateLimitUntrackedAllows == nil || m.RateLimitTrackedIdentities == nil ||
		m.SecurityChecksFailed == nil {
		t.Error("security instruments missing")
	}
	if m.StoreLookupsTotal == nil || m.StoreLookupDuration == nil {
		t.Error("storage instruments missing")
	}
	if m.HashDuration == nil || m.SecureBufferAcquired == nil {
		t.Error("crypto instruments missing")
	}
}
