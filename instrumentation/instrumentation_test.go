package instrumentation

import (
	"context"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"disabled", Config{Enabled: false}},
		{"enabled with identity", Config{Enabled: true, ServiceName: "test-service", ServiceVersion: "1.0.0"}},
		{"empty identity gets defaults", Config{Enabled: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := New(tt.config)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if inst == nil {
				t.Fatal("New() returned nil instrumentation")
			}

			if inst.Meter("engine") == nil {
				t.Error("Meter('engine') returned nil")
			}
			if inst.Tracer("engine") == nil {
				t.Error("Tracer('engine') returned nil")
			}
			if inst.Metrics() == nil {
				t.Error("Metrics() returned nil")
			}
		})
	}
}

func TestNew_DefaultIdentity(t *testing.T) {
	inst, err := New(Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if inst.config.ServiceName != DefaultServiceName {
		t.Errorf("ServiceName = %q, want %q", inst.config.ServiceName, DefaultServiceName)
	}
	if inst.config.ServiceVersion != DefaultServiceVersion {
		t.Errorf("ServiceVersion = %q, want %q", inst.config.ServiceVersion, DefaultServiceVersion)
	}
}

func TestInstrumentation_Shutdown(t *testing.T) {
	inst, err := New(Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := inst.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	// Shutdown is idempotent.
	if err := inst.Shutdown(context.Background()); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}
}

func TestRegisterLimiterStatsCallback(t *testing.T) {
	inst, err := New(Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := inst.RegisterLimiterStatsCallback(func() LimiterStats {
		return LimiterStats{TrackedIdentities: 42, UntrackedAllows: 7}
	}); err != nil {
		t.Errorf("RegisterLimiterStatsCallback() error = %v", err)
	}
}
