// Package instrumentation provides OpenTelemetry metrics and tracing for the
// credential validation engine.
//
// Instrumentation is optional: when disabled (the default), no-op providers
// are used and recording has zero overhead. Metric instruments cover the
// whole validation pipeline (attempts, outcomes, throttles, store lookups,
// hashing) so brute-force pressure is visible without ever putting usernames
// or secrets on the wire.
package instrumentation
