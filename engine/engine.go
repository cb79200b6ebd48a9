package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/giantswarm/authfile/instrumentation"
	"github.com/giantswarm/authfile/security"
	"github.com/giantswarm/authfile/storage"
	"github.com/giantswarm/authfile/storage/credfile"
)

// fileBufferSize is the fixed secure buffer size used by HandleFile.
const fileBufferSize = 1024

// durationMs converts an elapsed time to milliseconds for histograms.
func durationMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

// Engine validates credentials against a credential store with per-identity
// attempt limiting. It is safe for concurrent use; the only shared mutable
// state is the attempt limiter table, which carries its own locking.
type Engine struct {
	config  *Config
	store   storage.CredentialStore
	limiter *security.AttemptLimiter
	auditor *security.Auditor
	inst    *instrumentation.Instrumentation
	logger  *slog.Logger
	closed  atomic.Bool
}

// New creates an engine backed by the credential file at Config.StorePath.
//
// If construction fails, no usable handle exists and the only recovery is
// another New call; there is no partially initialized state to repair.
func New(config *Config, logger *slog.Logger) (*Engine, error) {
	cfg := Config{}
	if config != nil {
		cfg = *config
	}
	if cfg.StorePath == "" {
		cfg.StorePath = DefaultStorePath
	}
	return NewWithStore(credfile.New(cfg.StorePath, logger), &cfg, logger)
}

// NewWithStore creates an engine using a custom credential store backend.
func NewWithStore(store storage.CredentialStore, config *Config, logger *slog.Logger) (*Engine, error) {
	if store == nil {
		return nil, errors.New("credential store is required")
	}
	// The engine owns a private copy; the caller's struct is never mutated
	// and later changes to it are not observed.
	cfg := Config{}
	if config != nil {
		cfg = *config
	}
	if logger == nil {
		logger = slog.Default()
	}

	config = applySecureDefaults(&cfg, logger)

	inst, err := instrumentation.New(instrumentation.Config{
		ServiceName:    instrumentation.DefaultServiceName,
		ServiceVersion: "2.0.0",
	})
	if err != nil {
		return nil, err
	}

	limiter := security.NewAttemptLimiterWithConfig(
		config.MaxAttempts,
		config.ThrottleWindow,
		config.MaxTrackedIdentities,
		nil,
		logger,
	)
	if err := inst.RegisterLimiterStatsCallback(func() instrumentation.LimiterStats {
		s := limiter.Stats()
		return instrumentation.LimiterStats{
			TrackedIdentities: int64(s.TrackedIdentities),
			UntrackedAllows:   s.UntrackedAllows,
		}
	}); err != nil {
		return nil, err
	}

	events := security.NewEventLimiter(config.AuditEventsPerSecond, 10, 10000, logger)
	auditor := security.NewAuditor(logger, events, config.AuditEnabled)

	if config.EnableSecurityChecks {
		if err := runSecurityChecks(config, auditor, inst.Metrics(), logger); err != nil {
			_ = inst.Shutdown(context.Background())
			return nil, err
		}
	}

	return &Engine{
		config:  config,
		store:   store,
		limiter: limiter,
		auditor: auditor,
		inst:    inst,
		logger:  logger,
	}, nil
}

// Config returns a copy of the active configuration. Configuration is
// immutable after construction; mutating the returned value has no effect on
// the engine.
func (e *Engine) Config() Config {
	return *e.config
}

// LimiterStats returns attempt limiter statistics for monitoring.
func (e *Engine) LimiterStats() security.AttemptStats {
	return e.limiter.Stats()
}

// Validate checks a username/password pair against the credential store.
// It returns nil on success, ErrRateLimited when the identity has exhausted
// its attempt budget, and ErrAuthFailed for both an unknown user and a wrong
// password; the two are deliberately indistinguishable to the caller.
//
// Throttling is checked before any store or cryptographic work so repeated
// auth traffic is rejected cheaply.
func (e *Engine) Validate(ctx context.Context, username, password string) error {
	ctx, span := e.inst.Tracer("engine").Start(ctx, "authfile.validate")
	defer span.End()

	start := time.Now()
	metrics := e.inst.Metrics()

	if e.closed.Load() {
		return ErrNotInitialized
	}

	if err := validateUsername(username); err != nil {
		metrics.RecordValidation(ctx, "invalid_input", durationMs(start))
		return err
	}
	if err := validatePassword(password); err != nil {
		metrics.RecordValidation(ctx, "invalid_input", durationMs(start))
		return err
	}

	if !e.limiter.Allow(username) {
		e.auditor.LogRateLimitExceeded(username)
		metrics.RateLimitExceeded.Add(ctx, 1)
		metrics.RecordValidation(ctx, "rate_limited", durationMs(start))
		return ErrRateLimited
	}

	lookupStart := time.Now()
	rec, err := e.store.Lookup(username)
	metrics.RecordStoreLookup(ctx, err == nil, durationMs(lookupStart))
	if err != nil {
		// A missing user and an unreadable store both surface as plain
		// authentication failure; the distinction lives only in the logs.
		if errors.Is(err, storage.ErrUnavailable) {
			e.logger.Error("credential store unavailable during validation")
			e.auditor.LogAuthFailure(username, "store_unavailable")
		} else {
			e.auditor.LogAuthFailure(username, "unknown_user")
		}
		metrics.AuthFailuresTotal.Add(ctx, 1)
		metrics.RecordValidation(ctx, "auth_failed", durationMs(start))
		return ErrAuthFailed
	}

	hashStart := time.Now()
	digest, err := security.HashPassword([]byte(password), rec.Salt[:])
	metrics.HashDuration.Record(ctx, durationMs(hashStart))
	if err != nil {
		e.logger.Error("password hashing failed", "error", err)
		metrics.RecordValidation(ctx, "crypto_failure", durationMs(start))
		return ErrCryptoFailure
	}

	if !security.ConstantTimeEqual(digest[:], rec.Hash[:]) {
		e.auditor.LogAuthFailure(username, "hash_mismatch")
		metrics.AuthFailuresTotal.Add(ctx, 1)
		metrics.RecordValidation(ctx, "auth_failed", durationMs(start))
		return ErrAuthFailed
	}

	e.auditor.LogAuthSuccess(username)
	metrics.RecordValidation(ctx, "success", durationMs(start))
	return nil
}

// ProcessInput is a bounds-checked pass-through validator used ahead of other
// entry points. It returns ErrBufferOverflow when len(input) >= maxLength,
// mirroring C-string semantics where the bound includes the terminator.
// The input is staged through a secure buffer so transient copies are wiped.
func (e *Engine) ProcessInput(input string, maxLength int) error {
	if e.closed.Load() {
		return ErrNotInitialized
	}

	if len(input) >= maxLength {
		return ErrBufferOverflow
	}

	buf, err := security.AcquireBuffer(maxLength)
	if err != nil {
		return ErrMemory
	}
	defer buf.Release()

	copy(buf.Bytes(), input)
	e.inst.Metrics().SecureBufferAcquired.Add(context.Background(), 1)
	return nil
}

// HandleFile reads up to a fixed-size secure buffer from the file at path and
// reports success or failure only; the contents are wiped before return.
func (e *Engine) HandleFile(path string) error {
	if e.closed.Load() {
		return ErrNotInitialized
	}
	if path == "" {
		return ErrMissingInput
	}

	f, err := os.Open(path)
	if err != nil {
		return ErrStoreUnavailable
	}
	defer f.Close()

	buf, err := security.AcquireBuffer(fileBufferSize)
	if err != nil {
		return ErrMemory
	}
	defer buf.Release()

	if _, err := f.Read(buf.Bytes()); err != nil && err != io.EOF {
		return ErrStoreUnavailable
	}
	e.inst.Metrics().SecureBufferAcquired.Add(context.Background(), 1)
	return nil
}

// Close tears the engine down: the attempt table is wiped and further
// operations fail with ErrNotInitialized. Close is idempotent and safe to
// call concurrently with in-flight operations, which either complete or
// observe the closed state.
func (e *Engine) Close() error {
	if e.closed.Swap(true) {
		return nil
	}
	e.limiter.Reset()
	return e.inst.Shutdown(context.Background())
}
