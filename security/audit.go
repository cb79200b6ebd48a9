package security

import (
	"encoding/hex"
	"log/slog"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Auditor handles security event logging with PII protection. Usernames are
// hashed before they reach the log so audit trails cannot be mined for valid
// identities. An optional EventLimiter bounds per-identity log volume.
type Auditor struct {
	logger  *slog.Logger
	events  *EventLimiter
	enabled bool
}

// NewAuditor creates a new security auditor. The event limiter may be nil to
// log without flood protection.
func NewAuditor(logger *slog.Logger, events *EventLimiter, enabled bool) *Auditor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auditor{
		logger:  logger,
		events:  events,
		enabled: enabled,
	}
}

// Event represents a security audit event.
type Event struct {
	Type      string
	Username  string
	Details   map[string]any
	Timestamp time.Time
}

// LogEvent logs a security event with hashed PII.
func (a *Auditor) LogEvent(event Event) {
	if !a.enabled {
		return
	}
	if a.events != nil && !a.events.Allow(event.Username) {
		return
	}

	event.Timestamp = time.Now()

	a.logger.Info("security_audit",
		"event_type", event.Type,
		"username_hash", hashForLogging(event.Username),
		"details", event.Details,
		"timestamp", event.Timestamp,
	)
}

// LogAuthSuccess logs a successful credential validation.
func (a *Auditor) LogAuthSuccess(username string) {
	a.LogEvent(Event{
		Type:     "auth_success",
		Username: username,
	})
}

// LogAuthFailure logs a failed credential validation. The reason stays in the
// audit trail; callers only ever see the unified failure code.
func (a *Auditor) LogAuthFailure(username, reason string) {
	a.LogEvent(Event{
		Type:     "auth_failure",
		Username: username,
		Details: map[string]any{
			"reason": reason,
		},
	})
}

// LogRateLimitExceeded logs a throttled validation attempt.
func (a *Auditor) LogRateLimitExceeded(username string) {
	a.LogEvent(Event{
		Type:     "rate_limit_exceeded",
		Username: username,
	})
}

// LogSecurityCheckFailed logs a failed runtime security check.
func (a *Auditor) LogSecurityCheckFailed(check, detail string) {
	a.LogEvent(Event{
		Type: "security_check_failed",
		Details: map[string]any{
			"check":  check,
			"detail": detail,
		},
	})
}

// hashForLogging creates a BLAKE2b hash of sensitive data for logging.
func hashForLogging(sensitive string) string {
	if sensitive == "" {
		return "<empty>"
	}
	hash := blake2b.Sum256([]byte(sensitive))
	return hex.EncodeToString(hash[:])[:16]
}
