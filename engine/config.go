package engine

import (
	"log/slog"
	"time"
)

// Input limits, fixed by the store record format.
const (
	// MaxUsernameLength is the maximum username length in bytes.
	MaxUsernameLength = 31

	// MaxPasswordLength is the maximum password length in bytes.
	MaxPasswordLength = 63
)

// Config holds engine configuration. It is immutable after New; defaults
// exist for every field.
type Config struct {
	// StorePath is the path to the credential file
	// Default: "/etc/secure_passwd"
	StorePath string

	// MaxAttempts is the number of attempts an identity may make within the
	// throttle window before being rate limited
	// Default: 5
	MaxAttempts int

	// ThrottleWindow is the rolling window for attempt counting
	// Default: 5 minutes
	ThrottleWindow time.Duration

	// MaxTrackedIdentities caps the attempt limiter table. Once the table is
	// full, attempts by previously unseen identities are admitted without
	// tracking: availability is favored over exhaustive protection.
	// Default: 1000
	MaxTrackedIdentities int

	// EnableSecurityChecks runs auxiliary runtime checks at construction:
	// debugger detection, privilege warning, and store file permissions.
	// Default: true (secure by default)
	EnableSecurityChecks bool

	// AuditEnabled controls security event logging with hashed PII
	// Default: true (secure by default)
	AuditEnabled bool

	// AuditEventsPerSecond bounds sustained audit log volume per identity
	// Default: 5 (burst 10)
	AuditEventsPerSecond float64
}

// DefaultStorePath is where the credential file lives unless configured.
const DefaultStorePath = "/etc/secure_passwd"

// applySecureDefaults fills in defaults and logs warnings for settings that
// weaken protection. Secure by default, opt-in for less secure options.
func applySecureDefaults(config *Config, logger *slog.Logger) *Config {
	if config.StorePath == "" {
		config.StorePath = DefaultStorePath
	}
	if config.MaxAttempts == 0 {
		config.MaxAttempts = 5
	}
	if config.ThrottleWindow == 0 {
		config.ThrottleWindow = 5 * time.Minute
	}
	if config.MaxTrackedIdentities == 0 {
		config.MaxTrackedIdentities = 1000
	}
	if config.AuditEventsPerSecond == 0 {
		config.AuditEventsPerSecond = 5
	}

	// Heuristic: if both security bools are false, it's a fresh config and
	// gets the secure defaults; otherwise the caller configured them
	// explicitly and disabled features earn a warning.
	isDefaultConfig := !config.EnableSecurityChecks && !config.AuditEnabled
	if isDefaultConfig {
		config.EnableSecurityChecks = true
		config.AuditEnabled = true
	} else {
		if !config.EnableSecurityChecks {
			logger.Warn("SECURITY WARNING: runtime security checks are DISABLED",
				"risk", "Debugger attachment and store permission problems go undetected",
				"recommendation", "Set EnableSecurityChecks=true")
		}
		if !config.AuditEnabled {
			logger.Warn("SECURITY WARNING: security audit logging is DISABLED",
				"risk", "Brute-force attempts leave no audit trail",
				"recommendation", "Set AuditEnabled=true")
		}
	}
	if config.MaxAttempts < 0 || config.ThrottleWindow < 0 {
		logger.Warn("Invalid throttle configuration, attempt limiting may be ineffective",
			"max_attempts", config.MaxAttempts,
			"throttle_window", config.ThrottleWindow)
	}

	return config
}
