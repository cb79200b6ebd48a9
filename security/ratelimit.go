package security

import (
	"log/slog"
	"sync"
	"time"
)

// attemptEntry tracks login attempts for a single identity. Entries are
// created lazily on first attempt and live until the limiter is reset.
type attemptEntry struct {
	mu          sync.Mutex
	lastAttempt time.Time
	attempts    uint32
}

// AttemptLimiter throttles authentication attempts per identity using a
// bounded table of fixed-window counters.
//
// Locking is two-level: the table lock guards structural mutation (adding a
// new identity) and each entry's own lock guards its counter and timestamp,
// so concurrent requests for different identities contend only on the brief
// table lookup.
//
// Entries are never individually evicted. When the table is full, attempts
// for previously unseen identities are allowed without tracking, favoring
// availability over exhaustive protection once the identity space outgrows
// the table. UntrackedAllows in Stats exposes how often that happens.
type AttemptLimiter struct {
	mu      sync.Mutex
	entries map[string]*attemptEntry

	maxAttempts uint32
	window      time.Duration
	maxEntries  int
	logger      *slog.Logger
	now         func() time.Time

	untrackedAllows int64
}

// DefaultMaxTrackedIdentities is the default attempt-table capacity.
const DefaultMaxTrackedIdentities = 1000

// NewAttemptLimiter creates an attempt limiter that throttles an identity
// once it has made maxAttempts attempts within the window.
// Default table capacity is DefaultMaxTrackedIdentities; use
// NewAttemptLimiterWithConfig for custom capacity or a custom clock.
func NewAttemptLimiter(maxAttempts int, window time.Duration, logger *slog.Logger) *AttemptLimiter {
	return NewAttemptLimiterWithConfig(maxAttempts, window, DefaultMaxTrackedIdentities, nil, logger)
}

// NewAttemptLimiterWithConfig creates an attempt limiter with custom table
// capacity and clock. maxEntries controls how many distinct identities are
// tracked simultaneously; clock may be nil to use time.Now (non-nil is mainly
// for deterministic window tests).
func NewAttemptLimiterWithConfig(maxAttempts int, window time.Duration, maxEntries int, clock func() time.Time, logger *slog.Logger) *AttemptLimiter {
	if logger == nil {
		logger = slog.Default()
	}
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxTrackedIdentities
	}
	if clock == nil {
		clock = time.Now
	}

	return &AttemptLimiter{
		entries:     make(map[string]*attemptEntry),
		maxAttempts: uint32(maxAttempts),
		window:      window,
		maxEntries:  maxEntries,
		logger:      logger,
		now:         clock,
	}
}

// Allow records an attempt for the identity and reports whether it is
// admitted. It returns false once the identity has reached the attempt
// budget within the current window.
//
// Every admitted attempt consumes budget, success or failure alike. The
// counter is never explicitly zeroed; once the window has elapsed since the
// last attempt the time check makes the stale count irrelevant and exactly
// one attempt is admitted, which restamps the window.
func (l *AttemptLimiter) Allow(identity string) bool {
	l.mu.Lock()
	e, ok := l.entries[identity]
	if !ok {
		if len(l.entries) >= l.maxEntries {
			l.untrackedAllows++
			l.mu.Unlock()
			l.logger.Debug("attempt table full, allowing untracked identity",
				"max_entries", l.maxEntries)
			return true
		}
		e = &attemptEntry{}
		l.entries[identity] = e
	}
	l.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	now := l.now()
	if now.Sub(e.lastAttempt) < l.window && e.attempts >= l.maxAttempts {
		return false
	}

	e.attempts++
	e.lastAttempt = now
	return true
}

// Reset discards all tracked identities. The table keeps its capacity and
// configuration and can be used again immediately.
func (l *AttemptLimiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for identity, e := range l.entries {
		e.mu.Lock()
		e.attempts = 0
		e.lastAttempt = time.Time{}
		e.mu.Unlock()
		delete(l.entries, identity)
	}
}

// AttemptStats holds attempt limiter statistics for monitoring.
type AttemptStats struct {
	TrackedIdentities int   // Current number of tracked identities
	MaxIdentities     int   // Table capacity
	UntrackedAllows   int64 // Attempts admitted without tracking because the table was full
}

// Stats returns current limiter statistics. UntrackedAllows growing is the
// signal that the identity space has outgrown the table and the capacity
// should be raised.
func (l *AttemptLimiter) Stats() AttemptStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	return AttemptStats{
		TrackedIdentities: len(l.entries),
		MaxIdentities:     l.maxEntries,
		UntrackedAllows:   l.untrackedAllows,
	}
}
