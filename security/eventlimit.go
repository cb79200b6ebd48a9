package security

import (
	"container/list"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// eventLimiterEntry tracks a token bucket and its last access time.
type eventLimiterEntry struct {
	identity   string
	limiter    *rate.Limiter
	lastAccess time.Time
}

// EventLimiter bounds how often audit events are emitted per identity, so an
// attacker hammering the engine cannot flood the security log. It uses a
// token bucket per identity with LRU eviction to keep memory bounded.
//
// This limiter protects the logging pipeline only; admission control for
// authentication attempts is AttemptLimiter's job.
type EventLimiter struct {
	limiters   map[string]*list.Element // identity -> list element
	lruList    *list.List               // LRU list of *eventLimiterEntry
	mu         sync.Mutex
	rate       rate.Limit
	burst      int
	maxEntries int
	logger     *slog.Logger

	totalEvictions int64
}

// NewEventLimiter creates an event limiter allowing eventsPerSecond sustained
// events with the given burst per identity. At most maxEntries identities are
// tracked; the least recently seen is evicted when the limit is reached.
func NewEventLimiter(eventsPerSecond float64, burst, maxEntries int, logger *slog.Logger) *EventLimiter {
	if logger == nil {
		logger = slog.Default()
	}
	if maxEntries <= 0 {
		maxEntries = 10000
	}

	return &EventLimiter{
		limiters:   make(map[string]*list.Element),
		lruList:    list.New(),
		rate:       rate.Limit(eventsPerSecond),
		burst:      burst,
		maxEntries: maxEntries,
		logger:     logger,
	}
}

// Allow reports whether an event for the identity may be emitted now.
func (l *EventLimiter) Allow(identity string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if elem, exists := l.limiters[identity]; exists {
		l.lruList.MoveToFront(elem)
		entry := elem.Value.(*eventLimiterEntry)
		entry.lastAccess = now
		return entry.limiter.Allow()
	}

	if len(l.limiters) >= l.maxEntries {
		l.evictLRU()
	}

	entry := &eventLimiterEntry{
		identity:   identity,
		limiter:    rate.NewLimiter(l.rate, l.burst),
		lastAccess: now,
	}
	l.limiters[identity] = l.lruList.PushFront(entry)

	return entry.limiter.Allow()
}

// evictLRU removes the least recently used entry. Caller holds the mutex.
func (l *EventLimiter) evictLRU() {
	elem := l.lruList.Back()
	if elem == nil {
		return
	}

	entry := elem.Value.(*eventLimiterEntry)
	delete(l.limiters, entry.identity)
	l.lruList.Remove(elem)
	l.totalEvictions++

	l.logger.Debug("event limiter LRU eviction",
		"total_evictions", l.totalEvictions,
		"current_entries", len(l.limiters))
}
