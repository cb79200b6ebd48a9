package security

import (
	"fmt"
	"testing"
)

func TestEventLimiter_Allow(t *testing.T) {
	l := NewEventLimiter(1, 2, 100, nil)

	// Burst is allowed.
	for i := 0; i < 2; i++ {
		if !l.Allow("alice") {
			t.Errorf("Allow() event %d should be allowed", i+1)
		}
	}

	// Beyond the burst is limited.
	if l.Allow("alice") {
		t.Error("Allow() should limit once the burst is consumed")
	}

	// Other identities keep their own buckets.
	if !l.Allow("bob") {
		t.Error("Allow(bob) should be allowed (different identity)")
	}
}

func TestEventLimiter_LRUEviction(t *testing.T) {
	l := NewEventLimiter(1, 1, 3, nil)

	for i := 0; i < 5; i++ {
		l.Allow(fmt.Sprintf("id-%d", i))
	}

	l.mu.Lock()
	entries := len(l.limiters)
	evictions := l.totalEvictions
	l.mu.Unlock()

	if entries != 3 {
		t.Errorf("tracked entries = %d, want 3", entries)
	}
	if evictions != 2 {
		t.Errorf("totalEvictions = %d, want 2", evictions)
	}
}

func TestEventLimiter_EvictedIdentityGetsFreshBucket(t *testing.T) {
	l := NewEventLimiter(1, 1, 2, nil)

	if !l.Allow("alice") {
		t.Fatal("first event should be allowed")
	}
	if l.Allow("alice") {
		t.Fatal("second event should be limited")
	}

	// Push alice out of the table.
	l.Allow("bob")
	l.Allow("carol")

	if !l.Allow("alice") {
		t.Error("Allow() after eviction should start a fresh bucket")
	}
}
