package security

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestNewAttemptLimiter(t *testing.T) {
	l := NewAttemptLimiter(5, time.Minute, nil)

	if l.maxAttempts != 5 {
		t.Errorf("maxAttempts = %d, want 5", l.maxAttempts)
	}
	if l.window != time.Minute {
		t.Errorf("window = %v, want 1m", l.window)
	}
	if l.maxEntries != DefaultMaxTrackedIdentities {
		t.Errorf("maxEntries = %d, want %d", l.maxEntries, DefaultMaxTrackedIdentities)
	}
	if l.logger == nil {
		t.Error("logger should not be nil")
	}
}

func TestAttemptLimiter_Allow(t *testing.T) {
	l := NewAttemptLimiter(3, time.Minute, nil)

	// Attempts up to the budget are admitted.
	for i := 0; i < 3; i++ {
		if !l.Allow("alice") {
			t.Errorf("Allow() attempt %d should be admitted", i+1)
		}
	}

	// The 4th attempt within the window is throttled.
	if l.Allow("alice") {
		t.Error("Allow() should throttle once the budget is exhausted")
	}
}

func TestAttemptLimiter_IdentitiesIndependent(t *testing.T) {
	l := NewAttemptLimiter(2, time.Minute, nil)

	for i := 0; i < 2; i++ {
		if !l.Allow("alice") {
			t.Errorf("Allow(alice) attempt %d should be admitted", i+1)
		}
	}
	if l.Allow("alice") {
		t.Error("Allow(alice) should be throttled")
	}

	if !l.Allow("bob") {
		t.Error("Allow(bob) should be admitted (different identity)")
	}
}

func TestAttemptLimiter_FullTableAllowsUntracked(t *testing.T) {
	l := NewAttemptLimiterWithConfig(1, time.Minute, 2, nil, nil)

	l.Allow("user-0")
	l.Allow("user-1")

	// Table is full: a new identity is admitted without tracking, every time.
	for i := 0; i < 5; i++ {
		if !l.Allow("untracked") {
			t.Errorf("Allow() call %d for untracked identity should be admitted", i+1)
		}
	}

	stats := l.Stats()
	if stats.TrackedIdentities != 2 {
		t.Errorf("TrackedIdentities = %d, want 2", stats.TrackedIdentities)
	}
	if stats.UntrackedAllows != 5 {
		t.Errorf("UntrackedAllows = %d, want 5", stats.UntrackedAllows)
	}
}

func TestAttemptLimiter_Reset(t *testing.T) {
	l := NewAttemptLimiter(1, time.Minute, nil)

	l.Allow("alice")
	if l.Allow("alice") {
		t.Fatal("Allow() should throttle before reset")
	}

	l.Reset()

	if got := l.Stats().TrackedIdentities; got != 0 {
		t.Errorf("TrackedIdentities after Reset = %d, want 0", got)
	}
	if !l.Allow("alice") {
		t.Error("Allow() should admit after reset")
	}
}

func TestAttemptLimiter_Concurrent(t *testing.T) {
	l := NewAttemptLimiterWithConfig(1000, time.Minute, 100, nil, nil)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				l.Allow(fmt.Sprintf("user-%d", g%4))
			}
		}(g)
	}
	wg.Wait()

	if got := l.Stats().TrackedIdentities; got != 4 {
		t.Errorf("TrackedIdentities = %d, want 4", got)
	}
}
