// Package testutil provides testing utilities and helpers for the authfile
// library.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/giantswarm/authfile/storage/credfile"
)

// MockTime provides a controllable time source for deterministic testing.
type MockTime struct {
	now time.Time
}

// NewMockTime creates a new mock time provider.
func NewMockTime(t time.Time) *MockTime {
	return &MockTime{now: t}
}

// Now returns the current mock time.
func (m *MockTime) Now() time.Time {
	return m.now
}

// Advance moves the mock time forward by the given duration.
func (m *MockTime) Advance(d time.Duration) {
	m.now = m.now.Add(d)
}

// Set sets the mock time to a specific value.
func (m *MockTime) Set(t time.Time) {
	m.now = t
}

// TempStore creates a credential file in a test temp directory and enrolls
// the given username/password pairs.
func TempStore(t *testing.T, users map[string]string) *credfile.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "secure_passwd")
	store := credfile.New(path, nil)
	for username, password := range users {
		if err := store.Append(username, password); err != nil {
			t.Fatalf("enroll %s: %v", username, err)
		}
	}
	return store
}
