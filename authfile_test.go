package authfile

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/giantswarm/authfile/storage/credfile"
)

func testConfig(t *testing.T, users map[string]string) *Config {
	t.Helper()

	path := filepath.Join(t.TempDir(), "secure_passwd")
	store := credfile.New(path, nil)
	for username, password := range users {
		if err := store.Append(username, password); err != nil {
			t.Fatalf("enroll %s: %v", username, err)
		}
	}
	return &Config{
		StorePath:      path,
		MaxAttempts:    3,
		ThrottleWindow: time.Minute,
	}
}

func TestDefaultEngineLifecycle(t *testing.T) {
	// Operations before Initialize fail closed.
	if err := Validate("alice", "hunter2"); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Validate() before Initialize error = %v, want ErrNotInitialized", err)
	}
	if err := ProcessInput("x", 10); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("ProcessInput() before Initialize error = %v, want ErrNotInitialized", err)
	}
	if err := HandleFile("/dev/null"); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("HandleFile() before Initialize error = %v, want ErrNotInitialized", err)
	}

	if err := Initialize(testConfig(t, map[string]string{"alice": "hunter2"})); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	defer Cleanup()

	// Re-initialization is rejected without touching the active engine.
	if err := Initialize(nil); !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("second Initialize() error = %v, want ErrAlreadyInitialized", err)
	}

	if err := Validate("alice", "hunter2"); err != nil {
		t.Errorf("Validate() error = %v, want success", err)
	}
	if err := Validate("alice", "wrong"); !errors.Is(err, ErrAuthFailed) {
		t.Errorf("Validate(wrong password) error = %v, want ErrAuthFailed", err)
	}
	if err := ProcessInput("hello", 10); err != nil {
		t.Errorf("ProcessInput() error = %v, want success", err)
	}

	// Cleanup is idempotent and returns the package to the uninitialized
	// state.
	Cleanup()
	Cleanup()

	if err := Validate("alice", "hunter2"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Validate() after Cleanup error = %v, want ErrNotInitialized", err)
	}

	// A fresh Initialize works after Cleanup.
	if err := Initialize(testConfig(t, map[string]string{"bob": "pw"})); err != nil {
		t.Fatalf("Initialize() after Cleanup error = %v", err)
	}
	if err := Validate("bob", "pw"); err != nil {
		t.Errorf("Validate() after re-initialization error = %v, want success", err)
	}
}

func TestVersion(t *testing.T) {
	if Version() != "2.0.0" {
		t.Errorf("Version() = %q, want 2.0.0", Version())
	}
}
