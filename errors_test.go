package authfile

import (
	"errors"
	"testing"
)

func TestErrorDescription(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{ErrorCodeAuthFailed, "authentication failed"},
		{ErrorCodeRateLimited, "rate limit exceeded"},
		{ErrorCodeInvalidInput, "invalid input"},
		{ErrorCodeStoreUnavailable, "credential store unavailable"},
		{ErrorCodeNotInitialized, "engine not initialized"},
		{"no_such_code", "unknown error"},
	}

	for _, tt := range tests {
		if got := ErrorDescription(tt.code); got != tt.want {
			t.Errorf("ErrorDescription(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestSentinelErrorMatching(t *testing.T) {
	var authErr *AuthError
	if !errors.As(ErrAuthFailed, &authErr) {
		t.Fatal("sentinel should be an *AuthError")
	}
	if authErr.Code != ErrorCodeAuthFailed {
		t.Errorf("Code = %q, want %q", authErr.Code, ErrorCodeAuthFailed)
	}

	// Sentinels with different codes do not match each other.
	if errors.Is(ErrAuthFailed, ErrRateLimited) {
		t.Error("distinct result codes must not match")
	}
	if !errors.Is(ErrAuthFailed, ErrAuthFailed) {
		t.Error("a sentinel must match itself")
	}
}
