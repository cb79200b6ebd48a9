package engine

// Result codes returned across the public boundary. Callers receive only
// these coarse-grained codes; raw system error text never leaves the engine.
const (
	ErrorCodeMissingInput       = "missing_input"
	ErrorCodeInvalidInput       = "invalid_input"
	ErrorCodeStoreUnavailable   = "store_unavailable"
	ErrorCodeCryptoFailure      = "crypto_failure"
	ErrorCodeBufferOverflow     = "buffer_overflow"
	ErrorCodeAuthFailed         = "auth_failed"
	ErrorCodeRateLimited        = "rate_limited"
	ErrorCodeMemory             = "memory_allocation_failed"
	ErrorCodeSecurityCheck      = "security_check_failed"
	ErrorCodeNotInitialized     = "not_initialized"
	ErrorCodeAlreadyInitialized = "already_initialized"
)

// AuthError is a result code with a fixed human-readable description.
type AuthError struct {
	Code        string // Result code (e.g., "auth_failed", "rate_limited")
	Description string // Human-readable error description
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return e.Code + ": " + e.Description
}

// Is reports whether target carries the same result code, so errors.Is works
// against the sentinel instances below.
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	return ok && t.Code == e.Code
}

// NewAuthError creates a new AuthError.
func NewAuthError(code, description string) *AuthError {
	return &AuthError{Code: code, Description: description}
}

// Sentinel instances for each result code. Engine operations return these
// directly; the fixed descriptions guarantee no internal state leaks through
// error text.
var (
	// ErrMissingInput indicates a required input was empty
	ErrMissingInput = NewAuthError(ErrorCodeMissingInput, "required input missing")

	// ErrInvalidInput indicates a length or charset violation
	ErrInvalidInput = NewAuthError(ErrorCodeInvalidInput, "invalid input")

	// ErrStoreUnavailable indicates the credential store could not be read
	ErrStoreUnavailable = NewAuthError(ErrorCodeStoreUnavailable, "credential store unavailable")

	// ErrCryptoFailure indicates the hashing primitive failed
	ErrCryptoFailure = NewAuthError(ErrorCodeCryptoFailure, "cryptographic operation failed")

	// ErrBufferOverflow indicates an input exceeded its declared bound
	ErrBufferOverflow = NewAuthError(ErrorCodeBufferOverflow, "buffer overflow detected")

	// ErrAuthFailed covers both "no such user" and "wrong password";
	// the distinction is deliberately not observable
	ErrAuthFailed = NewAuthError(ErrorCodeAuthFailed, "authentication failed")

	// ErrRateLimited indicates the identity has exhausted its attempt budget
	ErrRateLimited = NewAuthError(ErrorCodeRateLimited, "rate limit exceeded")

	// ErrMemory indicates a secure buffer could not be acquired
	ErrMemory = NewAuthError(ErrorCodeMemory, "memory allocation error")

	// ErrSecurityCheck indicates a runtime security check failed
	ErrSecurityCheck = NewAuthError(ErrorCodeSecurityCheck, "security check failed")

	// ErrNotInitialized indicates use of a closed or uninitialized engine
	ErrNotInitialized = NewAuthError(ErrorCodeNotInitialized, "engine not initialized")

	// ErrAlreadyInitialized indicates a duplicate initialization attempt
	ErrAlreadyInitialized = NewAuthError(ErrorCodeAlreadyInitialized, "engine already initialized")
)

// Description returns the fixed description for a result code, or "unknown
// error" for an unrecognized code.
func Description(code string) string {
	switch code {
	case ErrorCodeMissingInput:
		return ErrMissingInput.Description
	case ErrorCodeInvalidInput:
		return ErrInvalidInput.Description
	case ErrorCodeStoreUnavailable:
		return ErrStoreUnavailable.Description
	case ErrorCodeCryptoFailure:
		return ErrCryptoFailure.Description
	case ErrorCodeBufferOverflow:
		return ErrBufferOverflow.Description
	case ErrorCodeAuthFailed:
		return ErrAuthFailed.Description
	case ErrorCodeRateLimited:
		return ErrRateLimited.Description
	case ErrorCodeMemory:
		return ErrMemory.Description
	case ErrorCodeSecurityCheck:
		return ErrSecurityCheck.Description
	case ErrorCodeNotInitialized:
		return ErrNotInitialized.Description
	case ErrorCodeAlreadyInitialized:
		return ErrAlreadyInitialized.Description
	default:
		return "unknown error"
	}
}
