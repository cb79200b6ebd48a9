package authfile

import "github.com/giantswarm/authfile/engine"

// AuthError is the result-code error type returned by every operation.
type AuthError = engine.AuthError

// Result codes, re-exported from the engine package.
const (
	ErrorCodeMissingInput       = engine.ErrorCodeMissingInput
	ErrorCodeInvalidInput       = engine.ErrorCodeInvalidInput
	ErrorCodeStoreUnavailable   = engine.ErrorCodeStoreUnavailable
	ErrorCodeCryptoFailure      = engine.ErrorCodeCryptoFailure
	ErrorCodeBufferOverflow     = engine.ErrorCodeBufferOverflow
	ErrorCodeAuthFailed         = engine.ErrorCodeAuthFailed
	ErrorCodeRateLimited        = engine.ErrorCodeRateLimited
	ErrorCodeMemory             = engine.ErrorCodeMemory
	ErrorCodeSecurityCheck      = engine.ErrorCodeSecurityCheck
	ErrorCodeNotInitialized     = engine.ErrorCodeNotInitialized
	ErrorCodeAlreadyInitialized = engine.ErrorCodeAlreadyInitialized
)

// Sentinel errors, re-exported for errors.Is checks at the top level.
var (
	ErrMissingInput       = engine.ErrMissingInput
	ErrInvalidInput       = engine.ErrInvalidInput
	ErrStoreUnavailable   = engine.ErrStoreUnavailable
	ErrCryptoFailure      = engine.ErrCryptoFailure
	ErrBufferOverflow     = engine.ErrBufferOverflow
	ErrAuthFailed         = engine.ErrAuthFailed
	ErrRateLimited        = engine.ErrRateLimited
	ErrMemory             = engine.ErrMemory
	ErrSecurityCheck      = engine.ErrSecurityCheck
	ErrNotInitialized     = engine.ErrNotInitialized
	ErrAlreadyInitialized = engine.ErrAlreadyInitialized
)

// ErrorDescription returns the fixed human-readable description for a result
// code.
func ErrorDescription(code string) string {
	return engine.Description(code)
}
