// Package storage defines interfaces for credential record persistence.
// It supports various backend implementations; the canonical line-oriented
// credential file backend lives in the credfile subpackage.
package storage

import "errors"

const (
	// SaltSize is the fixed per-record salt length in bytes.
	SaltSize = 32

	// HashSize is the fixed digest length in bytes (SHA-256 output).
	HashSize = 32
)

var (
	// ErrNotFound indicates no well-formed record exists for the username.
	ErrNotFound = errors.New("credential record not found")

	// ErrUnavailable indicates the backing store could not be opened or read.
	ErrUnavailable = errors.New("credential store unavailable")
)

// Record is a single parsed credential record. Salt and hash lengths are
// fixed for every record; a Record is immutable once parsed and is discarded
// after a single validation attempt.
type Record struct {
	Username string
	Salt     [SaltSize]byte
	Hash     [HashSize]byte
}

// CredentialStore defines the interface for looking up credential records.
// This allows using file-backed, in-memory, or other storage backends.
type CredentialStore interface {
	// Lookup returns the record for the given username.
	// It returns ErrNotFound if no well-formed record matches and
	// ErrUnavailable if the store cannot be read. The username must already
	// be sanitized by the caller; Lookup does not re-validate the charset.
	Lookup(username string) (*Record, error)
}
