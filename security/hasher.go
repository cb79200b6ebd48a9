package security

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
)

// DigestSize is the size of a password digest in bytes (SHA-256 output).
const DigestSize = sha256.Size

// HashPassword computes the deterministic salted digest SHA-256(salt ||
// password). It is a pure function used for both enrollment and comparison.
//
// The salt and password are concatenated inside a SecureBuffer so the
// combined secret is wiped as soon as the digest has been computed. The error
// return is reserved for primitive failures; well-formed inputs never fail.
func HashPassword(password, salt []byte) ([DigestSize]byte, error) {
	var digest [DigestSize]byte

	buf, err := AcquireBuffer(len(salt) + len(password))
	if err != nil {
		return digest, fmt.Errorf("hash input buffer: %w", err)
	}
	defer buf.Release()

	scratch := buf.Bytes()
	copy(scratch, salt)
	copy(scratch[len(salt):], password)

	digest = sha256.Sum256(scratch)
	return digest, nil
}

// ConstantTimeEqual reports whether a and b are equal without short-circuiting
// on the first differing byte. Unequal lengths return false immediately;
// lengths are fixed by the record format and are not secret.
func ConstantTimeEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
