//go:build !unix

package security

import "errors"

func lockMemory(b []byte) error {
	return errors.New("memory locking not supported on this platform")
}

func unlockMemory(b []byte) {}
