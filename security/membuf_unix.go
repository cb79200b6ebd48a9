//go:build unix

package security

import "golang.org/x/sys/unix"

// lockMemory pins the region into physical RAM so secret material cannot be
// swapped to disk. Failure (e.g. RLIMIT_MEMLOCK exhausted) is tolerated; the
// canary and wipe guarantees do not depend on it.
func lockMemory(b []byte) error {
	return unix.Mlock(b)
}

func unlockMemory(b []byte) {
	_ = unix.Munlock(b)
}
