package security

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// MaxSecureBufferSize bounds a single secure buffer acquisition.
	MaxSecureBufferSize = 1024

	// canaryValue is written at both ends of every acquisition and verified
	// on release. A mismatch means out-of-bounds writes have already
	// corrupted memory holding secret material.
	canaryValue uint32 = 0xDEADBEEF

	// wipePattern overwrites buffer contents on release so secret material
	// does not linger in freed memory.
	wipePattern byte = 0xA5

	canarySize = 4
)

// ErrBufferBounds is returned when a requested buffer size is zero, negative,
// or exceeds MaxSecureBufferSize.
var ErrBufferBounds = errors.New("secure buffer size out of bounds")

// SecureBuffer is a zero-initialized memory region for transient secret
// material such as passwords, salts, and digests. Both ends of the underlying
// allocation carry a canary value; Release verifies them and overwrites the
// contents with a fixed pattern before the region is returned to the
// allocator.
//
// On unix builds the region is locked into physical RAM (mlock) on a
// best-effort basis to keep secrets out of swap.
//
// A SecureBuffer must not be copied. Callers that acquire one must guarantee
// Release on every exit path, typically via defer.
type SecureBuffer struct {
	raw      []byte
	released bool
	locked   bool
}

// AcquireBuffer returns a zero-initialized secure buffer of exactly size
// bytes. It returns ErrBufferBounds if size is not positive or exceeds
// MaxSecureBufferSize.
func AcquireBuffer(size int) (*SecureBuffer, error) {
	if size <= 0 || size > MaxSecureBufferSize {
		return nil, fmt.Errorf("%w: %d", ErrBufferBounds, size)
	}

	raw := make([]byte, size+2*canarySize)
	binary.BigEndian.PutUint32(raw[:canarySize], canaryValue)
	binary.BigEndian.PutUint32(raw[len(raw)-canarySize:], canaryValue)

	b := &SecureBuffer{raw: raw}
	b.locked = lockMemory(raw) == nil
	return b, nil
}

// Bytes returns the usable region between the canaries.
// It panics if the buffer has already been released.
func (b *SecureBuffer) Bytes() []byte {
	if b.released {
		panic("security: use of released secure buffer")
	}
	return b.raw[canarySize : len(b.raw)-canarySize]
}

// Size returns the usable size of the buffer in bytes.
func (b *SecureBuffer) Size() int {
	return len(b.raw) - 2*canarySize
}

// Release verifies both canaries, wipes the buffer contents with a fixed
// pattern, and returns the region to the allocator. Calling Release more than
// once is a no-op.
//
// A canary mismatch is an unrecoverable corruption event: the memory-safety
// contract has already been violated and continuing risks leaking secret
// material, so Release panics instead of returning an error.
func (b *SecureBuffer) Release() {
	if b.released {
		return
	}

	start := binary.BigEndian.Uint32(b.raw[:canarySize])
	end := binary.BigEndian.Uint32(b.raw[len(b.raw)-canarySize:])
	if start != canaryValue || end != canaryValue {
		panic("security: secure buffer canary corrupted")
	}

	for i := range b.raw {
		b.raw[i] = wipePattern
	}
	if b.locked {
		unlockMemory(b.raw)
	}
	b.released = true
	b.raw = nil
}
