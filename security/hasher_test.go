package security

import (
	"bytes"
	"testing"
)

func TestHashPassword_Deterministic(t *testing.T) {
	password := []byte("correct horse battery staple")
	salt := bytes.Repeat([]byte{0x42}, 32)

	d1, err := HashPassword(password, salt)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	d2, err := HashPassword(password, salt)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if d1 != d2 {
		t.Error("identical inputs must yield identical digests")
	}
}

func TestHashPassword_InputSensitivity(t *testing.T) {
	password := []byte("correct horse battery staple")
	salt := bytes.Repeat([]byte{0x42}, 32)

	base, err := HashPassword(password, salt)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	// Flipping a single password byte changes the digest.
	altered := bytes.Clone(password)
	altered[0] ^= 0x01
	d, err := HashPassword(altered, salt)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if d == base {
		t.Error("changing a password byte must change the digest")
	}

	// Flipping a single salt byte changes the digest.
	alteredSalt := bytes.Clone(salt)
	alteredSalt[31] ^= 0x01
	d, err = HashPassword(password, alteredSalt)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if d == base {
		t.Error("changing a salt byte must change the digest")
	}
}

func TestHashPassword_EmptyPassword(t *testing.T) {
	salt := bytes.Repeat([]byte{0x42}, 32)

	if _, err := HashPassword(nil, salt); err != nil {
		t.Errorf("HashPassword(empty) error = %v, empty passwords are well-formed", err)
	}
}

func TestConstantTimeEqual(t *testing.T) {
	a := bytes.Repeat([]byte{0xAB}, 32)

	tests := []struct {
		name string
		b    func() []byte
		want bool
	}{
		{"equal", func() []byte { return bytes.Clone(a) }, true},
		{"first byte differs", func() []byte {
			b := bytes.Clone(a)
			b[0] ^= 0xFF
			return b
		}, false},
		{"last byte differs", func() []byte {
			b := bytes.Clone(a)
			b[31] ^= 0xFF
			return b
		}, false},
		{"different length", func() []byte { return a[:31] }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConstantTimeEqual(a, tt.b()); got != tt.want {
				t.Errorf("ConstantTimeEqual() = %v, want %v", got, tt.want)
			}
		})
	}
}
