// Package credfile implements the file-backed credential store.
//
// The store is a text file with one record per line:
//
//	<username>:<salt-hex>:<hash-hex>\n
//
// where salt-hex and hash-hex are lowercase hexadecimal encodings of the
// fixed-width salt and digest. Lines that do not match this shape for the
// looked-up username are treated as absent, never surfaced as parse errors.
package credfile

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/giantswarm/authfile/security"
	"github.com/giantswarm/authfile/storage"
)

// maxLineSize bounds a single record line during scanning.
const maxLineSize = 4096

// Store reads credential records from a line-oriented file.
//
// Every Lookup re-opens and re-scans the file. Nothing is cached across
// calls: the trade is throughput for minimizing how long secret-bearing file
// content stays resident in memory. This is deliberate policy, not an
// oversight.
type Store struct {
	path   string
	logger *slog.Logger
}

// New creates a store backed by the credential file at path. The file is not
// opened until the first Lookup.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Lookup scans the file for the first line whose username field matches
// exactly and returns its parsed record.
//
// First match wins: a malformed matching line yields storage.ErrNotFound
// without trying later duplicate entries, so a corrupt first record masks a
// valid later one. It returns storage.ErrUnavailable if the file cannot be
// opened or read.
func (s *Store) Lookup(username string) (*storage.Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		s.logger.Error("credential store open failed", "path", s.path, "error", err)
		return nil, fmt.Errorf("%w: %s", storage.ErrUnavailable, s.path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, maxLineSize), maxLineSize)

	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")

		name, rest, ok := strings.Cut(line, ":")
		if !ok || name != username {
			continue
		}

		rec, perr := parseRecord(name, rest)
		if perr != nil {
			s.logger.Warn("malformed credential record", "error", perr)
			return nil, storage.ErrNotFound
		}
		return rec, nil
	}
	if err := scanner.Err(); err != nil {
		s.logger.Error("credential store read failed", "path", s.path, "error", err)
		return nil, fmt.Errorf("%w: %s", storage.ErrUnavailable, s.path)
	}

	return nil, storage.ErrNotFound
}

// parseRecord decodes the salt and hash fields of a matching line.
func parseRecord(username, fields string) (*storage.Record, error) {
	saltHex, hashHex, ok := strings.Cut(fields, ":")
	if !ok {
		return nil, fmt.Errorf("missing hash field")
	}
	if strings.Contains(hashHex, ":") {
		return nil, fmt.Errorf("too many fields")
	}
	if len(saltHex) != 2*storage.SaltSize {
		return nil, fmt.Errorf("salt field has %d characters, want %d", len(saltHex), 2*storage.SaltSize)
	}
	if len(hashHex) != 2*storage.HashSize {
		return nil, fmt.Errorf("hash field has %d characters, want %d", len(hashHex), 2*storage.HashSize)
	}
	if !isLowerHex(saltHex) || !isLowerHex(hashHex) {
		return nil, fmt.Errorf("fields must be lowercase hexadecimal")
	}

	rec := &storage.Record{Username: username}
	if _, err := hex.Decode(rec.Salt[:], []byte(saltHex)); err != nil {
		return nil, fmt.Errorf("salt field: %w", err)
	}
	if _, err := hex.Decode(rec.Hash[:], []byte(hashHex)); err != nil {
		return nil, fmt.Errorf("hash field: %w", err)
	}
	return rec, nil
}

// isLowerHex reports whether s consists only of lowercase hex digits.
// hex.Decode accepts uppercase, but the wire format does not.
func isLowerHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// FormatRecord renders a record as a store line, without the trailing
// newline.
func FormatRecord(rec *storage.Record) string {
	return fmt.Sprintf("%s:%s:%s",
		rec.Username,
		hex.EncodeToString(rec.Salt[:]),
		hex.EncodeToString(rec.Hash[:]))
}

// Append enrolls a credential: it generates a random salt, hashes the
// password with it, and appends the record line to the store file, creating
// the file with mode 0600 if needed. It is intended for provisioning tools
// and test fixtures; the validation engine itself never writes the store.
func (s *Store) Append(username, password string) error {
	var rec storage.Record
	rec.Username = username

	if _, err := rand.Read(rec.Salt[:]); err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}

	digest, err := security.HashPassword([]byte(password), rec.Salt[:])
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	rec.Hash = digest

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("%w: %s", storage.ErrUnavailable, s.path)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, FormatRecord(&rec)); err != nil {
		return fmt.Errorf("%w: %s", storage.ErrUnavailable, s.path)
	}
	return nil
}
