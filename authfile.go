package authfile

import (
	"context"
	"sync"

	"github.com/giantswarm/authfile/engine"
)

// Config is the engine configuration, re-exported for convenience.
type Config = engine.Config

// version follows the original secure authentication system versioning.
const version = "2.0.0"

var (
	defaultMu     sync.Mutex
	defaultEngine *engine.Engine
)

// Initialize sets up the process-wide default engine. It must be called
// before the other package-level operations. A nil config selects defaults
// for every field.
//
// Initializing while already initialized returns ErrAlreadyInitialized
// without touching the existing engine. If Initialize fails, no default
// engine exists and only a fresh Initialize can repair that.
func Initialize(config *Config) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultEngine != nil {
		return ErrAlreadyInitialized
	}

	eng, err := engine.New(config, nil)
	if err != nil {
		return err
	}
	defaultEngine = eng
	return nil
}

// Cleanup tears down the default engine, wiping the attempt-limit table.
// It is a no-op when not initialized; repeated calls are safe.
func Cleanup() {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultEngine == nil {
		return
	}
	_ = defaultEngine.Close()
	defaultEngine = nil
}

// current returns the default engine, or nil before Initialize/after Cleanup.
func current() *engine.Engine {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultEngine
}

// Validate checks a username/password pair against the default engine's
// credential store. See engine.Engine.Validate for the result contract.
func Validate(username, password string) error {
	eng := current()
	if eng == nil {
		return ErrNotInitialized
	}
	return eng.Validate(context.Background(), username, password)
}

// ProcessInput bounds-checks an input string against maxLength, staging it
// through a secure buffer. It returns ErrBufferOverflow when
// len(input) >= maxLength.
func ProcessInput(input string, maxLength int) error {
	eng := current()
	if eng == nil {
		return ErrNotInitialized
	}
	return eng.ProcessInput(input, maxLength)
}

// HandleFile reads up to a fixed-size secure buffer from the file at path and
// reports success or failure only.
func HandleFile(path string) error {
	eng := current()
	if eng == nil {
		return ErrNotInitialized
	}
	return eng.HandleFile(path)
}

// Version returns the library version in MAJOR.MINOR.PATCH form.
func Version() string {
	return version
}
