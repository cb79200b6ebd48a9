// Package engine implements the core credential validation logic.
//
// The Engine type is an explicit handle: construct it with New, use it from
// any number of goroutines, and Close it when done. It composes the attempt
// limiter, the credential store, and the salted hasher to answer "is this
// credential valid":
//
//	limiter admit -> store lookup -> recompute digest -> constant-time compare
//
// Throttling short-circuits before any store or cryptographic work, and a
// missing user is indistinguishable from a wrong password in both result code
// and code path, so callers cannot be used as a username oracle.
//
// Example usage:
//
//	eng, err := engine.New(&engine.Config{StorePath: "/etc/secure_passwd"}, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close()
//
//	if err := eng.Validate(ctx, "alice", password); err != nil {
//	    // errors.Is(err, engine.ErrRateLimited), engine.ErrAuthFailed, ...
//	}
package engine
