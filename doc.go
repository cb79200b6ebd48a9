// Package authfile validates username/password pairs against a file-backed
// credential store using salted SHA-256 hashing, with per-identity attempt
// limiting and hardened handling of in-memory secret material.
//
// The engine subpackage exposes the explicit Engine handle; this package adds
// result-code plumbing and a process-wide default engine for callers that
// want the classic initialize/validate/cleanup surface:
//
//	if err := authfile.Initialize(&authfile.Config{StorePath: "/etc/secure_passwd"}); err != nil {
//	    log.Fatal(err)
//	}
//	defer authfile.Cleanup()
//
//	switch err := authfile.Validate("alice", password); {
//	case err == nil:
//	    // authenticated
//	case errors.Is(err, authfile.ErrRateLimited):
//	    // identity throttled
//	default:
//	    // authentication failed; no-such-user and wrong-password are
//	    // deliberately indistinguishable
//	}
//
// The credential store is a text file with one record per line,
// "username:salt-hex:hash-hex", scanned fresh on every validation so secret
// material never lingers in a cache.
package authfile
