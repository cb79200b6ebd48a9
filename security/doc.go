// Package security provides the security primitives for credential
// validation: salted password hashing, constant-time comparison, per-identity
// attempt limiting, audit logging, and canary-guarded buffers for transient
// secret material.
package security
