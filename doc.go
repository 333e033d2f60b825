// Package goAccount provides the account-security core for a multi-user
// application server: credential login with brute-force lockout, time-boxed
// registration code issuance and verification with TTL decay on wrong
// guesses, password-change validation, personal access-key lifecycle, and
// collaborator ownership checks.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// goAccount is the public surface. It exposes [Engine], [Builder], [Config],
// value types, and the collaborator interfaces ([UserDirectory],
// [AccessKeyStore], [CollaboratorLookup], [Mailer]) that callers implement
// against their own persistence and delivery layers. Volatile state — lockout
// counters and registration codes — lives in Redis and nowhere else; the
// Engine itself is stateless.
//
// # What this package must NOT do
//
//   - Own persistent account or access-key storage; directories and stores
//     are supplied by the caller.
//   - Issue sessions or tokens for request authentication.
//   - Retry mail delivery; a failed send is surfaced to the caller.
//
// # Failure model
//
// Every operation fails fast with a classified sentinel error on the first
// violated precondition. Redis outages degrade the login path to a plain
// password check (lockout is a soft control); on the registration-code path
// they are fatal to that single operation.
package goAccount
