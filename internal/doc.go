// Package internal holds coordination helpers shared by the goAccount root
// package: random token generation, the email privacy digest, and calendar
// TTL math. Nothing here is part of the public API.
package internal
