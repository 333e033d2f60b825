package internal

import (
	"crypto/md5"
	"crypto/rand"
	"encoding/hex"
	"time"
)

const (
	// RegisterCodeLength is the hex length of an issued registration code:
	// 40 hex characters carry 160 bits of entropy.
	RegisterCodeLength = 40
	// IdentifierTokenLength is the hex length of the per-account opaque
	// secret generated at registration.
	IdentifierTokenLength = 9
	// AckCodeLength is the hex length of the acknowledgement code rotated
	// on password change.
	AckCodeLength = 5
)

// RandToken returns n hex characters drawn from crypto/rand.
func RandToken(n int) (string, error) {
	if n <= 0 {
		n = 1
	}

	raw := make([]byte, (n+1)/2)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	return hex.EncodeToString(raw)[:n], nil
}

// EmailDigest returns the hex MD5 digest of an email address. Registration
// codes are keyed by this digest so the raw address never appears in cache
// keys. It is a privacy digest, not a credential hash.
func EmailDigest(email string) string {
	sum := md5.Sum([]byte(email))
	return hex.EncodeToString(sum[:])
}

// UntilEndOfDay returns the duration from now until the end of the current
// calendar day in now's location, floored at one second so a counter created
// at 23:59:59 still gets a usable TTL.
func UntilEndOfDay(now time.Time) time.Duration {
	year, month, day := now.Date()
	endOfDay := time.Date(year, month, day, 23, 59, 59, 0, now.Location())

	d := endOfDay.Sub(now)
	if d < time.Second {
		return time.Second
	}
	return d
}
