package goAccount

import (
	"errors"
	"time"
)

// Config defines the tunable behavior of the [Engine]. A Config is cloned at
// [Builder.Build] time and treated as immutable afterwards.
type Config struct {
	Security     SecurityConfig
	RegisterCode RegisterCodeConfig
	Password     PasswordConfig
	AccessKey    AccessKeyConfig
	Audit        AuditConfig
	Metrics      MetricsConfig
}

/*
====================================
SECURITY CONFIG
====================================
*/

// SecurityConfig controls the login brute-force throttle.
type SecurityConfig struct {
	// MaxLoginAttempts is the failed-attempt threshold after which logins
	// are rejected until the counter expires at end of day. 0 disables
	// throttling entirely.
	MaxLoginAttempts int
}

/*
====================================
REGISTER CODE CONFIG
====================================
*/

// RegisterCodeConfig controls registration-code issuance and verification.
type RegisterCodeConfig struct {
	// TTL is the absolute lifetime of an issued code.
	TTL time.Duration
	// DecayStep is subtracted from the code's remaining TTL on every wrong
	// guess, so brute-force guessing converges toward expiry by attrition.
	DecayStep time.Duration
	// RedisPrefix namespaces code keys in the cache.
	RedisPrefix string
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig holds Argon2id parameters and the password policy.
type PasswordConfig struct {
	Memory      uint32 // in KB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
	// MinLength is the minimum accepted new-password length.
	MinLength int
	// UpgradeOnLogin transparently re-hashes a password on successful login
	// when the stored hash carries weaker parameters than the current
	// configuration.
	UpgradeOnLogin bool
}

/*
====================================
ACCESS KEY CONFIG
====================================
*/

// AccessKeyConfig controls personal access-key creation.
type AccessKeyConfig struct {
	// DefaultTTL applies when a creation request carries no TTL.
	DefaultTTL time.Duration
}

/*
====================================
AUDIT / METRICS CONFIG
====================================
*/

// AuditConfig controls the asynchronous audit pipeline.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	// DropIfFull drops events instead of blocking the request path when the
	// buffer is saturated. Dropped counts are observable via
	// [Engine.AuditDropped].
	DropIfFull bool
}

// MetricsConfig controls the in-process metrics counters.
type MetricsConfig struct {
	Enabled bool
}

func defaultConfig() Config {
	return Config{
		Security: SecurityConfig{
			MaxLoginAttempts: 10,
		},
		RegisterCode: RegisterCodeConfig{
			TTL:         20 * time.Minute,
			DecayStep:   10 * time.Second,
			RedisPrefix: "rck",
		},
		Password: PasswordConfig{
			Memory:         65536,
			Time:           3,
			Parallelism:    2,
			SaltLength:     16,
			KeyLength:      32,
			MinLength:      6,
			UpgradeOnLogin: true,
		},
		AccessKey: AccessKeyConfig{
			DefaultTTL: 30 * 24 * time.Hour,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

// Validate rejects configurations the Engine cannot honor. It is called by
// [Builder.Build] before any dependency is touched.
func (c Config) Validate() error {
	if c.Security.MaxLoginAttempts < 0 {
		return errors.New("Security.MaxLoginAttempts must be >= 0")
	}
	if c.RegisterCode.TTL <= 0 {
		return errors.New("RegisterCode.TTL must be positive")
	}
	if c.RegisterCode.DecayStep <= 0 {
		return errors.New("RegisterCode.DecayStep must be positive")
	}
	if c.RegisterCode.DecayStep >= c.RegisterCode.TTL {
		return errors.New("RegisterCode.DecayStep must be smaller than RegisterCode.TTL")
	}
	if c.RegisterCode.RedisPrefix == "" {
		return errors.New("RegisterCode.RedisPrefix must not be empty")
	}
	if c.Password.MinLength < 1 {
		return errors.New("Password.MinLength must be >= 1")
	}
	if c.AccessKey.DefaultTTL <= 0 {
		return errors.New("AccessKey.DefaultTTL must be positive")
	}
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit.BufferSize must be positive when audit is enabled")
	}
	return nil
}

func cloneConfig(cfg Config) Config {
	// All fields are value types; a shallow copy is a deep copy.
	return cfg
}
