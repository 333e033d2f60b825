package goAccount

import (
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/draventh/goAccount/password"
)

// Builder assembles an [Engine]. Configure it during initialization, call
// [Builder.Build] exactly once, and share the resulting Engine by handle —
// there are no package-level singletons.
type Builder struct {
	config Config
	redis  *redis.Client

	userDirectory UserDirectory
	accessKeys    AccessKeyStore
	collaborators CollaboratorLookup
	mailer        Mailer
	auditSink     AuditSink

	built bool
}

// New returns a Builder seeded with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the entire configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis sets the cache client backing the login throttle and
// registration-code store. Required.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithUserDirectory sets the account record store. Required.
func (b *Builder) WithUserDirectory(dir UserDirectory) *Builder {
	b.userDirectory = dir
	return b
}

// WithAccessKeyStore sets the personal access-key store. Optional; access-key
// operations fail with [ErrEngineNotReady] when absent.
func (b *Builder) WithAccessKeyStore(store AccessKeyStore) *Builder {
	b.accessKeys = store
	return b
}

// WithCollaboratorLookup sets the collaborator-role resolver. Optional;
// collaborator checks fail with [ErrEngineNotReady] when absent.
func (b *Builder) WithCollaboratorLookup(lookup CollaboratorLookup) *Builder {
	b.collaborators = lookup
	return b
}

// WithMailer sets the registration-code delivery channel. Optional; when
// absent, sends resolve to a silent no-op, matching an unconfigured SMTP
// transport.
func (b *Builder) WithMailer(m Mailer) *Builder {
	b.mailer = m
	return b
}

// WithAuditSink sets the destination for audit events. Only consulted when
// Audit.Enabled is set.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration and dependencies and returns the Engine.
// A Builder can build at most once.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if b.redis == nil {
		return nil, errors.New("redis client required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if b.userDirectory == nil {
		return nil, errors.New("user directory required")
	}

	hasher, err := password.NewHasher(password.Params{
		Memory:      cfg.Password.Memory,
		Time:        cfg.Password.Time,
		Parallelism: cfg.Password.Parallelism,
		SaltLength:  cfg.Password.SaltLength,
		KeyLength:   cfg.Password.KeyLength,
	})
	if err != nil {
		return nil, err
	}

	mailer := b.mailer
	if mailer == nil {
		mailer = noopMailer{}
	}

	engine := &Engine{
		config:        cfg,
		userDirectory: b.userDirectory,
		accessKeys:    b.accessKeys,
		collaborators: b.collaborators,
		mailer:        mailer,
		loginLimiter:  newLoginLimiter(b.redis, cfg.Security),
		registerCodes: newRegisterCodeStore(b.redis, cfg.RegisterCode),
		audit:         newAuditDispatcher(cfg.Audit, b.auditSink),
		metrics:       NewMetrics(cfg.Metrics),
		hasher:        hasher,
	}

	b.built = true

	return engine, nil
}
