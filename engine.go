package goAccount

import (
	"log"

	"github.com/draventh/goAccount/password"
)

// Engine is the account-security core. It is constructed once per process
// through [Builder.Build], holds no mutable state of its own, and is safe for
// concurrent use; the only shared state it touches lives in Redis and in the
// caller-supplied collaborators.
type Engine struct {
	config        Config
	userDirectory UserDirectory
	accessKeys    AccessKeyStore
	collaborators CollaboratorLookup
	mailer        Mailer
	loginLimiter  *loginLimiter
	registerCodes *registerCodeStore
	audit         *auditDispatcher
	metrics       *Metrics
	hasher        *password.Hasher
}

// Close flushes and stops the audit pipeline. Engine methods must not be
// called after Close.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped returns the number of audit events dropped because the
// dispatcher buffer was full.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of all counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) warnf(format string, args ...any) {
	log.Printf("goAccount: "+format, args...)
}
