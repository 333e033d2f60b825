package goAccount

import (
	"context"
	"net/mail"
)

// Login resolves the account by email when the identifier parses as an email
// address, otherwise by username, and verifies the password against the
// stored hash. An unknown account and a wrong password both fail with
// [ErrInvalidCredentials] so the response never leaks account existence.
//
// When throttling is enabled, a locked account fails with [ErrAccountLocked]
// before the hash is ever touched, and every password mismatch records one
// throttle failure. Throttle reads and writes fail open: if Redis is
// unreachable the decision falls back to the password check alone, because
// login availability must not depend on the cache's liveness.
func (e *Engine) Login(ctx context.Context, account, passwd string) (*Account, error) {
	if e == nil || e.userDirectory == nil {
		return nil, ErrEngineNotReady
	}
	if account == "" || passwd == "" {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, 0, "", ErrMissingField, func() map[string]string {
			return map[string]string{
				"reason": "empty_field",
			}
		})
		return nil, ErrMissingField
	}

	var (
		user *Account
		err  error
	)
	if isEmailAddress(account) {
		user, err = e.userDirectory.FindByEmail(ctx, account)
	} else {
		user, err = e.userDirectory.FindByUsername(ctx, account)
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, 0, "", ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"identifier": account,
				"reason":     "account_not_found",
			}
		})
		return nil, ErrInvalidCredentials
	}

	locked, err := e.loginLimiter.IsLocked(ctx, user.ID)
	if err != nil {
		e.warnf("login limiter check failed, failing open: %v", err)
		locked = false
	}
	if locked {
		e.metricInc(MetricLoginLocked)
		e.emitAudit(ctx, auditEventLoginLocked, false, user.ID, user.Email, ErrAccountLocked, nil)
		return nil, ErrAccountLocked
	}

	ok, err := e.hasher.Verify(passwd, user.PasswordHash)
	if err != nil || !ok {
		if rerr := e.loginLimiter.RecordFailure(ctx, user.ID); rerr != nil {
			e.warnf("login failure not recorded: %v", rerr)
		}
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, user.ID, user.Email, ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"reason": "password_mismatch",
			}
		})
		return nil, ErrInvalidCredentials
	}

	if e.config.Password.UpgradeOnLogin {
		e.upgradePasswordHash(ctx, user, passwd)
	}

	e.metricInc(MetricLoginSuccess)
	e.emitAudit(ctx, auditEventLoginSuccess, true, user.ID, user.Email, nil, nil)

	return user, nil
}

// upgradePasswordHash transparently re-hashes the password when the stored
// hash carries weaker parameters than the current configuration. Failures
// only warn: the login already succeeded.
func (e *Engine) upgradePasswordHash(ctx context.Context, user *Account, passwd string) {
	needs, err := e.hasher.NeedsUpgrade(user.PasswordHash)
	if err != nil || !needs {
		return
	}

	upgraded, err := e.hasher.Hash(passwd)
	if err != nil {
		e.warnf("password hash upgrade generation failed")
		return
	}

	user.PasswordHash = upgraded
	if err := e.userDirectory.Save(ctx, user); err != nil {
		e.warnf("password hash upgrade save failed")
	}
}

// isEmailAddress is the syntactic check that picks the email lookup variant
// over the username one. The address must stand alone, with no display name.
func isEmailAddress(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
