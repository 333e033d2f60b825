package goAccount

import (
	"context"

	"github.com/draventh/goAccount/internal"
)

// ChangePassword replaces the account's password hash after verifying the old
// password, and rotates the acknowledgement code so out-of-band consumers can
// observe the rotation. Validation is fail-fast: nothing is persisted until
// every precondition has passed.
func (e *Engine) ChangePassword(ctx context.Context, accountID int64, oldPassword, newPassword string) error {
	if e == nil || e.userDirectory == nil {
		return ErrEngineNotReady
	}
	if len(newPassword) < e.config.Password.MinLength {
		e.metricInc(MetricPasswordChangeFailure)
		e.emitAudit(ctx, auditEventPasswordChangeFailure, false, accountID, "", ErrWeakPassword, nil)
		return ErrWeakPassword
	}

	user, err := e.userDirectory.FindByID(ctx, accountID)
	if err != nil {
		return err
	}
	if user == nil {
		e.metricInc(MetricPasswordChangeFailure)
		e.emitAudit(ctx, auditEventPasswordChangeFailure, false, accountID, "", ErrAccountNotFound, nil)
		return ErrAccountNotFound
	}

	ok, err := e.hasher.Verify(oldPassword, user.PasswordHash)
	if err != nil || !ok {
		e.metricInc(MetricPasswordChangeFailure)
		e.emitAudit(ctx, auditEventPasswordChangeFailure, false, user.ID, user.Email, ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"reason": "old_password_mismatch",
			}
		})
		return ErrInvalidCredentials
	}

	hash, err := e.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	ackCode, err := internal.RandToken(internal.AckCodeLength)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.AckCode = ackCode
	if err := e.userDirectory.Save(ctx, user); err != nil {
		e.emitAudit(ctx, auditEventPasswordChangeFailure, false, user.ID, user.Email, err, nil)
		return err
	}

	e.metricInc(MetricPasswordChangeSuccess)
	e.emitAudit(ctx, auditEventPasswordChangeSuccess, true, user.ID, user.Email, nil, nil)

	return nil
}
