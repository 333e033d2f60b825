package goAccount

import (
	"context"
	"errors"
	"fmt"

	"github.com/draventh/goAccount/internal"
)

// SendRegisterCode issues a fresh registration code for email and hands it to
// the mail channel for out-of-band delivery. The code is never returned to
// the caller. Fails with [ErrAlreadyRegistered] when an account already
// exists for the address.
func (e *Engine) SendRegisterCode(ctx context.Context, email string) error {
	if e == nil || e.userDirectory == nil {
		return ErrEngineNotReady
	}
	if email == "" {
		return ErrMissingField
	}

	if err := e.requireUnregistered(ctx, email); err != nil {
		return err
	}

	code, err := e.registerCodes.Issue(ctx, email)
	if err != nil {
		e.emitAudit(ctx, auditEventRegisterCodeSent, false, 0, email, err, nil)
		return err
	}

	body := registerCodeMailBody(code, e.config.RegisterCode.TTL)
	if err := e.mailer.Send(ctx, email, registerCodeMailSubject, body); err != nil {
		e.metricInc(MetricMailSendFailure)
		e.emitAudit(ctx, auditEventRegisterCodeSent, false, 0, email, ErrMailDelivery, nil)
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}

	e.metricInc(MetricRegisterCodeSent)
	e.emitAudit(ctx, auditEventRegisterCodeSent, true, 0, email, nil, nil)

	return nil
}

// CheckRegisterCode verifies a candidate registration code and returns the
// stored code on success. The already-registered pre-check is repeated here
// because registration may have completed between send and check.
func (e *Engine) CheckRegisterCode(ctx context.Context, email, code string) (string, error) {
	if e == nil || e.userDirectory == nil {
		return "", ErrEngineNotReady
	}
	if email == "" || code == "" {
		return "", ErrMissingField
	}

	if err := e.requireUnregistered(ctx, email); err != nil {
		return "", err
	}

	stored, err := e.registerCodes.Verify(ctx, email, code)
	if err != nil {
		switch {
		case errors.Is(err, ErrCodeIncorrect):
			e.metricInc(MetricRegisterCodeIncorrect)
		case errors.Is(err, ErrCodeExpired):
			e.metricInc(MetricRegisterCodeExpired)
		}
		e.emitAudit(ctx, auditEventRegisterCodeRejected, false, 0, email, err, nil)
		return "", err
	}

	e.metricInc(MetricRegisterCodeVerified)
	e.emitAudit(ctx, auditEventRegisterCodeVerified, true, 0, email, nil, nil)

	return stored, nil
}

// Register hashes the password and creates the account with a freshly
// generated identifier token. Fails with [ErrAlreadyRegistered] when the
// email is taken; the directory still holds at most one account per email
// afterwards.
func (e *Engine) Register(ctx context.Context, email, passwd string) (*Account, error) {
	if e == nil || e.userDirectory == nil {
		return nil, ErrEngineNotReady
	}
	if email == "" || passwd == "" {
		return nil, ErrMissingField
	}

	if err := e.requireUnregistered(ctx, email); err != nil {
		return nil, err
	}

	hash, err := e.hasher.Hash(passwd)
	if err != nil {
		return nil, err
	}

	identifierToken, err := internal.RandToken(internal.IdentifierTokenLength)
	if err != nil {
		return nil, err
	}

	created, err := e.userDirectory.Create(ctx, &Account{
		Email:           email,
		PasswordHash:    hash,
		IdentifierToken: identifierToken,
	})
	if err != nil {
		e.emitAudit(ctx, auditEventRegisterSuccess, false, 0, email, err, nil)
		return nil, err
	}

	e.metricInc(MetricRegisterSuccess)
	e.emitAudit(ctx, auditEventRegisterSuccess, true, created.ID, email, nil, nil)

	return created, nil
}

func (e *Engine) requireUnregistered(ctx context.Context, email string) error {
	existing, err := e.userDirectory.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		e.metricInc(MetricRegisterDuplicate)
		e.emitAudit(ctx, auditEventRegisterDuplicate, false, existing.ID, email, ErrAlreadyRegistered, nil)
		return ErrAlreadyRegistered
	}
	return nil
}
