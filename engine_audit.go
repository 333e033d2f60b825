package goAccount

import (
	"context"
	"errors"
	"time"
)

const (
	auditEventLoginSuccess          = "login_success"
	auditEventLoginFailure          = "login_failure"
	auditEventLoginLocked           = "login_locked"
	auditEventRegisterCodeSent      = "register_code_sent"
	auditEventRegisterCodeVerified  = "register_code_verified"
	auditEventRegisterCodeRejected  = "register_code_rejected"
	auditEventRegisterSuccess       = "register_success"
	auditEventRegisterDuplicate     = "register_duplicate"
	auditEventPasswordChangeSuccess = "password_change_success"
	auditEventPasswordChangeFailure = "password_change_failure"
	auditEventAccessKeyCreated      = "access_key_created"
	auditEventAccessKeyDuplicate    = "access_key_duplicate"
	auditEventCollaboratorDenied    = "collaborator_denied"
)

// AuditErrorCode is the stable error tag recorded on audit events.
type AuditErrorCode string

const (
	auditErrMissingField       AuditErrorCode = "missing_field"
	auditErrInvalidCredentials AuditErrorCode = "invalid_credentials"
	auditErrAccountLocked      AuditErrorCode = "account_locked"
	auditErrAlreadyRegistered  AuditErrorCode = "already_registered"
	auditErrCodeExpired        AuditErrorCode = "code_expired"
	auditErrCodeIncorrect      AuditErrorCode = "code_incorrect"
	auditErrWeakPassword       AuditErrorCode = "weak_password"
	auditErrAccountNotFound    AuditErrorCode = "account_not_found"
	auditErrAppNotFound        AuditErrorCode = "app_not_found"
	auditErrPermissionDenied   AuditErrorCode = "permission_denied"
	auditErrDuplicateKeyName   AuditErrorCode = "access_key_name_exists"
	auditErrMailDelivery       AuditErrorCode = "mail_delivery_failed"
	auditErrUnavailable        AuditErrorCode = "backend_unavailable"
	auditErrInternal           AuditErrorCode = "internal_error"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	accountID int64,
	email string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		AccountID: accountID,
		Email:     email,
		IP:        clientIPFromContext(ctx),
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrMissingField):
		return auditErrMissingField
	case errors.Is(err, ErrInvalidCredentials):
		return auditErrInvalidCredentials
	case errors.Is(err, ErrAccountLocked):
		return auditErrAccountLocked
	case errors.Is(err, ErrAlreadyRegistered):
		return auditErrAlreadyRegistered
	case errors.Is(err, ErrCodeExpired):
		return auditErrCodeExpired
	case errors.Is(err, ErrCodeIncorrect):
		return auditErrCodeIncorrect
	case errors.Is(err, ErrWeakPassword):
		return auditErrWeakPassword
	case errors.Is(err, ErrAccountNotFound):
		return auditErrAccountNotFound
	case errors.Is(err, ErrAppNotFound):
		return auditErrAppNotFound
	case errors.Is(err, ErrPermissionDenied):
		return auditErrPermissionDenied
	case errors.Is(err, ErrAccessKeyNameExists):
		return auditErrDuplicateKeyName
	case errors.Is(err, ErrMailDelivery):
		return auditErrMailDelivery
	case errors.Is(err, ErrRegisterCodeUnavailable),
		errors.Is(err, errLoginLimiterUnavailable):
		return auditErrUnavailable
	default:
		return auditErrInternal
	}
}
