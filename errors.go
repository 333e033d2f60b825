package goAccount

import "errors"

var (
	// ErrMissingField indicates a required request field was empty.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidCredentials covers both an unknown account and a wrong
	// password. The two cases are deliberately indistinguishable so that
	// login responses do not leak account existence.
	ErrInvalidCredentials = errors.New("the email or password you entered is incorrect")
	// ErrAccountLocked indicates the failed-login threshold was exceeded.
	ErrAccountLocked = errors.New("account locked after too many failed login attempts")
	// ErrAlreadyRegistered indicates an account already exists for the email.
	ErrAlreadyRegistered = errors.New("email already registered")
	// ErrCodeExpired indicates the registration code is absent or timed out.
	ErrCodeExpired = errors.New("verification code has expired")
	// ErrCodeIncorrect indicates the supplied registration code did not match.
	ErrCodeIncorrect = errors.New("verification code is incorrect")
	// ErrWeakPassword indicates the new password fails the length policy.
	ErrWeakPassword = errors.New("password does not meet the minimum length")
	// ErrAccountNotFound indicates no account exists for the given id.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAppNotFound indicates no collaborator association exists for the app.
	ErrAppNotFound = errors.New("app not found")
	// ErrPermissionDenied indicates the resolved collaborator role is not Owner.
	ErrPermissionDenied = errors.New("permission denied, owner role required")
	// ErrAccessKeyNameExists indicates the (account, name) pair is taken.
	ErrAccessKeyNameExists = errors.New("access key name already exists")
	// ErrRegisterCodeUnavailable indicates the code backend was unreachable
	// while issuing a registration code.
	ErrRegisterCodeUnavailable = errors.New("register code backend unavailable")
	// ErrMailDelivery indicates the mail channel failed to accept the message.
	ErrMailDelivery = errors.New("mail delivery failed")
	// ErrEngineNotReady indicates a required collaborator was not configured.
	ErrEngineNotReady = errors.New("engine not initialized")
)
