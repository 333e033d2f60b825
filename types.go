package goAccount

import "context"

// OwnerRole is the distinguished collaborator role checked by [Engine.OwnerCan].
// Role comparison is exact tag equality; there is no role hierarchy.
const OwnerRole = "Owner"

// Account is the user record exchanged with the [UserDirectory]. The
// directory owns the record; the Engine only reads it and requests mutation
// through [UserDirectory.Save].
type Account struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	// AckCode is an opaque acknowledgement code rotated on every password
	// change so that out-of-band consumers can detect credential rotation.
	AckCode string
	// IdentifierToken is a per-account opaque secret generated at
	// registration, distinct from the password, used elsewhere for
	// non-auth purposes such as update-channel signing.
	IdentifierToken string
}

// AccessKeyRecord is a personal access token as stored by the
// [AccessKeyStore]. Records are immutable once created; timestamps are
// absolute epoch milliseconds so expiry checks never depend on wall-clock
// drift from creation time.
type AccessKeyRecord struct {
	ID          string
	AccountID   int64
	Token       string
	Name        string
	CreatedBy   string
	Description string
	CreatedAt   int64
	ExpiresAt   int64
}

// AccessKeySummary is the redacted listing shape returned by
// [Engine.ListAccessKeys]. The raw token value is never included.
type AccessKeySummary struct {
	Token        string
	FriendlyName string
	Description  string
	CreatedBy    string
	CreatedTime  int64
	Expires      int64
}

// CollaboratorRole associates an account with a named application.
type CollaboratorRole struct {
	AccountID int64
	AppName   string
	Role      string
}

// UserDirectory is the account record store. "Not found" is a normal empty
// result: lookups return (nil, nil) when no account matches. A non-nil error
// means the directory itself failed.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByUsername(ctx context.Context, username string) (*Account, error)
	FindByID(ctx context.Context, id int64) (*Account, error)
	Create(ctx context.Context, account *Account) (*Account, error)
	Save(ctx context.Context, account *Account) error
}

// AccessKeyStore persists personal access tokens. ListByAccount returns
// records most recent first (creation order descending). FindByAccountAndName
// returns (nil, nil) when the name is unused. Create does not enforce name
// uniqueness; the Engine performs the existence pre-check.
type AccessKeyStore interface {
	ListByAccount(ctx context.Context, accountID int64) ([]AccessKeyRecord, error)
	FindByAccountAndName(ctx context.Context, accountID int64, name string) (*AccessKeyRecord, error)
	Create(ctx context.Context, record *AccessKeyRecord) (*AccessKeyRecord, error)
}

// CollaboratorLookup resolves an account's role on a named application.
// Returns (nil, nil) when no association exists.
type CollaboratorLookup interface {
	FindByAppAndAccount(ctx context.Context, appName string, accountID int64) (*CollaboratorRole, error)
}

// Mailer is the out-of-band delivery channel for registration codes. Delivery
// failure is surfaced, not retried; retry policy belongs to the channel
// implementation.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
