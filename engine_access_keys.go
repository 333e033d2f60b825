package goAccount

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// redactedToken replaces the raw token value in listings.
const redactedToken = "(hidden)"

// ListAccessKeys returns the account's personal access keys, most recent
// first. The raw token value is redacted; only metadata is exposed.
func (e *Engine) ListAccessKeys(ctx context.Context, accountID int64) ([]AccessKeySummary, error) {
	if e == nil || e.accessKeys == nil {
		return nil, ErrEngineNotReady
	}

	records, err := e.accessKeys.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	summaries := make([]AccessKeySummary, 0, len(records))
	for _, r := range records {
		summaries = append(summaries, AccessKeySummary{
			Token:        redactedToken,
			FriendlyName: r.Name,
			Description:  r.Description,
			CreatedBy:    r.CreatedBy,
			CreatedTime:  r.CreatedAt,
			Expires:      r.ExpiresAt,
		})
	}

	return summaries, nil
}

// AccessKeyNameExists reports whether the account already has a key with the
// given friendly name.
func (e *Engine) AccessKeyNameExists(ctx context.Context, accountID int64, name string) (bool, error) {
	if e == nil || e.accessKeys == nil {
		return false, ErrEngineNotReady
	}

	existing, err := e.accessKeys.FindByAccountAndName(ctx, accountID, name)
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}

// CreateAccessKey stores a new personal access key. The requested TTL is
// converted to an absolute expiry at creation time; a non-positive TTL falls
// back to the configured default. The (account, name) existence check and the
// create are separate store calls, so two racing creations with the same name
// can both pass the check — a store backed by a database should carry a
// unique index on that pair.
func (e *Engine) CreateAccessKey(
	ctx context.Context,
	accountID int64,
	token string,
	ttl time.Duration,
	name, createdBy, description string,
) (*AccessKeyRecord, error) {
	if e == nil || e.accessKeys == nil {
		return nil, ErrEngineNotReady
	}
	if token == "" || name == "" {
		return nil, ErrMissingField
	}
	if ttl <= 0 {
		ttl = e.config.AccessKey.DefaultTTL
	}

	exists, err := e.AccessKeyNameExists(ctx, accountID, name)
	if err != nil {
		return nil, err
	}
	if exists {
		e.metricInc(MetricAccessKeyDuplicate)
		e.emitAudit(ctx, auditEventAccessKeyDuplicate, false, accountID, "", ErrAccessKeyNameExists, func() map[string]string {
			return map[string]string{
				"name": name,
			}
		})
		return nil, ErrAccessKeyNameExists
	}

	now := time.Now()
	created, err := e.accessKeys.Create(ctx, &AccessKeyRecord{
		ID:          uuid.NewString(),
		AccountID:   accountID,
		Token:       token,
		Name:        name,
		CreatedBy:   createdBy,
		Description: description,
		CreatedAt:   now.UnixMilli(),
		ExpiresAt:   now.Add(ttl).UnixMilli(),
	})
	if err != nil {
		return nil, err
	}

	e.metricInc(MetricAccessKeyCreated)
	e.emitAudit(ctx, auditEventAccessKeyCreated, true, accountID, "", nil, func() map[string]string {
		return map[string]string{
			"name": name,
		}
	})

	return created, nil
}
