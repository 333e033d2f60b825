package goAccount

import "context"

// CollaboratorCan resolves the account's role on the named application.
// Fails with [ErrAppNotFound] when no association exists. Pure authorization
// gate, no mutation.
func (e *Engine) CollaboratorCan(ctx context.Context, accountID int64, appName string) (*CollaboratorRole, error) {
	if e == nil || e.collaborators == nil {
		return nil, ErrEngineNotReady
	}

	role, err := e.collaborators.FindByAppAndAccount(ctx, appName, accountID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		e.emitAudit(ctx, auditEventCollaboratorDenied, false, accountID, "", ErrAppNotFound, func() map[string]string {
			return map[string]string{
				"app": appName,
			}
		})
		return nil, ErrAppNotFound
	}

	return role, nil
}

// OwnerCan is [Engine.CollaboratorCan] plus an exact-tag check that the
// resolved role is [OwnerRole].
func (e *Engine) OwnerCan(ctx context.Context, accountID int64, appName string) (*CollaboratorRole, error) {
	role, err := e.CollaboratorCan(ctx, accountID, appName)
	if err != nil {
		return nil, err
	}

	if role.Role != OwnerRole {
		e.metricInc(MetricCollaboratorDenied)
		e.emitAudit(ctx, auditEventCollaboratorDenied, false, accountID, "", ErrPermissionDenied, func() map[string]string {
			return map[string]string{
				"app":  appName,
				"role": role.Role,
			}
		})
		return nil, ErrPermissionDenied
	}

	return role, nil
}
