package authorize

import (
	"context"
	"log/slog"
	"time"

	casbin "github.com/casbin/casbin/v2"

	"github.com/melbooking/melbooking_backend/pkg/reqctx"
)

// AuditedAuthorization logs every decision and every policy change made
// through inner. Denials log at warn so cross-store attempts stand out.
type AuditedAuthorization struct {
	inner  IAuthorization
	logger *slog.Logger
}

func NewAuditedAuthorization(inner IAuthorization, logger *slog.Logger) IAuthorization {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditedAuthorization{inner: inner, logger: logger.With("component", "authz")}
}

func (a *AuditedAuthorization) Enforce(ctx context.Context, subject GroupSubject, domain Domain, object Resource, action Action) (bool, error) {
	start := time.Now()
	allowed, err := a.inner.Enforce(ctx, subject, domain, object, action)

	attrs := []any{
		"request_id", reqctx.RequestIDFromContext(ctx),
		"subject", subject,
		"domain", domain,
		"resource", object,
		"action", action,
		"allowed", allowed,
		"took", time.Since(start),
	}
	if storeID, ok := reqctx.StoreScope(ctx); ok {
		attrs = append(attrs, "store_id", storeID)
	}

	switch {
	case err != nil:
		a.logger.ErrorContext(ctx, "authz_decision", append(attrs, "error", err)...)
	case allowed:
		a.logger.DebugContext(ctx, "authz_decision", attrs...)
	default:
		a.logger.WarnContext(ctx, "authz_decision", attrs...)
	}
	return allowed, err
}

func (a *AuditedAuthorization) MustEnforce(ctx context.Context, subject GroupSubject, domain Domain, object Resource, action Action) error {
	return mustEnforce(ctx, a, subject, domain, object, action)
}

// logChange records a policy mutation; changed is the casbin "rows
// affected" flag.
func (a *AuditedAuthorization) logChange(ctx context.Context, msg, op string, changed bool, err error, attrs ...any) {
	attrs = append([]any{"operation", op, "changed", changed}, attrs...)
	if err != nil {
		a.logger.ErrorContext(ctx, msg, append(attrs, "error", err)...)
		return
	}
	a.logger.InfoContext(ctx, msg, attrs...)
}

func (a *AuditedAuthorization) AddRoleForUserInDomain(ctx context.Context, subject GroupSubject, role Role, domain Domain) (bool, error) {
	added, err := a.inner.AddRoleForUserInDomain(ctx, subject, role, domain)
	a.logChange(ctx, "authz_role_change", "add_role", added, err, "subject", subject, "role", role, "domain", domain)
	return added, err
}

func (a *AuditedAuthorization) RemoveRoleForUserInDomain(ctx context.Context, subject GroupSubject, role Role, domain Domain) (bool, error) {
	removed, err := a.inner.RemoveRoleForUserInDomain(ctx, subject, role, domain)
	a.logChange(ctx, "authz_role_change", "remove_role", removed, err, "subject", subject, "role", role, "domain", domain)
	return removed, err
}

func (a *AuditedAuthorization) GetRolesForUserInDomain(ctx context.Context, subject GroupSubject, domain Domain) ([]Role, error) {
	return a.inner.GetRolesForUserInDomain(ctx, subject, domain)
}

func (a *AuditedAuthorization) AddPermission(ctx context.Context, role Role, domain Domain, object Resource, action Action, effect PolicyEffect) (bool, error) {
	added, err := a.inner.AddPermission(ctx, role, domain, object, action, effect)
	a.logChange(ctx, "authz_permission_change", "add_permission", added, err,
		"role", role, "domain", domain, "resource", object, "action", action, "effect", effect)
	return added, err
}

func (a *AuditedAuthorization) RemovePermission(ctx context.Context, role Role, domain Domain, object Resource, action Action, effect PolicyEffect) (bool, error) {
	removed, err := a.inner.RemovePermission(ctx, role, domain, object, action, effect)
	a.logChange(ctx, "authz_permission_change", "remove_permission", removed, err,
		"role", role, "domain", domain, "resource", object, "action", action, "effect", effect)
	return removed, err
}

func (a *AuditedAuthorization) RemoveSubject(ctx context.Context, subject GroupSubject) (bool, error) {
	removed, err := a.inner.RemoveSubject(ctx, subject)
	a.logChange(ctx, "authz_role_change", "remove_subject", removed, err, "subject", subject)
	return removed, err
}

func (a *AuditedAuthorization) Raw() *casbin.DistributedEnforcer {
	return a.inner.Raw()
}
