package authorize

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
)

// DefaultPolicies is the baseline RBAC: platform superadmins get
// everything in sys, store owners get every store resource in any store
// domain they hold the owner role in.
func DefaultPolicies() []PermissionPolicy {
	policies := []PermissionPolicy{
		{RolePlatformSuperAdmin, DomainSys, WildcardResource, WildcardAction, EffectAllow},
	}
	for _, r := range storeResources {
		policies = append(policies, PermissionPolicy{RoleStoreOwner, WildcardDomain, r, WildcardAction, EffectAllow})
	}
	return policies
}

// SeedDefaultPolicies installs DefaultPolicies. Existing rows are kept.
func SeedDefaultPolicies(ctx context.Context, auth IAuthorization) error {
	policies := DefaultPolicies()
	for _, p := range policies {
		added, err := auth.AddPermission(ctx, p.Subject, p.Domain, p.Object, p.Action, p.Effect)
		if err != nil {
			slog.Error("failed to add policy", "policy", p, "error", err)
			return err
		}
		if added {
			slog.Debug("added policy", "role", p.Subject, "domain", p.Domain, "resource", p.Object, "action", p.Action)
		}
	}

	slog.Info("seeded default RBAC policies", "count", len(policies))
	return nil
}

// AssignStoreOwner grants adminID the owner role in storeID's domain.
func AssignStoreOwner(ctx context.Context, auth IAuthorization, adminID, storeID uuid.UUID) error {
	_, err := auth.AddRoleForUserInDomain(ctx, SubjectOf(adminID), RoleStoreOwner, StoreDomain(storeID))
	return err
}

// RevokeStoreOwner drops adminID's owner role in storeID's domain.
func RevokeStoreOwner(ctx context.Context, auth IAuthorization, adminID, storeID uuid.UUID) error {
	_, err := auth.RemoveRoleForUserInDomain(ctx, SubjectOf(adminID), RoleStoreOwner, StoreDomain(storeID))
	return err
}

// MoveStoreOwner moves adminID's owner role from one store to another.
// The new role is granted before the old one is dropped; if the drop fails
// the new grant is withdrawn so the admin keeps exactly the old role.
func MoveStoreOwner(ctx context.Context, auth IAuthorization, adminID, from, to uuid.UUID) error {
	if err := AssignStoreOwner(ctx, auth, adminID, to); err != nil {
		return err
	}
	if err := RevokeStoreOwner(ctx, auth, adminID, from); err != nil {
		if rerr := RevokeStoreOwner(ctx, auth, adminID, to); rerr != nil {
			return errors.Join(err, rerr)
		}
		return err
	}
	return nil
}

// AssignPlatformSuperAdmin grants the platform superadmin role.
func AssignPlatformSuperAdmin(ctx context.Context, auth IAuthorization, principalID uuid.UUID) error {
	_, err := auth.AddRoleForUserInDomain(ctx, SubjectOf(principalID), RolePlatformSuperAdmin, DomainSys)
	return err
}

// SuperadminPrincipalID derives a stable principal id for the configured
// superadmin account, which has no database row.
func SuperadminPrincipalID(email string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("melbooking:superadmin:"+email))
}
