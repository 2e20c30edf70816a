package authorize

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	casbin "github.com/casbin/casbin/v2"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
	"github.com/google/uuid"
)

// createTestEnforcer builds an enforcer on the shipped model with an
// empty file-backed policy.
func createTestEnforcer(t *testing.T) *casbin.DistributedEnforcer {
	t.Helper()

	policyPath := filepath.Join(t.TempDir(), "policy.csv")
	if err := os.WriteFile(policyPath, []byte(""), 0o644); err != nil {
		t.Fatalf("failed to write policy file: %v", err)
	}

	e, err := casbin.NewDistributedEnforcer(filepath.Join("..", "..", "casbin_model.conf"), fileadapter.NewAdapter(policyPath))
	if err != nil {
		t.Fatalf("failed to create enforcer: %v", err)
	}
	e.EnableAutoSave(false)
	e.EnableEnforce(true)
	return e
}

func seededAuth(t *testing.T) IAuthorization {
	t.Helper()
	auth, err := NewAuthorization(createTestEnforcer(t))
	if err != nil {
		t.Fatalf("NewAuthorization() error = %v", err)
	}
	if err := SeedDefaultPolicies(context.Background(), auth); err != nil {
		t.Fatalf("SeedDefaultPolicies() error = %v", err)
	}
	return auth
}

func TestNewAuthorizationNilEnforcer(t *testing.T) {
	if _, err := NewAuthorization(nil); !errors.Is(err, ErrInvalidArgs) {
		t.Errorf("NewAuthorization(nil) error = %v, want ErrInvalidArgs", err)
	}
}

func TestStoreOwnerIsolation(t *testing.T) {
	auth := seededAuth(t)
	ctx := context.Background()

	owner := uuid.New()
	storeA := uuid.New()
	storeB := uuid.New()
	if err := AssignStoreOwner(ctx, auth, owner, storeA); err != nil {
		t.Fatalf("AssignStoreOwner() error = %v", err)
	}

	tests := []struct {
		name     string
		domain   Domain
		resource Resource
		action   Action
		want     bool
	}{
		{"own store bookings", StoreDomain(storeA), ResourceBooking, ActionCreate, true},
		{"own store reports", StoreDomain(storeA), ResourceReport, ActionExport, true},
		{"own store calendar", StoreDomain(storeA), ResourceCalendar, ActionRead, true},
		{"other store bookings", StoreDomain(storeB), ResourceBooking, ActionRead, false},
		{"platform stores", DomainSys, ResourceStore, ActionCreate, false},
		{"store admins in own store", StoreDomain(storeA), ResourceStoreAdmin, ActionCreate, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := auth.Enforce(ctx, SubjectOf(owner), tt.domain, tt.resource, tt.action)
			if err != nil {
				t.Fatalf("Enforce() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Enforce() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnforceArgumentErrors(t *testing.T) {
	auth := seededAuth(t)
	ctx := context.Background()
	subject := SubjectOf(uuid.New())
	domain := StoreDomain(uuid.New())

	tests := []struct {
		name     string
		subject  GroupSubject
		domain   Domain
		resource Resource
		action   Action
	}{
		{"empty subject", "", domain, ResourceBooking, ActionRead},
		{"invalid domain", subject, Domain("store:nope"), ResourceBooking, ActionRead},
		{"unknown resource", subject, domain, Resource("patient"), ActionRead},
		{"unknown action", subject, domain, ResourceBooking, Action("approve")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := auth.Enforce(ctx, tt.subject, tt.domain, tt.resource, tt.action); !errors.Is(err, ErrInvalidArgs) {
				t.Errorf("Enforce() error = %v, want ErrInvalidArgs", err)
			}
		})
	}
}

func TestSuperAdminBypass(t *testing.T) {
	auth := seededAuth(t)
	ctx := context.Background()

	principal := SuperadminPrincipalID("root@melbooking.test")
	if err := AssignPlatformSuperAdmin(ctx, auth, principal); err != nil {
		t.Fatalf("AssignPlatformSuperAdmin() error = %v", err)
	}

	for _, d := range []Domain{DomainSys, StoreDomain(uuid.New())} {
		if err := auth.MustEnforce(ctx, SubjectOf(principal), d, ResourceBooking, ActionDelete); err != nil {
			t.Errorf("MustEnforce(%s) error = %v", d, err)
		}
	}
}

func TestMoveStoreOwner(t *testing.T) {
	auth := seededAuth(t)
	ctx := context.Background()

	admin := uuid.New()
	from := uuid.New()
	to := uuid.New()

	if err := AssignStoreOwner(ctx, auth, admin, from); err != nil {
		t.Fatalf("AssignStoreOwner() error = %v", err)
	}
	if err := MoveStoreOwner(ctx, auth, admin, from, to); err != nil {
		t.Fatalf("MoveStoreOwner() error = %v", err)
	}

	if err := auth.MustEnforce(ctx, SubjectOf(admin), StoreDomain(from), ResourceBooking, ActionRead); !errors.Is(err, ErrForbidden) {
		t.Errorf("old store: error = %v, want ErrForbidden", err)
	}
	if err := auth.MustEnforce(ctx, SubjectOf(admin), StoreDomain(to), ResourceBooking, ActionRead); err != nil {
		t.Errorf("new store: error = %v", err)
	}

	roles, err := auth.GetRolesForUserInDomain(ctx, SubjectOf(admin), StoreDomain(to))
	if err != nil || len(roles) != 1 || roles[0] != RoleStoreOwner {
		t.Errorf("GetRolesForUserInDomain() = %v, %v", roles, err)
	}
}

func TestRemoveSubject(t *testing.T) {
	auth := seededAuth(t)
	ctx := context.Background()

	admin := uuid.New()
	store := uuid.New()
	if err := AssignStoreOwner(ctx, auth, admin, store); err != nil {
		t.Fatalf("AssignStoreOwner() error = %v", err)
	}

	removed, err := auth.RemoveSubject(ctx, SubjectOf(admin))
	if err != nil || !removed {
		t.Fatalf("RemoveSubject() = %v, %v", removed, err)
	}
	if ok, _ := auth.Enforce(ctx, SubjectOf(admin), StoreDomain(store), ResourceBooking, ActionRead); ok {
		t.Error("removed admin still allowed")
	}
}

func TestAddPermissionValidation(t *testing.T) {
	auth, _ := NewAuthorization(createTestEnforcer(t))
	ctx := context.Background()

	if _, err := auth.AddPermission(ctx, RoleStoreOwner, WildcardDomain, ResourceBooking, ActionRead, PolicyEffect("maybe")); err == nil {
		t.Error("expected error for invalid effect")
	}
	if _, err := auth.AddPermission(ctx, Role("role:store:cleaner"), WildcardDomain, ResourceBooking, ActionRead, EffectAllow); err == nil {
		t.Error("expected error for unknown role")
	}
}
