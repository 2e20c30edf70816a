package authorize

import (
	"testing"

	"github.com/google/uuid"
)

func TestIsValidDomain(t *testing.T) {
	tests := []struct {
		name     string
		domain   Domain
		expected bool
	}{
		{"sys domain", DomainSys, true},
		{"wildcard domain", WildcardDomain, true},
		{"valid store domain", Domain("store:550e8400-e29b-41d4-a716-446655440000"), true},

		{"empty domain", Domain(""), false},
		{"random string", Domain("random"), false},
		{"store without uuid", Domain("store:"), false},
		{"store with invalid uuid", Domain("store:invalid-uuid"), false},
		{"store with dashes only", Domain("store:------------------------------------"), false},
		{"unknown prefix", Domain("clinic:550e8400-e29b-41d4-a716-446655440000"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidDomain(tt.domain); got != tt.expected {
				t.Errorf("IsValidDomain(%q) = %v, want %v", tt.domain, got, tt.expected)
			}
		})
	}
}

func TestStoreDomain(t *testing.T) {
	id := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")
	if got := StoreDomain(id); got != Domain("store:550e8400-e29b-41d4-a716-446655440000") {
		t.Errorf("StoreDomain() = %q", got)
	}
}

func TestDefaultPoliciesUseKnownValues(t *testing.T) {
	for _, p := range DefaultPolicies() {
		if _, ok := KnownRoles[p.Subject]; !ok {
			t.Errorf("unknown role %q", p.Subject)
		}
		if _, ok := KnownResources[p.Object]; !ok && p.Object != WildcardResource {
			t.Errorf("unknown resource %q", p.Object)
		}
		if !IsValidDomain(p.Domain) {
			t.Errorf("invalid domain %q", p.Domain)
		}
	}
}

func TestSuperadminPrincipalIDStable(t *testing.T) {
	a := SuperadminPrincipalID("root@example.com")
	b := SuperadminPrincipalID("root@example.com")
	c := SuperadminPrincipalID("other@example.com")
	if a != b {
		t.Error("principal id is not stable")
	}
	if a == c {
		t.Error("different emails share a principal id")
	}
}
