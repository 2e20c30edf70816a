package authorize

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

type Action string
type Resource string
type Role string
type Domain string

const (
	ActionCreate  Action = "create"
	ActionRead    Action = "read"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionList    Action = "list"
	ActionArchive Action = "archive"
	ActionExport  Action = "export"

	WildcardAction Action = "*"
)

var KnownActions = map[Action]struct{}{
	ActionCreate: {}, ActionRead: {}, ActionUpdate: {}, ActionDelete: {}, ActionList: {},
	ActionArchive: {}, ActionExport: {},
}

const (
	WildcardResource Resource = "*"

	// Platform
	ResourceStore      Resource = "store"
	ResourceStoreAdmin Resource = "store_admin"

	// Store scoped
	ResourceStoreHours      Resource = "store_hours"
	ResourceServiceType     Resource = "service_type"
	ResourceTherapist       Resource = "therapist"
	ResourceTherapistHours  Resource = "therapist_hours"
	ResourceBooking         Resource = "booking"
	ResourceArchivedBooking Resource = "archived_booking"
	ResourceCalendar        Resource = "calendar"
	ResourceReport          Resource = "report"
)

var KnownResources = map[Resource]struct{}{
	ResourceStore: {}, ResourceStoreAdmin: {},
	ResourceStoreHours: {}, ResourceServiceType: {}, ResourceTherapist: {}, ResourceTherapistHours: {},
	ResourceBooking: {}, ResourceArchivedBooking: {}, ResourceCalendar: {}, ResourceReport: {},
}

// storeResources are everything a store owner manages inside its own domain.
var storeResources = []Resource{
	ResourceStoreHours, ResourceServiceType, ResourceTherapist, ResourceTherapistHours,
	ResourceBooking, ResourceArchivedBooking, ResourceCalendar, ResourceReport,
}

const (
	WildcardRole Role = "*"

	// domain = sys
	RolePlatformSuperAdmin Role = "role:platform:superadmin"

	// domain = store:<uuid>
	RoleStoreOwner Role = "role:store:owner"
)

var KnownRoles = map[Role]struct{}{
	RolePlatformSuperAdmin: {},
	RoleStoreOwner:         {},
}

// Admin role strings stored in admins.role.
const (
	AdminRoleOwner = "owner"
)

var AdminRoleToRBACRole = map[string]Role{
	AdminRoleOwner: RoleStoreOwner,
}

const (
	DomainSys         Domain = "sys"
	DomainPrefixStore Domain = "store:"
	WildcardDomain    Domain = "*"
)

var reUUID = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// StoreDomain is the tenant domain of one store.
func StoreDomain(storeID uuid.UUID) Domain {
	return DomainPrefixStore + Domain(storeID.String())
}

// IsValidDomain checks whether d is a recognised domain string.
func IsValidDomain(d Domain) bool {
	if d == DomainSys || d == WildcardDomain {
		return true
	}
	rest, ok := strings.CutPrefix(string(d), string(DomainPrefixStore))
	return ok && reUUID.MatchString(rest)
}

type PolicyEffect string

const (
	EffectAllow PolicyEffect = "allow"
	EffectDeny  PolicyEffect = "deny"
)

// GroupSubject is the g.sub in Casbin: a concrete principal id.
type GroupSubject string

// SubjectOf returns the casbin subject for a principal id.
func SubjectOf(id uuid.UUID) GroupSubject {
	return GroupSubject(id.String())
}

// PermissionPolicy is one row: p, role, domain, resource, action, eft
type PermissionPolicy struct {
	Subject Role
	Domain  Domain
	Object  Resource
	Action  Action
	Effect  PolicyEffect
}
