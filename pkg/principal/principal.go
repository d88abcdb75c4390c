package principal

import (
	"github.com/google/uuid"
)

// Role is an enumerated role name. The set is closed: resolution logic keys
// off these constants and never compares free-form strings.
type Role string

const (
	// RoleMember is a regular user confined to their home tenant.
	RoleMember Role = "member"
	// RoleAdmin administers a single tenant.
	RoleAdmin Role = "admin"
	// RoleSuperadmin may cross tenant boundaries and activate the
	// session-level tenant override.
	RoleSuperadmin Role = "superadmin"
)

// RoleSet is the set of roles assigned to a principal.
type RoleSet map[Role]struct{}

// NewRoleSet builds a set from the given roles.
func NewRoleSet(roles ...Role) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

// Has reports whether the set contains the role.
func (s RoleSet) Has(r Role) bool {
	_, ok := s[r]
	return ok
}

// Principal is the already-authenticated actor of the current unit of work.
// TenantID is the home tenant; nil for accounts not attached to any tenant
// (e.g. platform operators).
type Principal struct {
	ID       uuid.UUID
	TenantID *int64
	Roles    RoleSet
}

// Option configures a principal during construction.
type Option func(*Principal)

// WithHomeTenant assigns the principal's home tenant.
func WithHomeTenant(id int64) Option {
	return func(p *Principal) {
		p.TenantID = &id
	}
}

// WithRoles adds roles to the principal.
func WithRoles(roles ...Role) Option {
	return func(p *Principal) {
		for _, r := range roles {
			p.Roles[r] = struct{}{}
		}
	}
}

// New creates a principal. Without options the principal has no home tenant
// and no roles.
func New(id uuid.UUID, opts ...Option) *Principal {
	p := &Principal{ID: id, Roles: make(RoleSet)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// HasRole reports whether the principal holds the role.
func (p *Principal) HasRole(r Role) bool {
	if p == nil {
		return false
	}
	return p.Roles.Has(r)
}

// IsSuperadmin reports whether the principal may cross tenant boundaries.
func (p *Principal) IsSuperadmin() bool {
	return p.HasRole(RoleSuperadmin)
}

// HomeTenantID returns the principal's home tenant id, if any.
func (p *Principal) HomeTenantID() (int64, bool) {
	if p == nil || p.TenantID == nil {
		return 0, false
	}
	return *p.TenantID, true
}
