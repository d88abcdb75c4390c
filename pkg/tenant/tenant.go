package tenant

import (
	"context"
	"time"
)

// Tenant is an isolated customer organization owning a disjoint slice of
// data. Identifiers are stable and never reused; deactivation is a soft flag
// because rows referencing the tenant outlive its subscription.
type Tenant struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Slug      string         `json:"slug"`
	Active    bool           `json:"active"`
	Settings  map[string]any `json:"settings,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Provider loads tenants from a data source. These two point lookups are the
// only queries the resolution core ever performs.
type Provider interface {
	// ByID retrieves a tenant by numeric id regardless of its active flag.
	// Returns ErrTenantNotFound when no tenant matches.
	ByID(ctx context.Context, id int64) (*Tenant, error)

	// ActiveBySlug retrieves an active tenant by its unique slug.
	// Returns ErrTenantNotFound when no active tenant matches.
	ActiveBySlug(ctx context.Context, slug string) (*Tenant, error)
}

// SessionData is the minimal session surface consumed by the superadmin
// override strategy. Session storage itself lives outside this package.
type SessionData interface {
	GetString(key string) (string, bool)
}
