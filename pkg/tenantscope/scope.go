package tenantscope

import (
	"context"
	"errors"
	"fmt"

	"github.com/civicboard/tenantkit/pkg/tenant"
)

// DefaultColumn is the tenant discriminator column carried by every
// tenant-scoped table.
const DefaultColumn = "tenant_id"

// ErrNoTenant is returned by Stamp when no tenant can be determined for a
// new row.
var ErrNoTenant = errors.New("tenantscope: no tenant bound")

// Fallback derives a tenant id when the binding holds none, covering code
// paths that create rows before the initializer has run (console scripts,
// seeds).
type Fallback func(ctx context.Context) (int64, bool)

// Filter injects tenant equality constraints into queries and stamps new
// rows. It is the single choke point between the resolved tenant and the
// data layer: storage code composes its WHERE clauses through Scope and its
// inserts through Stamp, and isolation follows.
type Filter struct {
	column   string
	fallback Fallback
}

// Option configures a Filter.
type Option func(*Filter)

// WithColumn overrides the discriminator column name.
// Panics on an empty name: a filter without a column is a programming error
// and must fail construction, not silently scope nothing.
func WithColumn(column string) Option {
	if column == "" {
		panic("tenantscope: column cannot be empty")
	}
	return func(f *Filter) { f.column = column }
}

// WithFallback sets the tenant source used by Stamp when nothing is bound.
func WithFallback(fn Fallback) Option {
	return func(f *Filter) { f.fallback = fn }
}

// NewFilter creates a filter on the default tenant_id column.
func NewFilter(opts ...Option) Filter {
	f := Filter{column: DefaultColumn}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// Column returns the discriminator column name.
func (f Filter) Column() string {
	return f.column
}

// TenantID returns the tenant id the filter would scope to: the bound
// tenant, unless the escape hatch disabled isolation for this context.
func (f Filter) TenantID(ctx context.Context) (int64, bool) {
	if Bypassed(ctx) {
		return 0, false
	}
	return tenant.CurrentTenantID(ctx)
}

// Scope appends the tenant equality constraint to a WHERE clause under
// construction. Placeholders are numbered from the current argument count,
// so call it after all caller-supplied conditions are in place.
//
// With no bound tenant the query is left unscoped. Normal request paths
// always have a binding by the time data access runs; an unscoped query is
// the trusted-administrative case, not an accident waiting on a nil check.
func (f Filter) Scope(ctx context.Context, conds []string, args []any) ([]string, []any) {
	id, ok := f.TenantID(ctx)
	if !ok {
		return conds, args
	}
	conds = append(conds, fmt.Sprintf("%s = $%d", f.column, len(args)+1))
	args = append(args, id)
	return conds, args
}

// Stamp fills an unset tenant id on a row about to be persisted. An id set
// explicitly by the caller is left untouched. Resolution order: the bound
// tenant, then the configured fallback. Returns ErrNoTenant when neither
// yields a tenant.
func (f Filter) Stamp(ctx context.Context, tenantID *int64) error {
	if tenantID == nil {
		return fmt.Errorf("tenantscope: nil tenant id pointer")
	}
	if *tenantID != 0 {
		return nil
	}
	if id, ok := tenant.CurrentTenantID(ctx); ok {
		*tenantID = id
		return nil
	}
	if f.fallback != nil {
		if id, ok := f.fallback(ctx); ok {
			*tenantID = id
			return nil
		}
	}
	return ErrNoTenant
}
