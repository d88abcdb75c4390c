// Package tenantscope applies the tenant isolation predicate to data
// access: every read of a tenant-scoped table gets a tenant_id equality
// constraint, and every new row gets its tenant_id stamped from the current
// binding.
//
// The injection point is an explicit decorator over query building rather
// than a hook hidden inside an ORM, so it can be tested in isolation:
//
//	scope := tenantscope.NewFilter()
//
//	conds := []string{"created_at > $1"}
//	args := []any{since}
//	conds, args = scope.Scope(ctx, conds, args)
//	// WHERE created_at > $1 AND tenant_id = $2
//
// Creation stamps the discriminator the same way:
//
//	if err := scope.Stamp(ctx, &doc.TenantID); err != nil { ... }
//
// Cross-tenant administrative reads opt out by name:
//
//	rows, err := store.List(tenantscope.WithoutIsolation(ctx))
package tenantscope
