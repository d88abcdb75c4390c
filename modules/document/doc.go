// Package document is a tenant-scoped document module: a thin business
// service and JSON API over a Storage that enforces row-level tenant
// isolation through the tenantscope filter.
//
// The module demonstrates the layering the rest of the application follows:
// handlers never mention tenants, the service opts out of isolation only in
// the one place that needs to (the superadmin cross-tenant listing), and the
// storage stamps and filters the tenant_id column on every operation.
package document
