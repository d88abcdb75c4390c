// Package tenant implements single-database multi-tenancy: resolving which
// tenant a request belongs to and holding that decision for the lifetime of
// the unit of work.
//
// # Architecture
//
// Three cooperating pieces:
//
//  1. Strategies — ordered resolution attempts (subdomain, session override,
//     principal home tenant, header, query override) combined with Chain.
//     First match wins and the order is part of the contract.
//  2. Binding — the per-unit-of-work tenant holder. Every request gets a
//     fresh binding that resolves exactly once, to a tenant or explicitly to
//     none, and is cleared on every exit path. Reused workers therefore can
//     never leak a previous request's tenant.
//  3. Middleware — runs detection once per request and populates the
//     binding before any tenant-scoped data access happens.
//
// # Usage
//
//	provider := tenant.NewPGProvider(pool)
//
//	r := chi.NewRouter()
//	r.Use(tenant.Middleware(provider,
//	    tenant.WithReserved("example"), // the app's own root label
//	    tenant.WithEnvironment(env),
//	    tenant.WithCacheTTL(5*time.Minute),
//	))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    id, ok := tenant.CurrentTenantID(r.Context())
//	    ...
//	}
//
// # Precedence
//
// Subdomain beats everything so an operator visiting a customer's subdomain
// works inside that customer's context. The superadmin session override
// beats the operator's own home tenant but never the subdomain. The header
// path serves cookie-less machine-to-machine calls and only matches active
// tenants. The query override exists for development and is disabled in
// production.
//
// # Failure semantics
//
// Absence of a tenant is a valid terminal state, not an error. Data-store
// failures during resolution degrade to "no match" for that strategy and
// fall through to the next one; nothing in this package fails a request
// because a lookup broke.
package tenant
