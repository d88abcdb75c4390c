// Package principal models the authenticated actor of a request as consumed
// by the tenancy core.
//
// The package deliberately owns no authentication logic. Credential checking,
// session establishment, and role storage live elsewhere; what arrives here is
// the already-verified identity: who the actor is, which tenant they belong to,
// and which roles they hold.
//
// Roles are an enumerated set checked through capability methods rather than
// string comparison at call sites:
//
//	p := principal.New(userID, principal.HomeTenant(4), principal.RoleAdmin)
//	if p.IsSuperadmin() {
//	    // cross-tenant access allowed
//	}
//
// The principal travels through the request via context:
//
//	ctx = principal.WithPrincipal(ctx, p)
//	p, ok := principal.FromContext(ctx)
package principal
