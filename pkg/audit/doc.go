// Package audit records privileged tenancy operations so that every
// cross-tenant access leaves a reviewable trace.
//
// The tenancy middleware logs an event each time a superadmin session
// override is activated; provisioning and escape-hatch call sites can do the
// same. Events carry the acting principal and tenant pulled from context:
//
//	trail := audit.NewLogger(audit.NewSlogStorage(log),
//	    audit.WithActorExtractor(actorFromContext),
//	    audit.WithTenantExtractor(tenantFromContext),
//	)
//	_ = trail.Log(ctx, "tenant.override", audit.WithTenant("9"))
package audit
