// Package environment carries the deployment environment through request
// contexts.
//
// The tenancy core uses it for exactly one decision: the ?tenant_id= query
// override is honored only outside production. Anything else that wants
// environment-aware behavior can share the same context value.
//
//	r.Use(environment.Middleware(environment.Parse(os.Getenv("APP_ENV"))))
//
//	if !environment.IsProduction(ctx) {
//	    // developer-only path
//	}
//
// FromContext defaults to Production when nothing was attached, so forgetting
// the middleware disables developer escape valves instead of enabling them.
package environment
