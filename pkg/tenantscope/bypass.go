package tenantscope

import "context"

type bypassKey struct{}

// WithoutIsolation returns a context whose queries skip the tenant filter.
// This is the escape hatch for administrative cross-tenant reads. It is
// never the default: the call must appear by name at the use site so every
// cross-tenant access is visible in review, and callers are expected to
// audit it.
func WithoutIsolation(ctx context.Context) context.Context {
	return context.WithValue(ctx, bypassKey{}, true)
}

// Bypassed reports whether the escape hatch is active for this context.
func Bypassed(ctx context.Context) bool {
	on, _ := ctx.Value(bypassKey{}).(bool)
	return on
}
