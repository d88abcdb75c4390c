package tenant

import (
	"context"
	"log/slog"
)

// contextKey prevents collisions with other packages using context values.
type contextKey struct{}

// WithBinding attaches the unit of work's binding to the context.
func WithBinding(ctx context.Context, b *Binding) context.Context {
	return context.WithValue(ctx, contextKey{}, b)
}

// BindingFromContext retrieves the binding from the context.
func BindingFromContext(ctx context.Context) (*Binding, bool) {
	b, ok := ctx.Value(contextKey{}).(*Binding)
	return b, ok && b != nil
}

// CurrentTenantID returns the bound tenant id for the current unit of work.
// Cheap accessor used on the hot path of every scoped query.
func CurrentTenantID(ctx context.Context) (int64, bool) {
	b, ok := BindingFromContext(ctx)
	if !ok {
		return 0, false
	}
	return b.TenantID()
}

// CurrentTenant returns the bound tenant entity, lazily loading it on first
// access. Returns nil when no tenant is bound or the lookup fails.
func CurrentTenant(ctx context.Context) *Tenant {
	b, ok := BindingFromContext(ctx)
	if !ok {
		return nil
	}
	return b.Tenant(ctx)
}

// HasTenant reports whether the current unit of work has a bound tenant.
func HasTenant(ctx context.Context) bool {
	_, ok := CurrentTenantID(ctx)
	return ok
}

// OverrideTenant switches the current unit of work to another tenant.
// Callers must gate this behind the superadmin role check and audit the
// activation; the binding only enforces the once-per-unit-of-work rule.
func OverrideTenant(ctx context.Context, id int64) error {
	b, ok := BindingFromContext(ctx)
	if !ok {
		return ErrNoBinding
	}
	return b.Override(id)
}

// LoggerExtractor returns a function that enriches log records with the
// bound tenant id.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := CurrentTenantID(ctx); ok {
			return slog.Int64("tenant_id", id), true
		}
		return slog.Attr{}, false
	}
}
