package principal

import (
	"context"
	"log/slog"
)

// contextKey prevents collisions with other packages using context values.
type contextKey struct{}

// WithPrincipal adds the principal to the context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext retrieves the principal from the context.
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(*Principal)
	return p, ok && p != nil
}

// LoggerExtractor returns a function that enriches log records with the
// principal id.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if p, ok := FromContext(ctx); ok {
			return slog.String("principal_id", p.ID.String()), true
		}
		return slog.Attr{}, false
	}
}
