package environment

import (
	"context"
	"strings"
)

// Environment names a deployment environment.
type Environment string

const (
	// Development for local development.
	Development Environment = "development"
	// Staging for pre-production deployments.
	Staging Environment = "staging"
	// Production for live deployments. Developer conveniences
	// (e.g. query-parameter tenant overrides) are disabled here.
	Production Environment = "production"
)

// Parse normalizes a free-form environment name. Unknown values map to
// Production so that a misconfigured deployment errs on the strict side.
func Parse(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "development", "dev", "local":
		return Development
	case "staging", "stage":
		return Staging
	default:
		return Production
	}
}

type contextKey struct{}

// WithContext adds the environment to the context.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext retrieves the environment from the context.
// Returns Production when no environment was attached: code relying on
// non-production behavior must opt in explicitly.
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return Production
	}
	if env, ok := ctx.Value(contextKey{}).(Environment); ok {
		return env
	}
	return Production
}

// IsProduction reports whether the context's environment is production.
func IsProduction(ctx context.Context) bool {
	return FromContext(ctx) == Production
}

// IsDevelopment reports whether the context's environment is development.
func IsDevelopment(ctx context.Context) bool {
	return FromContext(ctx) == Development
}

// IsStaging reports whether the context's environment is staging.
func IsStaging(ctx context.Context) bool {
	return FromContext(ctx) == Staging
}
