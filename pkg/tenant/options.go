package tenant

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/civicboard/tenantkit/pkg/audit"
	"github.com/civicboard/tenantkit/pkg/environment"
)

// ErrorHandler handles errors surfaced by the tenancy middleware helpers.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// config holds middleware configuration.
type config struct {
	logger         *slog.Logger
	trail          *audit.Logger
	env            environment.Environment
	getSession     func(r *http.Request) (SessionData, error)
	reservedLabels []string
	headerNames    []string
	skipPaths      []string
	cache          Cache
	cacheTTL       time.Duration
}

// Option configures the middleware.
type Option func(*config)

// WithLogger sets the logger for resolution diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.logger = log
		}
	}
}

// WithAuditTrail records superadmin override activations on the given trail.
func WithAuditTrail(trail *audit.Logger) Option {
	return func(c *config) { c.trail = trail }
}

// WithEnvironment sets the deployment environment. Anything other than
// production enables the ?tenant_id= developer override.
func WithEnvironment(env environment.Environment) Option {
	return func(c *config) { c.env = env }
}

// WithSession enables the superadmin session override using the given
// session accessor.
func WithSession(getSession func(r *http.Request) (SessionData, error)) Option {
	return func(c *config) { c.getSession = getSession }
}

// WithReserved adds host labels that never resolve as tenant slugs.
func WithReserved(labels ...string) Option {
	return func(c *config) {
		c.reservedLabels = append(c.reservedLabels, labels...)
	}
}

// WithHeaders replaces the headers consulted by the header strategy.
func WithHeaders(names ...string) Option {
	return func(c *config) { c.headerNames = names }
}

// WithSkipPaths sets path prefixes that bypass tenant resolution entirely
// (health checks, metrics). The binding is still created and bound to none.
func WithSkipPaths(paths []string) Option {
	return func(c *config) { c.skipPaths = paths }
}

// WithCache wraps the provider in the given cache.
func WithCache(cache Cache) Option {
	return func(c *config) { c.cache = cache }
}

// WithCacheTTL enables provider caching with the default in-memory cache
// unless WithCache supplied one.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *config) { c.cacheTTL = ttl }
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNoTenantInContext), errors.Is(err, ErrTenantNotFound):
		http.Error(w, "Tenant not found", http.StatusNotFound)
	case errors.Is(err, ErrInactiveTenant):
		http.Error(w, "Tenant is inactive", http.StatusForbidden)
	case errors.Is(err, ErrInvalidIdentifier):
		http.Error(w, "Invalid tenant identifier", http.StatusBadRequest)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
