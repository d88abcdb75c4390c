package tenant

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/civicboard/tenantkit/pkg/audit"
	"github.com/civicboard/tenantkit/pkg/environment"
)

// Middleware initializes tenancy for each request: it runs the detection
// chain once, populates a fresh binding, and guarantees the binding is
// explicitly resolved (to a tenant or to none) before any downstream
// data access, then cleared when the request ends.
//
// Detection order: subdomain, superadmin session override, authenticated
// principal's home tenant, tenant header, and (outside production) the
// ?tenant_id= developer override. Absence of a tenant is a valid terminal
// state, not an error; nothing in detection can fail the request.
func Middleware(provider Provider, opts ...Option) func(http.Handler) http.Handler {
	if provider == nil {
		panic("tenant: provider cannot be nil")
	}

	cfg := &config{
		logger: slog.Default(),
		env:    environment.Production,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.cacheTTL > 0 && cfg.cache == nil {
		cfg.cache = NewMemoryCache()
	}
	if cfg.cache != nil {
		if cfg.cacheTTL <= 0 {
			cfg.cacheTTL = DefaultCacheTTL
		}
		provider = NewCachedProvider(provider, cfg.cache, cfg.cacheTTL)
	}

	strategies := []Strategy{SubdomainStrategy(provider, cfg.reservedLabels...)}
	if cfg.getSession != nil {
		strategies = append(strategies, SessionOverrideStrategy(cfg.getSession))
	}
	strategies = append(strategies,
		PrincipalStrategy(),
		HeaderStrategy(provider, cfg.headerNames...),
	)
	if cfg.env != environment.Production {
		strategies = append(strategies, QueryOverrideStrategy())
	}
	detect := Chain(strategies...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			binding := NewBinding(provider)
			// The binding must not survive this unit of work, whatever
			// exit path the handler takes.
			defer binding.Reset()

			ctx := WithBinding(r.Context(), binding)
			if cfg.env != "" {
				ctx = environment.WithContext(ctx, cfg.env)
			}
			r = r.WithContext(ctx)

			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					_ = binding.BindNone()
					next.ServeHTTP(w, r)
					return
				}
			}

			res, err := detect(ctx, r)
			if err != nil {
				cfg.logger.DebugContext(ctx, "tenant detection diagnostics", "error", err)
			}

			if res == nil {
				_ = binding.BindNone()
				next.ServeHTTP(w, r)
				return
			}

			if res.Tenant != nil {
				_ = binding.Bind(res.Tenant)
			} else {
				_ = binding.BindID(res.TenantID)
			}

			switch res.Source {
			case SourceSession:
				// Every override activation leaves a trace.
				cfg.logger.InfoContext(ctx, "superadmin tenant override active",
					slog.Int64("tenant_id", res.TenantID),
					slog.String("source", string(res.Source)),
				)
				if cfg.trail != nil {
					_ = cfg.trail.Log(ctx, "tenant.session_override",
						audit.WithTenant(strconv.FormatInt(res.TenantID, 10)),
					)
				}
			case SourceQuery:
				cfg.logger.DebugContext(ctx, "tenant resolved from query override",
					slog.Int64("tenant_id", res.TenantID),
				)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireTenant rejects requests that reach it without a bound tenant.
// Mount it on tenant-only route groups after Middleware.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !HasTenant(r.Context()) {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
