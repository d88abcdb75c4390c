package tenant

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/civicboard/tenantkit/pkg/environment"
	"github.com/civicboard/tenantkit/pkg/principal"
	"github.com/civicboard/tenantkit/pkg/slug"
)

// Bit-exact wire contracts shared with clients and the session layer.
const (
	// HeaderTenantID is the canonical machine-to-machine tenant header.
	HeaderTenantID = "X-Tenant-ID"
	// HeaderTenant is the accepted short form of the tenant header.
	HeaderTenant = "X-Tenant"
	// SessionTenantKey is the session key holding a superadmin's selected
	// tenant, written by the explicit tenant-switch action.
	SessionTenantKey = "current_tenant_id"
	// QueryTenantParam is the developer-only query override parameter.
	QueryTenantParam = "tenant_id"
)

// DefaultReservedLabels are host labels that never resolve as tenant slugs.
// The application's own root label is appended via configuration.
var DefaultReservedLabels = []string{"www", "localhost", "127.0.0.1"}

// Source identifies which strategy produced a resolution.
type Source string

const (
	SourceSubdomain Source = "subdomain"
	SourceSession   Source = "session"
	SourcePrincipal Source = "principal"
	SourceHeader    Source = "header"
	SourceQuery     Source = "query"
)

// Resolution is a successful strategy outcome. Tenant is nil when the
// strategy resolved an id without loading the entity; the binding fetches it
// lazily if anyone asks.
type Resolution struct {
	TenantID int64
	Tenant   *Tenant
	Source   Source
}

// Strategy is one ordered resolution attempt. A (nil, nil) return is a miss;
// errors are diagnostic only and never abort the chain. Strategies perform
// at most one data-store point lookup.
type Strategy func(ctx context.Context, r *http.Request) (*Resolution, error)

// Chain tries strategies strictly in order and returns the first match.
// Ordering is load-bearing: precedence between subdomain, principal, and
// header resolution is part of the contract and must not be re-arranged.
func Chain(strategies ...Strategy) Strategy {
	return func(ctx context.Context, r *http.Request) (*Resolution, error) {
		var errs []error
		for _, strategy := range strategies {
			res, err := strategy(ctx, r)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if res != nil {
				return res, nil
			}
		}
		if len(errs) > 0 {
			return nil, errors.Join(errs...)
		}
		return nil, nil
	}
}

// SubdomainStrategy matches the first host label against active tenant
// slugs. Reserved labels (the app's own root label, www, localhost) never
// match, no matter what tenants exist.
func SubdomainStrategy(p Provider, reserved ...string) Strategy {
	reservedSet := make(map[string]struct{}, len(DefaultReservedLabels)+len(reserved))
	for _, label := range DefaultReservedLabels {
		reservedSet[label] = struct{}{}
	}
	for _, label := range reserved {
		reservedSet[strings.ToLower(label)] = struct{}{}
	}

	return func(ctx context.Context, r *http.Request) (*Resolution, error) {
		host := hostWithoutPort(r.Host)
		labels := strings.Split(host, ".")
		if len(labels) < 2 {
			return nil, nil
		}

		candidate := strings.ToLower(labels[0])
		if _, ok := reservedSet[candidate]; ok {
			return nil, nil
		}
		if !slug.IsValid(candidate) {
			return nil, nil
		}

		t, err := p.ActiveBySlug(ctx, candidate)
		if err != nil {
			return nil, lookupMiss(err)
		}
		return &Resolution{TenantID: t.ID, Tenant: t, Source: SourceSubdomain}, nil
	}
}

// PrincipalStrategy resolves to the authenticated principal's home tenant.
// No activity check: the principal's own authorization already implies the
// tenant accepted them.
func PrincipalStrategy() Strategy {
	return func(ctx context.Context, r *http.Request) (*Resolution, error) {
		p, ok := principal.FromContext(ctx)
		if !ok {
			return nil, nil
		}
		id, ok := p.HomeTenantID()
		if !ok {
			return nil, nil
		}
		return &Resolution{TenantID: id, Source: SourcePrincipal}, nil
	}
}

// HeaderStrategy resolves from the tenant header, accepting either a numeric
// id or a slug. Exists for machine-to-machine calls that carry no cookie and
// no subdomain routing. Only active tenants match.
func HeaderStrategy(p Provider, headers ...string) Strategy {
	if len(headers) == 0 {
		headers = []string{HeaderTenantID, HeaderTenant}
	}

	return func(ctx context.Context, r *http.Request) (*Resolution, error) {
		var value string
		for _, name := range headers {
			if v := strings.TrimSpace(r.Header.Get(name)); v != "" {
				value = v
				break
			}
		}
		if value == "" {
			return nil, nil
		}

		if id, err := strconv.ParseInt(value, 10, 64); err == nil {
			t, err := p.ByID(ctx, id)
			if err != nil {
				return nil, lookupMiss(err)
			}
			if !t.Active {
				return nil, nil
			}
			return &Resolution{TenantID: t.ID, Tenant: t, Source: SourceHeader}, nil
		}

		if !slug.IsValid(strings.ToLower(value)) {
			return nil, nil
		}
		t, err := p.ActiveBySlug(ctx, strings.ToLower(value))
		if err != nil {
			return nil, lookupMiss(err)
		}
		return &Resolution{TenantID: t.ID, Tenant: t, Source: SourceHeader}, nil
	}
}

// SessionOverrideStrategy resolves a superadmin's previously selected tenant
// from the session. It outranks the principal's home tenant (one operator
// account browsing several tenants across sessions) but stays below the
// subdomain match. Non-superadmins never match.
func SessionOverrideStrategy(getSession func(r *http.Request) (SessionData, error)) Strategy {
	return func(ctx context.Context, r *http.Request) (*Resolution, error) {
		p, ok := principal.FromContext(ctx)
		if !ok || !p.IsSuperadmin() {
			return nil, nil
		}
		if getSession == nil {
			return nil, nil
		}

		sess, err := getSession(r)
		if err != nil || sess == nil {
			return nil, nil
		}
		value, ok := sess.GetString(SessionTenantKey)
		if !ok {
			return nil, nil
		}
		id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return nil, nil
		}
		return &Resolution{TenantID: id, Source: SourceSession}, nil
	}
}

// QueryOverrideStrategy resolves from the ?tenant_id= query parameter. A
// developer convenience only: it is disabled entirely in production, no
// matter how the middleware is assembled.
func QueryOverrideStrategy() Strategy {
	return func(ctx context.Context, r *http.Request) (*Resolution, error) {
		if environment.IsProduction(ctx) {
			return nil, nil
		}
		value := strings.TrimSpace(r.URL.Query().Get(QueryTenantParam))
		if value == "" {
			return nil, nil
		}
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, nil
		}
		return &Resolution{TenantID: id, Source: SourceQuery}, nil
	}
}

// lookupMiss downgrades provider errors to a miss. A plain not-found is an
// expected miss; anything else is kept as a diagnostic error for the chain
// to report, but still never resolves the strategy.
func lookupMiss(err error) error {
	if errors.Is(err, ErrTenantNotFound) {
		return nil
	}
	return err
}

func hostWithoutPort(host string) string {
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		return host[:idx]
	}
	return host
}

// Resolver is the pure decision procedure for the standard strategy chain:
// subdomain, then authenticated principal, then header. It mutates nothing
// and can be called anywhere, any time.
type Resolver struct {
	chain Strategy
}

// ResolverOption configures resolver construction.
type ResolverOption func(*resolverConfig)

type resolverConfig struct {
	reservedLabels []string
	headerNames    []string
}

// WithReservedLabels adds host labels that never resolve as tenant slugs,
// typically the application's own root label.
func WithReservedLabels(labels ...string) ResolverOption {
	return func(c *resolverConfig) {
		c.reservedLabels = append(c.reservedLabels, labels...)
	}
}

// WithHeaderNames replaces the headers consulted by the header strategy.
func WithHeaderNames(names ...string) ResolverOption {
	return func(c *resolverConfig) {
		c.headerNames = names
	}
}

// NewResolver builds the standard resolver. Panics on a nil provider:
// a resolver with nowhere to look things up is a programming error.
func NewResolver(p Provider, opts ...ResolverOption) *Resolver {
	if p == nil {
		panic("tenant: provider cannot be nil")
	}
	cfg := &resolverConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Resolver{chain: Chain(
		SubdomainStrategy(p, cfg.reservedLabels...),
		PrincipalStrategy(),
		HeaderStrategy(p, cfg.headerNames...),
	)}
}

// Resolve runs the strategy chain. A nil resolution with a nil error is a
// valid terminal state meaning "no tenant".
func (r *Resolver) Resolve(ctx context.Context, req *http.Request) (*Resolution, error) {
	return r.chain(ctx, req)
}

// ResolveID resolves the tenant id only, swallowing diagnostics. This is the
// cheap form used by fallback paths and create-time stamping.
func (r *Resolver) ResolveID(ctx context.Context, req *http.Request) (int64, bool) {
	res, err := r.Resolve(ctx, req)
	if err != nil || res == nil {
		return 0, false
	}
	return res.TenantID, true
}
