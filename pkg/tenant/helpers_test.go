package tenant_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/civicboard/tenantkit/pkg/tenant"
)

// mockProvider is an in-memory Provider fake with injectable failures and
// call counting.
type mockProvider struct {
	mu      sync.Mutex
	byID    map[int64]*tenant.Tenant
	bySlug  map[string]*tenant.Tenant
	err     error
	calls   int
}

func newMockProvider(tenants ...*tenant.Tenant) *mockProvider {
	p := &mockProvider{
		byID:   make(map[int64]*tenant.Tenant),
		bySlug: make(map[string]*tenant.Tenant),
	}
	for _, t := range tenants {
		p.add(t)
	}
	return p
}

func (p *mockProvider) add(t *tenant.Tenant) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byID[t.ID] = t
	p.bySlug[t.Slug] = t
}

func (p *mockProvider) failWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *mockProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func (p *mockProvider) ByID(ctx context.Context, id int64) (*tenant.Tenant, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	t, ok := p.byID[id]
	if !ok {
		return nil, tenant.ErrTenantNotFound
	}
	return t, nil
}

func (p *mockProvider) ActiveBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	t, ok := p.bySlug[slug]
	if !ok || !t.Active {
		return nil, tenant.ErrTenantNotFound
	}
	return t, nil
}

// mockSession is a SessionData fake backed by a string map.
type mockSession map[string]string

func (s mockSession) GetString(key string) (string, bool) {
	v, ok := s[key]
	return v, ok
}

func activeTenant(id int64, slug string) *tenant.Tenant {
	return &tenant.Tenant{
		ID:        id,
		Name:      slug,
		Slug:      slug,
		Active:    true,
		CreatedAt: time.Now(),
	}
}

var errStoreDown = errors.New("store down")
