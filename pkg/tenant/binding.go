package tenant

import (
	"context"
	"sync"
)

type bindState uint8

const (
	stateUnresolved bindState = iota
	stateBound
	stateUnbound
)

// Binding is the per-unit-of-work tenant holder. Workers are reused across
// requests, so a binding is created fresh for every unit of work and Reset
// on every exit path; inheriting a previous request's binding would be a
// cross-tenant leak.
//
// The binding resolves exactly once: to a tenant (bound) or explicitly to
// none (unbound). A bound binding may move to a different tenant exactly
// once, via Override, which is the superadmin tenant-switch path. Unbound is
// terminal so a failed resolution never triggers repeated store lookups.
type Binding struct {
	mu         sync.Mutex
	state      bindState
	tenantID   int64
	tenant     *Tenant
	overridden bool
	lookedUp   bool
	provider   Provider
}

// NewBinding creates an unresolved binding. The provider backs the lazy
// entity lookup; pass nil for units of work that must never touch the data
// store (e.g. queue jobs operating on ids alone).
func NewBinding(provider Provider) *Binding {
	return &Binding{provider: provider}
}

// Bind resolves the binding to the given tenant. Bind(nil) is equivalent to
// BindNone. Re-binding the same tenant refreshes the cached entity;
// re-binding a different one is a programming error surfaced as
// ErrAlreadyResolved.
func (b *Binding) Bind(t *Tenant) error {
	if t == nil {
		return b.BindNone()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case stateUnresolved:
		b.state = stateBound
		b.tenantID = t.ID
		b.tenant = t
		return nil
	case stateBound:
		if b.tenantID == t.ID {
			b.tenant = t
			return nil
		}
		return ErrAlreadyResolved
	default:
		return ErrAlreadyResolved
	}
}

// BindID resolves the binding to a tenant id without an entity. The entity
// stays unfetched until someone asks for it.
func (b *Binding) BindID(id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case stateUnresolved:
		b.state = stateBound
		b.tenantID = id
		return nil
	case stateBound:
		if b.tenantID == id {
			return nil
		}
		return ErrAlreadyResolved
	default:
		return ErrAlreadyResolved
	}
}

// BindNone resolves the binding to "no tenant". The explicit write matters:
// it guarantees the registry is never left holding a previous unit of work's
// state. Idempotent.
func (b *Binding) BindNone() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case stateUnresolved, stateUnbound:
		b.state = stateUnbound
		return nil
	default:
		return ErrAlreadyResolved
	}
}

// Override moves a bound binding to a different tenant. Allowed exactly once
// per unit of work; callers gate it behind the superadmin role and audit it.
func (b *Binding) Override(id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != stateBound {
		return ErrNotBound
	}
	if b.overridden {
		return ErrAlreadyOverridden
	}
	if b.tenantID == id {
		return nil
	}
	b.tenantID = id
	b.tenant = nil
	b.lookedUp = false
	b.overridden = true
	return nil
}

// TenantID returns the bound tenant id. The hot path of every scoped query
// goes through here, so no store round trip ever happens.
func (b *Binding) TenantID() (int64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != stateBound {
		return 0, false
	}
	return b.tenantID, true
}

// Bound reports whether a tenant is bound.
func (b *Binding) Bound() bool {
	_, ok := b.TenantID()
	return ok
}

// Resolved reports whether the binding reached a terminal state.
func (b *Binding) Resolved() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state != stateUnresolved
}

// Tenant returns the bound tenant entity, loading it from the provider at
// most once per binding. Lookup failures are swallowed and yield nil: a
// broken tenant lookup must degrade to "no tenant", never crash an
// otherwise healthy request.
func (b *Binding) Tenant(ctx context.Context) *Tenant {
	b.mu.Lock()
	if b.state != stateBound {
		b.mu.Unlock()
		return nil
	}
	if b.tenant != nil {
		t := b.tenant
		b.mu.Unlock()
		return t
	}
	if b.provider == nil || b.lookedUp {
		b.mu.Unlock()
		return nil
	}
	b.lookedUp = true
	id := b.tenantID
	b.mu.Unlock()

	// Lookup happens outside the lock; concurrent callers during the
	// in-flight lookup see nil, which is an acceptable read of "not loaded
	// yet".
	t, err := b.provider.ByID(ctx, id)
	if err != nil {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == stateBound && b.tenantID == id {
		b.tenant = t
		return t
	}
	return nil
}

// Reset returns the binding to its unresolved zero state. Called at unit of
// work end on every exit path, including panics from downstream handlers.
func (b *Binding) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = stateUnresolved
	b.tenantID = 0
	b.tenant = nil
	b.overridden = false
	b.lookedUp = false
}
