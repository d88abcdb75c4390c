package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/civicboard/tenantkit/pkg/pg"
	"github.com/civicboard/tenantkit/pkg/slug"
)

// DB is the pgx query surface the provider needs. Satisfied by
// *pgxpool.Pool, *pgx.Conn, and pgx.Tx.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const tenantColumns = "id, name, slug, active, settings, created_at"

// PGProvider implements Provider over the tenants table.
type PGProvider struct {
	db DB
}

// NewPGProvider creates a postgres-backed tenant provider.
func NewPGProvider(db DB) *PGProvider {
	if db == nil {
		panic("tenant: db cannot be nil")
	}
	return &PGProvider{db: db}
}

func (p *PGProvider) ByID(ctx context.Context, id int64) (*Tenant, error) {
	row := p.db.QueryRow(ctx,
		"SELECT "+tenantColumns+" FROM tenants WHERE id = $1", id)
	return scanTenant(row)
}

func (p *PGProvider) ActiveBySlug(ctx context.Context, s string) (*Tenant, error) {
	row := p.db.QueryRow(ctx,
		"SELECT "+tenantColumns+" FROM tenants WHERE slug = $1 AND active", s)
	return scanTenant(row)
}

func scanTenant(row pgx.Row) (*Tenant, error) {
	var (
		t        Tenant
		settings []byte
	)
	if err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.Active, &settings, &t.CreatedAt); err != nil {
		if pg.IsNotFound(err) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	if len(settings) > 0 {
		// Settings are free-form; a corrupt blob should not make the
		// tenant unresolvable.
		_ = json.Unmarshal(settings, &t.Settings)
	}
	return &t, nil
}

// Provisioner creates and deactivates tenants. Provisioning is an explicit
// administrative step that precedes any login for the tenant; tenants are
// never created as a side effect of authentication.
type Provisioner struct {
	db       DB
	reserved map[string]struct{}
}

// NewProvisioner creates a tenant provisioner. Reserved labels (the app's
// own root label plus the defaults) are rejected as slugs.
func NewProvisioner(db DB, reserved ...string) *Provisioner {
	if db == nil {
		panic("tenant: db cannot be nil")
	}
	set := make(map[string]struct{}, len(DefaultReservedLabels)+len(reserved))
	for _, label := range DefaultReservedLabels {
		set[label] = struct{}{}
	}
	for _, label := range reserved {
		set[strings.ToLower(label)] = struct{}{}
	}
	return &Provisioner{db: db, reserved: set}
}

// Provision creates an active tenant. An empty slug is derived from the
// name. Returns ErrInvalidSlug, ErrReservedSlug, or ErrSlugTaken on the
// corresponding conflicts.
func (p *Provisioner) Provision(ctx context.Context, name, s string) (*Tenant, error) {
	if s == "" {
		s = slug.Make(name)
	}
	if !slug.IsValid(s) {
		return nil, ErrInvalidSlug
	}
	if _, ok := p.reserved[s]; ok {
		return nil, ErrReservedSlug
	}

	row := p.db.QueryRow(ctx,
		"INSERT INTO tenants (name, slug, active, settings) VALUES ($1, $2, TRUE, '{}'::jsonb) RETURNING "+tenantColumns,
		name, s)
	t, err := scanTenant(row)
	if err != nil {
		if pg.IsDuplicateKey(err) {
			return nil, errors.Join(ErrSlugTaken, err)
		}
		return nil, err
	}
	return t, nil
}

// Deactivate soft-disables a tenant. Its rows stay in place; resolution by
// subdomain and header stops matching.
func (p *Provisioner) Deactivate(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, "UPDATE tenants SET active = FALSE WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTenantNotFound
	}
	return nil
}
