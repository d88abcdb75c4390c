package document

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/civicboard/tenantkit/pkg/pg"
	"github.com/civicboard/tenantkit/pkg/tenantscope"
)

// DB is the pgx query surface the storage needs. Satisfied by
// *pgxpool.Pool, *pgx.Conn, and pgx.Tx.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const documentColumns = "id, tenant_id, title, body, created_at"

// PGStorage implements Storage over the documents table. Every read goes
// through the isolation filter, so a document outside the current tenant's
// scope is invisible, not forbidden.
type PGStorage struct {
	db    DB
	scope tenantscope.Filter
}

// NewPGStorage creates a postgres-backed document storage.
func NewPGStorage(db DB, scope tenantscope.Filter) *PGStorage {
	if db == nil {
		panic("document: db cannot be nil")
	}
	if scope.Column() == "" {
		scope = tenantscope.NewFilter()
	}
	return &PGStorage{db: db, scope: scope}
}

func (s *PGStorage) Create(ctx context.Context, doc *Document) error {
	if err := s.scope.Stamp(ctx, &doc.TenantID); err != nil {
		return err
	}
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}

	row := s.db.QueryRow(ctx,
		"INSERT INTO documents (id, tenant_id, title, body) VALUES ($1, $2, $3, $4) RETURNING created_at",
		doc.ID, doc.TenantID, doc.Title, doc.Body)
	return row.Scan(&doc.CreatedAt)
}

func (s *PGStorage) Get(ctx context.Context, id uuid.UUID) (*Document, error) {
	conds := []string{"id = $1"}
	args := []any{id}
	conds, args = s.scope.Scope(ctx, conds, args)

	row := s.db.QueryRow(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE "+strings.Join(conds, " AND "),
		args...)
	return scanDocument(row)
}

func (s *PGStorage) List(ctx context.Context) ([]Document, error) {
	conds, args := s.scope.Scope(ctx, nil, nil)

	query := "SELECT " + documentColumns + " FROM documents"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.TenantID, &doc.Title, &doc.Body, &doc.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func scanDocument(row pgx.Row) (*Document, error) {
	var doc Document
	if err := row.Scan(&doc.ID, &doc.TenantID, &doc.Title, &doc.Body, &doc.CreatedAt); err != nil {
		if pg.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}
