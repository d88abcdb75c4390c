package document

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a document does not exist within the
	// current tenant's scope. A document belonging to another tenant is
	// indistinguishable from one that never existed.
	ErrNotFound = errors.New("document not found")
	// ErrEmptyTitle is returned when a document is created without a title.
	ErrEmptyTitle = errors.New("document title cannot be empty")
)

// Document is a tenant-owned record. TenantID is stamped at creation time
// from the current unit of work and never changes afterwards.
type Document struct {
	ID        uuid.UUID `json:"id"`
	TenantID  int64     `json:"tenant_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Storage persists documents. Implementations stamp the owning tenant on
// Create and constrain Get and List to the current tenant unless the caller
// explicitly opted out of isolation.
type Storage interface {
	Create(ctx context.Context, doc *Document) error
	Get(ctx context.Context, id uuid.UUID) (*Document, error)
	List(ctx context.Context) ([]Document, error)
}
