package document

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/civicboard/tenantkit/pkg/tenantscope"
)

// Service holds the document business logic. Tenancy is enforced one layer
// down in Storage; the service only decides when to step outside it.
type Service struct {
	storage Storage
	log     *slog.Logger
}

// ServiceOption configures the service.
type ServiceOption func(*Service)

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates a document service. Panics on nil storage.
func NewService(storage Storage, opts ...ServiceOption) *Service {
	if storage == nil {
		panic("document: storage cannot be nil")
	}
	s := &Service{storage: storage, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a new document for the current tenant. The owning tenant
// comes from the unit of work, never from the caller's payload.
func (s *Service) Create(ctx context.Context, title, body string) (*Document, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	doc := &Document{Title: title, Body: body}
	if err := s.storage.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	s.log.DebugContext(ctx, "document created", slog.String("document_id", doc.ID.String()))
	return doc, nil
}

// Get returns a document within the current tenant's scope.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Document, error) {
	return s.storage.Get(ctx, id)
}

// List returns the current tenant's documents.
func (s *Service) List(ctx context.Context) ([]Document, error) {
	return s.storage.List(ctx)
}

// ListAllTenants returns documents across every tenant. The isolation opt-out
// is deliberate and visible right here; callers gate this behind the
// superadmin role.
func (s *Service) ListAllTenants(ctx context.Context) ([]Document, error) {
	return s.storage.List(tenantscope.WithoutIsolation(ctx))
}
