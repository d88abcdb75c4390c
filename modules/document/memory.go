package document

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/civicboard/tenantkit/pkg/tenantscope"
)

// MemoryStorage is an in-memory Storage with the same isolation semantics as
// PGStorage. Used in tests and local development without a database.
type MemoryStorage struct {
	mu    sync.RWMutex
	docs  map[uuid.UUID]Document
	scope tenantscope.Filter
}

// NewMemoryStorage creates an empty in-memory document storage.
func NewMemoryStorage(scope tenantscope.Filter) *MemoryStorage {
	if scope.Column() == "" {
		scope = tenantscope.NewFilter()
	}
	return &MemoryStorage{
		docs:  make(map[uuid.UUID]Document),
		scope: scope,
	}
}

func (s *MemoryStorage) Create(ctx context.Context, doc *Document) error {
	if err := s.scope.Stamp(ctx, &doc.TenantID); err != nil {
		return err
	}
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = *doc
	return nil
}

func (s *MemoryStorage) Get(ctx context.Context, id uuid.UUID) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	if tenantID, scoped := s.scope.TenantID(ctx); scoped && doc.TenantID != tenantID {
		// Out-of-scope documents look exactly like missing ones.
		return nil, ErrNotFound
	}
	return &doc, nil
}

func (s *MemoryStorage) List(ctx context.Context) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tenantID, scoped := s.scope.TenantID(ctx)

	var docs []Document
	for _, doc := range s.docs {
		if scoped && doc.TenantID != tenantID {
			continue
		}
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}
