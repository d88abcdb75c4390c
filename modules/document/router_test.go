package document_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicboard/tenantkit/modules/document"
	"github.com/civicboard/tenantkit/pkg/principal"
	"github.com/civicboard/tenantkit/pkg/tenant"
	"github.com/civicboard/tenantkit/pkg/tenantscope"
)

// staticProvider serves a fixed tenant set.
type staticProvider struct {
	tenants []*tenant.Tenant
}

func (p *staticProvider) ByID(ctx context.Context, id int64) (*tenant.Tenant, error) {
	for _, t := range p.tenants {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, tenant.ErrTenantNotFound
}

func (p *staticProvider) ActiveBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	for _, t := range p.tenants {
		if t.Slug == slug && t.Active {
			return t, nil
		}
	}
	return nil, tenant.ErrTenantNotFound
}

func newApp(t *testing.T) http.Handler {
	t.Helper()

	provider := &staticProvider{tenants: []*tenant.Tenant{
		{ID: 1, Name: "Firenze", Slug: "firenze", Active: true},
		{ID: 2, Name: "Roma", Slug: "roma", Active: true},
	}}

	svc := document.NewService(document.NewMemoryStorage(tenantscope.NewFilter()))

	r := chi.NewRouter()
	r.Use(tenant.Middleware(provider, tenant.WithReserved("app")))
	r.Mount("/documents", document.Router(svc))
	return r
}

func doJSON(t *testing.T, h http.Handler, method, host, target, body string, p *principal.Principal) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Host = host
	if p != nil {
		r = r.WithContext(principal.WithPrincipal(r.Context(), p))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func TestRouter_TenantLifecycle(t *testing.T) {
	t.Parallel()

	app := newApp(t)

	// A document created on the firenze subdomain is stamped with firenze's
	// tenant id without the client ever sending one.
	rec := doJSON(t, app, http.MethodPost, "firenze.example.org", "/documents/",
		`{"title":"piazza plan","body":"restoration schedule"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created document.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.TenantID)
	assert.Equal(t, "piazza plan", created.Title)

	// firenze sees its document.
	rec = doJSON(t, app, http.MethodGet, "firenze.example.org", "/documents/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var docs []document.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &docs))
	require.Len(t, docs, 1)

	// roma sees an empty list, and firenze's document reads as missing.
	rec = doJSON(t, app, http.MethodGet, "roma.example.org", "/documents/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	docs = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &docs))
	assert.Empty(t, docs)

	rec = doJSON(t, app, http.MethodGet, "roma.example.org", "/documents/"+created.ID.String(), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// A superadmin's cross-tenant listing still finds it.
	superadmin := principal.New(uuid.New(), principal.WithRoles(principal.RoleSuperadmin))
	rec = doJSON(t, app, http.MethodGet, "roma.example.org", "/documents/admin/all", "", superadmin)
	require.Equal(t, http.StatusOK, rec.Code)
	docs = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &docs))
	assert.Len(t, docs, 1)
}

func TestRouter_Guards(t *testing.T) {
	t.Parallel()

	app := newApp(t)

	t.Run("no tenant is rejected", func(t *testing.T) {
		t.Parallel()

		rec := doJSON(t, app, http.MethodGet, "www.example.org", "/documents/", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown subdomain is rejected", func(t *testing.T) {
		t.Parallel()

		rec := doJSON(t, app, http.MethodGet, "ghost.example.org", "/documents/", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("cross-tenant listing requires superadmin", func(t *testing.T) {
		t.Parallel()

		member := principal.New(uuid.New(),
			principal.WithHomeTenant(1),
			principal.WithRoles(principal.RoleMember))
		rec := doJSON(t, app, http.MethodGet, "firenze.example.org", "/documents/admin/all", "", member)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = doJSON(t, app, http.MethodGet, "firenze.example.org", "/documents/admin/all", "", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("invalid document id", func(t *testing.T) {
		t.Parallel()

		rec := doJSON(t, app, http.MethodGet, "firenze.example.org", "/documents/not-a-uuid", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty title", func(t *testing.T) {
		t.Parallel()

		rec := doJSON(t, app, http.MethodPost, "firenze.example.org", "/documents/",
			`{"title":""}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
