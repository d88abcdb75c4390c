package document

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/civicboard/tenantkit/pkg/principal"
	"github.com/civicboard/tenantkit/pkg/tenant"
)

type createRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Router mounts the document JSON API. Tenant-scoped routes refuse requests
// without a bound tenant; the cross-tenant listing additionally requires the
// superadmin role.
//
//	r.Mount("/documents", document.Router(svc))
func Router(svc *Service) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(tenant.RequireTenant(nil))
		r.Get("/", listDocuments(svc))
		r.Post("/", createDocument(svc))
		r.Get("/{id}", getDocument(svc))
	})

	r.Get("/admin/all", listAllDocuments(svc))

	return r
}

func listDocuments(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, err := svc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if docs == nil {
			docs = []Document{}
		}
		writeJSON(w, http.StatusOK, docs)
	}
}

func createDocument(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}

		doc, err := svc.Create(r.Context(), req.Title, req.Body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, doc)
	}
}

func getDocument(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid document id"})
			return
		}

		doc, err := svc.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

func listAllDocuments(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal.FromContext(r.Context())
		if !ok || !p.IsSuperadmin() {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "superadmin role required"})
			return
		}

		docs, err := svc.ListAllTenants(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if docs == nil {
			docs = []Document{}
		}
		writeJSON(w, http.StatusOK, docs)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "document not found"})
	case errors.Is(err, ErrEmptyTitle):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
