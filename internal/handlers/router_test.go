package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propcheck/internal/inspection"
	"propcheck/internal/repo"
)

type stubRepo struct {
	repo.Repo
}

func newTestMux(t *testing.T) *chi.Mux {
	t.Helper()
	rp := &stubRepo{}
	mux := chi.NewRouter()
	RegisterRoutes(mux, rp, inspection.NewService(rp), nil)
	return mux
}

func TestTemplateReadableWithoutSession(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest(http.MethodGet, "/api/checklist/template", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "categories")
}

func TestAPIRequiresSession(t *testing.T) {
	mux := newTestMux(t)

	for _, path := range []string{"/api/inspections", "/api/properties", "/admin/users"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}
