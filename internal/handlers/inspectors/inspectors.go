// internal/handlers/inspectors/inspectors.go
package inspectors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	httpserver "propcheck/internal/http"
	"propcheck/internal/models"
	"propcheck/internal/repo"
)

type Handler struct {
	repo repo.Repo
}

func New(r repo.Repo) *Handler {
	return &Handler{repo: r}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name   string    `json:"name"`
		Email  string    `json:"email"`
		Phone  string    `json:"phone"`
		UserID uuid.UUID `json:"user_id"`
	}
	if err := decode(w, r, &body); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if body.Name == "" || body.Email == "" {
		httpserver.Error(w, http.StatusBadRequest, "name and email are required")
		return
	}
	created, err := h.repo.CreateInspector(r.Context(), models.Inspector{
		ID:     uuid.New(),
		UserID: body.UserID,
		Name:   body.Name,
		Email:  body.Email,
		Phone:  body.Phone,
		Active: true,
	})
	if err != nil {
		status, msg := httpserver.PGErrorMessage(err, "create failed")
		httpserver.Error(w, status, msg)
		return
	}
	httpserver.JSON(w, http.StatusCreated, created)
}

// List returns active inspectors by default; ?all=true includes deactivated.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("all") != "true"
	list, err := h.repo.ListInspectors(r.Context(), activeOnly)
	if err != nil {
		status, msg := httpserver.PGErrorMessage(err, "list failed")
		httpserver.Error(w, status, msg)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{"content": list})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	i, err := h.repo.GetInspector(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "load failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, i)
}

// Update also flips Active, which is how inspectors are retired; rows are
// never deleted so historical inspections keep a valid reference.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body struct {
		Name   *string    `json:"name"`
		Email  *string    `json:"email"`
		Phone  *string    `json:"phone"`
		Active *bool      `json:"active"`
		UserID *uuid.UUID `json:"user_id"`
	}
	if err := decode(w, r, &body); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	existing, err := h.repo.GetInspector(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "load failed")
		return
	}
	if body.Name != nil {
		existing.Name = *body.Name
	}
	if body.Email != nil {
		existing.Email = *body.Email
	}
	if body.Phone != nil {
		existing.Phone = *body.Phone
	}
	if body.Active != nil {
		existing.Active = *body.Active
	}
	if body.UserID != nil {
		existing.UserID = *body.UserID
	}
	updated, err := h.repo.UpdateInspector(r.Context(), existing)
	if err != nil {
		writeRepoError(w, err, "update failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, updated)
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid inspector id")
		return uuid.Nil, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(dst)
}

func writeRepoError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, models.ErrInspectorNotFound) {
		httpserver.Error(w, http.StatusNotFound, "inspector not found")
		return
	}
	status, msg := httpserver.PGErrorMessage(err, fallback)
	httpserver.Error(w, status, msg)
}
