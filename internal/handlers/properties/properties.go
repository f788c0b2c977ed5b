// internal/handlers/properties/properties.go
package properties

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"propcheck/internal/checklist"
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

type propertyBody struct {
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	PropertyType string    `json:"property_type"`
	OwnerID      uuid.UUID `json:"owner_id"`
}

func (b propertyBody) validate() string {
	if b.Name == "" {
		return "name is required"
	}
	if b.Address == "" {
		return "address is required"
	}
	switch b.PropertyType {
	case "", checklist.PropertyTypeResidential, checklist.PropertyTypeCommercial:
	default:
		return "property_type must be Residential or Commercial"
	}
	return ""
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var body propertyBody
	if err := decode(w, r, &body); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if msg := body.validate(); msg != "" {
		httpserver.Error(w, http.StatusBadRequest, msg)
		return
	}
	if body.PropertyType == "" {
		body.PropertyType = checklist.PropertyTypeResidential
	}
	p := models.Property{
		ID:           uuid.New(),
		Name:         body.Name,
		Address:      body.Address,
		PropertyType: body.PropertyType,
		OwnerID:      body.OwnerID,
	}
	created, err := h.repo.CreateProperty(r.Context(), p)
	if err != nil {
		status, msg := httpserver.PGErrorMessage(err, "create failed")
		httpserver.Error(w, status, msg)
		return
	}
	httpserver.JSON(w, http.StatusCreated, created)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var ownerID *uuid.UUID
	if s := r.URL.Query().Get("owner_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			httpserver.Error(w, http.StatusBadRequest, "invalid owner_id")
			return
		}
		ownerID = &id
	}
	list, err := h.repo.ListProperties(r.Context(), ownerID)
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
	p, err := h.repo.GetProperty(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "load failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, p)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body propertyBody
	if err := decode(w, r, &body); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if msg := body.validate(); msg != "" {
		httpserver.Error(w, http.StatusBadRequest, msg)
		return
	}
	existing, err := h.repo.GetProperty(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "load failed")
		return
	}
	existing.Name = body.Name
	existing.Address = body.Address
	if body.PropertyType != "" {
		existing.PropertyType = body.PropertyType
	}
	existing.OwnerID = body.OwnerID
	updated, err := h.repo.UpdateProperty(r.Context(), existing)
	if err != nil {
		writeRepoError(w, err, "update failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.repo.DeleteProperty(r.Context(), id); err != nil {
		writeRepoError(w, err, "delete failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid property id")
		return uuid.Nil, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(dst)
}

func writeRepoError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, models.ErrPropertyNotFound) {
		httpserver.Error(w, http.StatusNotFound, "property not found")
		return
	}
	status, msg := httpserver.PGErrorMessage(err, fallback)
	httpserver.Error(w, status, msg)
}
