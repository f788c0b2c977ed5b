// internal/handlers/inspections/inspections.go
package inspections

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"propcheck/internal/checklist"
	httpserver "propcheck/internal/http"
	"propcheck/internal/httpctx"
	"propcheck/internal/inspection"
	"propcheck/internal/models"
	"propcheck/internal/photos"
	"propcheck/internal/repo"
)

type Handler struct {
	repo   repo.Repo
	svc    *inspection.Service
	photos photos.Store
}

func New(r repo.Repo, svc *inspection.Service, store photos.Store) *Handler {
	return &Handler{repo: r, svc: svc, photos: store}
}

// Schedule handles POST /api/inspections/schedule.
// Body: { "property_id": "...", "inspector_id": "...", "scheduled_date": "2024-03-01" }
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	uid, ok := httpctx.UserID(r.Context())
	if !ok {
		httpserver.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var body struct {
		PropertyID    uuid.UUID `json:"property_id"`
		InspectorID   uuid.UUID `json:"inspector_id"`
		ScheduledDate string    `json:"scheduled_date"`
	}
	if err := decode(w, r, &body); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	date, err := parseDate(body.ScheduledDate)
	if err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid scheduled_date (want YYYY-MM-DD)")
		return
	}
	ins, err := h.svc.Schedule(r.Context(), body.PropertyID, body.InspectorID, date, uid)
	if err != nil {
		writeServiceError(w, err, "schedule failed")
		return
	}
	httpserver.JSON(w, http.StatusCreated, ins)
}

// List handles GET /api/inspections with optional status/property_id/inspector_id filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var f repo.InspectionFilter
	if s := r.URL.Query().Get("status"); s != "" {
		st := models.InspectionStatus(s)
		f.Status = &st
	}
	if s := r.URL.Query().Get("property_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			httpserver.Error(w, http.StatusBadRequest, "invalid property_id")
			return
		}
		f.PropertyID = &id
	}
	if s := r.URL.Query().Get("inspector_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			httpserver.Error(w, http.StatusBadRequest, "invalid inspector_id")
			return
		}
		f.InspectorID = &id
	}
	list, err := h.repo.ListInspections(r.Context(), f)
	if err != nil {
		status, msg := httpserver.PGErrorMessage(err, "list failed")
		httpserver.Error(w, status, msg)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{"content": list})
}

// Get handles GET /api/inspections/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	ins, err := h.repo.GetInspection(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "load failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, ins)
}

// Save handles PUT /api/inspections/{id}. Any progress value in the body is
// dropped on the floor; the service recomputes it from checklist state.
// The optional updated_at field is a compare-and-swap token: when present,
// a concurrent write since that timestamp yields 409 instead of a silent
// last-write-wins.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body struct {
		Notes           *string                   `json:"notes"`
		Progress        *int                      `json:"progress"` // accepted, ignored
		Checklist       checklist.State           `json:"checklist"`
		CustomAmenities []checklist.CustomAmenity `json:"custom_amenities"`
		Photos          []string                  `json:"photos"`
		Location        *models.Geo               `json:"location"`
		UpdatedAt       *time.Time                `json:"updated_at"`
	}
	if err := decode(w, r, &body); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	ins, err := h.svc.Save(r.Context(), id, inspection.SavePatch{
		Notes:             body.Notes,
		Checklist:         body.Checklist,
		CustomAmenities:   body.CustomAmenities,
		Photos:            body.Photos,
		Location:          body.Location,
		ExpectedUpdatedAt: body.UpdatedAt,
	})
	if err != nil {
		writeServiceError(w, err, "save failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, ins)
}

// PatchItem handles PATCH /api/inspections/items/{itemID}.
// Body: { "inspection_id": "...", "status": "pass", "comment": "..." }
// Item ids are template-scoped, so the inspection id travels in the body.
func (h *Handler) PatchItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	if itemID == "" {
		httpserver.Error(w, http.StatusBadRequest, "missing item id")
		return
	}
	var body struct {
		InspectionID uuid.UUID `json:"inspection_id"`
		Status       string    `json:"status"`
		Comment      string    `json:"comment"`
	}
	if err := decode(w, r, &body); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if body.InspectionID == uuid.Nil {
		httpserver.Error(w, http.StatusBadRequest, "inspection_id required")
		return
	}
	ins, err := h.svc.PatchItem(r.Context(), body.InspectionID, itemID,
		checklist.NormalizeStatus(body.Status), body.Comment)
	if err != nil {
		writeServiceError(w, err, "item update failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{
		"item_id":  itemID,
		"status":   checklist.WireStatus(ins.Checklist.ItemStatus(itemID)),
		"comment":  ins.Checklist.ItemComment(itemID),
		"progress": ins.Progress,
	})
}

// Start handles POST /api/inspections/{id}/start.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Start)
}

// Complete handles POST /api/inspections/{id}/complete.
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Complete)
}

// Cancel handles POST /api/inspections/{id}/cancel.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Cancel)
}

// Delete handles DELETE /api/inspections/{id} (admin only, direct persistence op).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.repo.DeleteInspection(r.Context(), id); err != nil {
		writeServiceError(w, err, "delete failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Upload handles POST /api/photos/upload/{inspectionID} (multipart form,
// one or more files in the "photos" field, optional lat/lng fields for a
// capture location). A failed photo is logged and skipped; the rest of the
// batch still goes through.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "inspectionID"))
	if err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid inspection id")
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	headers := r.MultipartForm.File["photos"]
	if len(headers) == 0 {
		headers = r.MultipartForm.File["photo"]
	}
	if len(headers) == 0 {
		httpserver.Error(w, http.StatusBadRequest, "no photo files in request")
		return
	}

	var loc *models.Geo
	if lat, lng := r.FormValue("lat"), r.FormValue("lng"); lat != "" && lng != "" {
		latF, errLat := strconv.ParseFloat(lat, 64)
		lngF, errLng := strconv.ParseFloat(lng, 64)
		if errLat == nil && errLng == nil {
			loc = &models.Geo{Lat: latF, Lng: lngF}
		}
	}

	var (
		urls   []string
		failed int
	)
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			slog.WarnContext(r.Context(), "photo open failed", "filename", header.Filename, "err", err)
			failed++
			continue
		}
		url, err := h.photos.Put(r.Context(), id.String(), header.Filename, file, header.Size)
		file.Close()
		if err != nil {
			slog.WarnContext(r.Context(), "photo store failed", "filename", header.Filename, "err", err)
			failed++
			continue
		}
		urls = append(urls, url)
	}
	if len(urls) == 0 {
		httpserver.Error(w, http.StatusInternalServerError, "all photo uploads failed")
		return
	}

	var ins models.Inspection
	for i, url := range urls {
		var attachLoc *models.Geo
		if i == len(urls)-1 {
			attachLoc = loc
		}
		ins, err = h.svc.AttachPhoto(r.Context(), id, url, attachLoc)
		if err != nil {
			writeServiceError(w, err, "photo attach failed")
			return
		}
	}
	httpserver.JSON(w, http.StatusCreated, map[string]any{
		"urls":     urls,
		"failed":   failed,
		"photos":   ins.Photos,
		"location": ins.Location,
	})
}

// Template handles GET /api/checklist/template?property_type=Residential.
func (h *Handler) Template(w http.ResponseWriter, r *http.Request) {
	tmpl := checklist.Template(r.URL.Query().Get("property_type"))
	httpserver.JSON(w, http.StatusOK, map[string]any{
		"categories": tmpl,
		"item_count": checklist.CountItems(tmpl),
	})
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, id uuid.UUID) (models.Inspection, error)) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	ins, err := op(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "transition failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, ins)
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid inspection id")
		return uuid.Nil, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	return dec.Decode(dst)
}

// parseDate accepts YYYY-MM-DD or RFC 3339. Legacy exports sometimes carry a
// literal "*NULL*" marker in date fields; strip it so those payloads fail with
// a clear 400 instead of a parse error on the marker itself.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "*NULL*", ""))
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var verr *inspection.ValidationError
	var terr *inspection.InvalidTransitionError
	switch {
	case errors.As(err, &verr):
		httpserver.Error(w, http.StatusBadRequest, verr.Error())
	case errors.As(err, &terr):
		httpserver.Error(w, http.StatusConflict, terr.Error())
	case errors.Is(err, models.ErrStaleSave):
		httpserver.Error(w, http.StatusConflict, "inspection was modified by another request")
	case errors.Is(err, models.ErrInspectionNotFound),
		errors.Is(err, models.ErrPropertyNotFound),
		errors.Is(err, models.ErrInspectorNotFound):
		httpserver.Error(w, http.StatusNotFound, err.Error())
	default:
		status, msg := httpserver.PGErrorMessage(err, fallback)
		httpserver.Error(w, status, msg)
	}
}
