package inspections

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propcheck/internal/checklist"
	"propcheck/internal/inspection"
	"propcheck/internal/models"
	"propcheck/internal/repo"
)

// fakeRepo embeds the interface so only the methods these tests hit need
// real implementations; anything else panics loudly.
type fakeRepo struct {
	repo.Repo
	ins  models.Inspection
	prop models.Property
}

func (f *fakeRepo) GetInspection(_ context.Context, id uuid.UUID) (models.Inspection, error) {
	if id != f.ins.ID {
		return models.Inspection{}, models.ErrInspectionNotFound
	}
	return f.ins, nil
}

func (f *fakeRepo) UpdateInspection(_ context.Context, ins models.Inspection, expectedUpdatedAt *time.Time) (models.Inspection, error) {
	if expectedUpdatedAt != nil && !f.ins.UpdatedAt.Equal(*expectedUpdatedAt) {
		return models.Inspection{}, models.ErrStaleSave
	}
	ins.UpdatedAt = time.Now().UTC()
	f.ins = ins
	return ins, nil
}

func (f *fakeRepo) GetProperty(_ context.Context, id uuid.UUID) (models.Property, error) {
	if id != f.prop.ID {
		return models.Property{}, models.ErrPropertyNotFound
	}
	return f.prop, nil
}

func (f *fakeRepo) CreateNotification(_ context.Context, _ models.Notification) error {
	return nil
}

func newTestRouter(t *testing.T) (*chi.Mux, *fakeRepo) {
	t.Helper()
	prop := models.Property{ID: uuid.New(), Name: "Unit 4", PropertyType: checklist.PropertyTypeResidential}
	f := &fakeRepo{
		prop: prop,
		ins: models.Inspection{
			ID:            uuid.New(),
			PropertyID:    prop.ID,
			InspectorID:   uuid.New(),
			Status:        models.StatusInProgress,
			Checklist:     checklist.NewState(),
			Photos:        []string{},
			ScheduledDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt:     time.Now().UTC(),
		},
	}
	h := New(f, inspection.NewService(f), nil)

	r := chi.NewRouter()
	r.Put("/api/inspections/{id}", h.Save)
	r.Patch("/api/inspections/items/{itemID}", h.PatchItem)
	r.Get("/api/checklist/template", h.Template)
	return r, f
}

func TestSaveIgnoresClientProgressAndTranslatesPending(t *testing.T) {
	r, f := newTestRouter(t)

	// client sends a forged progress and the legacy "pending" spelling
	body := `{
		"progress": 999,
		"checklist": {
			"ext-roof": {"status": "pass"},
			"ext-gutters": {"status": "pending", "comment": "recheck"}
		}
	}`
	req := httptest.NewRequest(http.MethodPut, "/api/inspections/"+f.ins.ID.String(), strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		Progress  int `json:"progress"`
		Checklist map[string]struct {
			Status  string `json:"status"`
			Comment string `json:"comment"`
		} `json:"checklist"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	// 2 records of 20 template items, regardless of the 999
	assert.Equal(t, 10, got.Progress)
	assert.Equal(t, "pass", got.Checklist["ext-roof"].Status)
	// unchecked-with-comment survives and renders as pending on the wire
	assert.Equal(t, "pending", got.Checklist["ext-gutters"].Status)
	assert.Equal(t, "recheck", got.Checklist["ext-gutters"].Comment)
}

func TestSaveStaleTokenConflicts(t *testing.T) {
	r, f := newTestRouter(t)

	stale := f.ins.UpdatedAt.Add(-time.Hour).Format(time.RFC3339Nano)
	body := `{"notes": "late edit", "updated_at": "` + stale + `"}`
	req := httptest.NewRequest(http.MethodPut, "/api/inspections/"+f.ins.ID.String(), strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPatchItemRequiresInspectionID(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPatch, "/api/inspections/items/ext-roof",
		strings.NewReader(`{"status": "pass"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatchItemRoundTrip(t *testing.T) {
	r, f := newTestRouter(t)

	body := `{"inspection_id": "` + f.ins.ID.String() + `", "status": "fail", "comment": "loose tiles"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/inspections/items/ext-roof", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		ItemID   string `json:"item_id"`
		Status   string `json:"status"`
		Comment  string `json:"comment"`
		Progress int    `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ext-roof", got.ItemID)
	assert.Equal(t, "fail", got.Status)
	assert.Equal(t, "loose tiles", got.Comment)
	assert.Equal(t, 5, got.Progress)
}

func TestTemplateEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/checklist/template?property_type=Commercial", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Categories []checklist.Category `json:"categories"`
		ItemCount  int                  `json:"item_count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, got.ItemCount, checklist.CountItems(got.Categories))
	assert.NotZero(t, got.ItemCount)
}

func TestParseDateScrubsLegacyNullMarkers(t *testing.T) {
	got, err := parseDate("*NULL*2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = parseDate("*NULL*")
	assert.Error(t, err)

	_, err = parseDate("soon")
	assert.Error(t, err)

	got, err = parseDate("2026-03-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Hour())
}
