package repo

import (
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"

	"propcheck/internal/checklist"
	"propcheck/internal/models"
)

// notFound maps pgx.ErrNoRows onto a domain sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel
	}
	return err
}

// marshalJSONB encodes v for a jsonb column, falling back to the given
// literal on nil input so columns keep their empty-container shape.
func marshalJSONB(v any, empty string) []byte {
	if v == nil {
		return []byte(empty)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return []byte(empty)
	}
	return b
}

func unmarshalChecklist(b []byte) checklist.State {
	s := checklist.NewState()
	if len(b) == 0 {
		return s
	}
	_ = json.Unmarshal(b, &s)
	return s
}

func unmarshalAmenities(b []byte) []checklist.CustomAmenity {
	out := []checklist.CustomAmenity{}
	if len(b) == 0 {
		return out
	}
	_ = json.Unmarshal(b, &out)
	return out
}

func unmarshalPhotos(b []byte) []string {
	out := []string{}
	if len(b) == 0 {
		return out
	}
	_ = json.Unmarshal(b, &out)
	return out
}

func unmarshalGeo(b []byte) *models.Geo {
	if len(b) == 0 {
		return nil
	}
	var g models.Geo
	if err := json.Unmarshal(b, &g); err != nil {
		return nil
	}
	return &g
}
