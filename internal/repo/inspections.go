package repo

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"propcheck/internal/models"
)

// ---------------- Inspections ----------------

const inspectionColumns = `id, property_id, inspector_id, status, checklist, custom_amenities,
	notes, photos, progress, location, scheduled_date, completed_date, created_by, created_at, updated_at`

func scanInspection(row pgx.Row) (models.Inspection, error) {
	var (
		ins       models.Inspection
		checklist []byte
		amenities []byte
		photos    []byte
		location  []byte
	)
	err := row.Scan(&ins.ID, &ins.PropertyID, &ins.InspectorID, &ins.Status,
		&checklist, &amenities, &ins.Notes, &photos, &ins.Progress, &location,
		&ins.ScheduledDate, &ins.CompletedDate, &ins.CreatedBy, &ins.CreatedAt, &ins.UpdatedAt)
	if err != nil {
		return models.Inspection{}, err
	}
	ins.Checklist = unmarshalChecklist(checklist)
	ins.CustomAmenities = unmarshalAmenities(amenities)
	ins.Photos = unmarshalPhotos(photos)
	ins.Location = unmarshalGeo(location)
	return ins, nil
}

func (p *pgRepo) CreateInspection(ctx context.Context, ins models.Inspection) (models.Inspection, error) {
	slog.DebugContext(ctx, "CreateInspection",
		"property_id", ins.PropertyID.String(), "inspector_id", ins.InspectorID.String())
	row := p.db.QueryRow(ctx,
		`INSERT INTO inspections
		   (property_id, inspector_id, status, checklist, custom_amenities, notes, photos, progress, scheduled_date, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+inspectionColumns,
		ins.PropertyID, ins.InspectorID, string(ins.Status),
		marshalJSONB(ins.Checklist, "{}"), marshalJSONB(ins.CustomAmenities, "[]"),
		ins.Notes, marshalJSONB(ins.Photos, "[]"), ins.Progress, ins.ScheduledDate, ins.CreatedBy)
	out, err := scanInspection(row)
	if err != nil {
		slog.ErrorContext(ctx, "CreateInspection failed", "err", err)
		return models.Inspection{}, err
	}
	return out, nil
}

func (p *pgRepo) GetInspection(ctx context.Context, id uuid.UUID) (models.Inspection, error) {
	slog.DebugContext(ctx, "GetInspection", "inspection_id", id.String())
	row := p.db.QueryRow(ctx,
		`SELECT `+inspectionColumns+` FROM inspections WHERE id = $1`, id)
	out, err := scanInspection(row)
	if err != nil {
		return models.Inspection{}, notFound(err, models.ErrInspectionNotFound)
	}
	return out, nil
}

func (p *pgRepo) ListInspections(ctx context.Context, f InspectionFilter) ([]models.Inspection, error) {
	q := `SELECT ` + inspectionColumns + ` FROM inspections WHERE true`
	args := []any{}
	add := func(clause string, v any) {
		args = append(args, v)
		q += ` AND ` + clause + ` = $` + strconv.Itoa(len(args))
	}
	if f.Status != nil {
		add("status", string(*f.Status))
	}
	if f.PropertyID != nil {
		add("property_id", *f.PropertyID)
	}
	if f.InspectorID != nil {
		add("inspector_id", *f.InspectorID)
	}
	if f.CreatedBy != nil {
		add("created_by", *f.CreatedBy)
	}
	q += ` ORDER BY scheduled_date DESC, created_at DESC`

	rows, err := p.db.Query(ctx, q, args...)
	if err != nil {
		slog.ErrorContext(ctx, "ListInspections failed", "err", err)
		return nil, err
	}
	defer rows.Close()
	out := []models.Inspection{}
	for rows.Next() {
		ins, err := scanInspection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ins)
	}
	return out, rows.Err()
}

// UpdateInspection writes the full aggregate. Property, inspector, creator
// and scheduled date are immutable after scheduling and are deliberately not
// in the SET list. With expectedUpdatedAt set the statement compare-and-swaps
// on updated_at; a miss on an existing row reports models.ErrStaleSave.
func (p *pgRepo) UpdateInspection(ctx context.Context, ins models.Inspection, expectedUpdatedAt *time.Time) (models.Inspection, error) {
	slog.DebugContext(ctx, "UpdateInspection", "inspection_id", ins.ID.String(), "progress", ins.Progress)

	q := `UPDATE inspections
	      SET status = $2, checklist = $3, custom_amenities = $4, notes = $5,
	          photos = $6, progress = $7, location = $8, completed_date = $9,
	          updated_at = now()
	      WHERE id = $1`
	args := []any{ins.ID, string(ins.Status),
		marshalJSONB(ins.Checklist, "{}"), marshalJSONB(ins.CustomAmenities, "[]"),
		ins.Notes, marshalJSONB(ins.Photos, "[]"), ins.Progress,
		locationJSONB(ins.Location), ins.CompletedDate}
	if expectedUpdatedAt != nil {
		args = append(args, *expectedUpdatedAt)
		q += ` AND updated_at = $10`
	}
	q += ` RETURNING ` + inspectionColumns

	out, err := scanInspection(p.db.QueryRow(ctx, q, args...))
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		slog.ErrorContext(ctx, "UpdateInspection failed", "err", err)
		return models.Inspection{}, err
	}
	// No row matched: either the inspection is gone or the CAS lost.
	if expectedUpdatedAt != nil {
		if _, gerr := p.GetInspection(ctx, ins.ID); gerr == nil {
			return models.Inspection{}, models.ErrStaleSave
		}
	}
	return models.Inspection{}, models.ErrInspectionNotFound
}

func (p *pgRepo) DeleteInspection(ctx context.Context, id uuid.UUID) error {
	slog.DebugContext(ctx, "DeleteInspection", "inspection_id", id.String())
	tag, err := p.db.Exec(ctx, `DELETE FROM inspections WHERE id = $1`, id)
	if err != nil {
		slog.ErrorContext(ctx, "DeleteInspection failed", "err", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrInspectionNotFound
	}
	return nil
}

func locationJSONB(g *models.Geo) any {
	if g == nil {
		return nil
	}
	return marshalJSONB(g, "null")
}

