package repo

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"propcheck/internal/models"
)

// ---------------- Inspectors ----------------

const inspectorColumns = `id, COALESCE(user_id, '00000000-0000-0000-0000-000000000000'::uuid), name, email, phone, active, created_at`

func (p *pgRepo) CreateInspector(ctx context.Context, i models.Inspector) (models.Inspector, error) {
	slog.DebugContext(ctx, "CreateInspector", "email", i.Email)
	var user any
	if i.UserID != uuid.Nil {
		user = i.UserID
	}
	var out models.Inspector
	err := p.db.QueryRow(ctx,
		`INSERT INTO inspectors (user_id, name, email, phone, active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+inspectorColumns,
		user, i.Name, i.Email, i.Phone, i.Active,
	).Scan(&out.ID, &out.UserID, &out.Name, &out.Email, &out.Phone, &out.Active, &out.CreatedAt)
	if err != nil {
		slog.ErrorContext(ctx, "CreateInspector failed", "err", err)
		return models.Inspector{}, err
	}
	return out, nil
}

func (p *pgRepo) GetInspector(ctx context.Context, id uuid.UUID) (models.Inspector, error) {
	slog.DebugContext(ctx, "GetInspector", "inspector_id", id.String())
	var out models.Inspector
	err := p.db.QueryRow(ctx,
		`SELECT `+inspectorColumns+` FROM inspectors WHERE id = $1`, id,
	).Scan(&out.ID, &out.UserID, &out.Name, &out.Email, &out.Phone, &out.Active, &out.CreatedAt)
	if err != nil {
		return models.Inspector{}, notFound(err, models.ErrInspectorNotFound)
	}
	return out, nil
}

func (p *pgRepo) ListInspectors(ctx context.Context, activeOnly bool) ([]models.Inspector, error) {
	q := `SELECT ` + inspectorColumns + ` FROM inspectors`
	if activeOnly {
		q += ` WHERE active`
	}
	q += ` ORDER BY name`
	rows, err := p.db.Query(ctx, q)
	if err != nil {
		slog.ErrorContext(ctx, "ListInspectors failed", "err", err)
		return nil, err
	}
	defer rows.Close()
	out := []models.Inspector{}
	for rows.Next() {
		var i models.Inspector
		if err := rows.Scan(&i.ID, &i.UserID, &i.Name, &i.Email, &i.Phone, &i.Active, &i.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (p *pgRepo) UpdateInspector(ctx context.Context, i models.Inspector) (models.Inspector, error) {
	slog.DebugContext(ctx, "UpdateInspector", "inspector_id", i.ID.String())
	var user any
	if i.UserID != uuid.Nil {
		user = i.UserID
	}
	var out models.Inspector
	err := p.db.QueryRow(ctx,
		`UPDATE inspectors
		 SET user_id = $2, name = $3, email = $4, phone = $5, active = $6
		 WHERE id = $1
		 RETURNING `+inspectorColumns,
		i.ID, user, i.Name, i.Email, i.Phone, i.Active,
	).Scan(&out.ID, &out.UserID, &out.Name, &out.Email, &out.Phone, &out.Active, &out.CreatedAt)
	if err != nil {
		return models.Inspector{}, notFound(err, models.ErrInspectorNotFound)
	}
	return out, nil
}
