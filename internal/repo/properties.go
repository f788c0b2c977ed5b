package repo

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"propcheck/internal/models"
)

// ---------------- Properties ----------------

const propertyColumns = `id, name, address, property_type, COALESCE(owner_id, '00000000-0000-0000-0000-000000000000'::uuid), created_at, updated_at`

func (p *pgRepo) CreateProperty(ctx context.Context, pr models.Property) (models.Property, error) {
	slog.DebugContext(ctx, "CreateProperty", "name", pr.Name, "type", pr.PropertyType)
	var owner any
	if pr.OwnerID != uuid.Nil {
		owner = pr.OwnerID
	}
	var out models.Property
	err := p.db.QueryRow(ctx,
		`INSERT INTO properties (name, address, property_type, owner_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+propertyColumns,
		pr.Name, pr.Address, pr.PropertyType, owner,
	).Scan(&out.ID, &out.Name, &out.Address, &out.PropertyType, &out.OwnerID, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		slog.ErrorContext(ctx, "CreateProperty failed", "err", err)
		return models.Property{}, err
	}
	return out, nil
}

func (p *pgRepo) GetProperty(ctx context.Context, id uuid.UUID) (models.Property, error) {
	slog.DebugContext(ctx, "GetProperty", "property_id", id.String())
	var out models.Property
	err := p.db.QueryRow(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE id = $1`, id,
	).Scan(&out.ID, &out.Name, &out.Address, &out.PropertyType, &out.OwnerID, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return models.Property{}, notFound(err, models.ErrPropertyNotFound)
	}
	return out, nil
}

func (p *pgRepo) ListProperties(ctx context.Context, ownerID *uuid.UUID) ([]models.Property, error) {
	q := `SELECT ` + propertyColumns + ` FROM properties`
	args := []any{}
	if ownerID != nil {
		q += ` WHERE owner_id = $1`
		args = append(args, *ownerID)
	}
	q += ` ORDER BY created_at DESC`
	rows, err := p.db.Query(ctx, q, args...)
	if err != nil {
		slog.ErrorContext(ctx, "ListProperties failed", "err", err)
		return nil, err
	}
	defer rows.Close()
	out := []models.Property{}
	for rows.Next() {
		var pr models.Property
		if err := rows.Scan(&pr.ID, &pr.Name, &pr.Address, &pr.PropertyType, &pr.OwnerID, &pr.CreatedAt, &pr.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	return out, rows.Err()
}

func (p *pgRepo) UpdateProperty(ctx context.Context, pr models.Property) (models.Property, error) {
	slog.DebugContext(ctx, "UpdateProperty", "property_id", pr.ID.String())
	var owner any
	if pr.OwnerID != uuid.Nil {
		owner = pr.OwnerID
	}
	var out models.Property
	err := p.db.QueryRow(ctx,
		`UPDATE properties
		 SET name = $2, address = $3, property_type = $4, owner_id = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING `+propertyColumns,
		pr.ID, pr.Name, pr.Address, pr.PropertyType, owner,
	).Scan(&out.ID, &out.Name, &out.Address, &out.PropertyType, &out.OwnerID, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return models.Property{}, notFound(err, models.ErrPropertyNotFound)
	}
	return out, nil
}

func (p *pgRepo) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	slog.DebugContext(ctx, "DeleteProperty", "property_id", id.String())
	tag, err := p.db.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		slog.ErrorContext(ctx, "DeleteProperty failed", "err", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrPropertyNotFound
	}
	return nil
}
