package repo

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"propcheck/internal/models"
)

// ---------------- Notifications ----------------

func (p *pgRepo) CreateNotification(ctx context.Context, n models.Notification) error {
	slog.DebugContext(ctx, "CreateNotification", "user_id", n.UserID.String(), "kind", n.Kind)
	_, err := p.db.Exec(ctx,
		`INSERT INTO notifications (user_id, kind, message) VALUES ($1, $2, $3)`,
		n.UserID, n.Kind, n.Message)
	if err != nil {
		slog.ErrorContext(ctx, "CreateNotification failed", "err", err)
	}
	return err
}

func (p *pgRepo) ListNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]models.Notification, error) {
	q := `SELECT id, user_id, kind, message, read, created_at
	      FROM notifications WHERE user_id = $1`
	if unreadOnly {
		q += ` AND NOT read`
	}
	q += ` ORDER BY created_at DESC LIMIT 100`
	rows, err := p.db.Query(ctx, q, userID)
	if err != nil {
		slog.ErrorContext(ctx, "ListNotifications failed", "err", err)
		return nil, err
	}
	defer rows.Close()
	out := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Kind, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (p *pgRepo) MarkNotificationRead(ctx context.Context, userID, id uuid.UUID) error {
	slog.DebugContext(ctx, "MarkNotificationRead", "notification_id", id.String())
	_, err := p.db.Exec(ctx,
		`UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`,
		id, userID)
	return err
}
