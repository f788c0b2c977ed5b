package repo

import (
	"context"
	"log/slog"
	"net/netip"
	"strings"

	"github.com/google/uuid"

	"propcheck/internal/models"
)

// ---------------- Users ----------------

const userColumns = `id, email, name, role, phone, avatar_url, created_at`

func (p *pgRepo) CreateUser(ctx context.Context, email, name string, role models.Role) (models.User, error) {
	slog.DebugContext(ctx, "CreateUser", "email", email, "role", string(role))
	var u models.User
	err := p.db.QueryRow(ctx,
		`INSERT INTO users (email, name, role) VALUES ($1, $2, $3)
		 RETURNING `+userColumns,
		strings.ToLower(email), name, string(role),
	).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Phone, &u.AvatarURL, &u.CreatedAt)
	if err != nil {
		slog.ErrorContext(ctx, "CreateUser failed", "err", err)
		return models.User{}, err
	}
	return u, nil
}

func (p *pgRepo) GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	slog.DebugContext(ctx, "GetUserByID", "user_id", id.String())
	var u models.User
	err := p.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Phone, &u.AvatarURL, &u.CreatedAt)
	if err != nil {
		return models.User{}, notFound(err, models.ErrUserNotFound)
	}
	return u, nil
}

func (p *pgRepo) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	slog.DebugContext(ctx, "GetUserByEmail", "email", email)
	var u models.User
	err := p.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email),
	).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Phone, &u.AvatarURL, &u.CreatedAt)
	if err != nil {
		return models.User{}, notFound(err, models.ErrUserNotFound)
	}
	return u, nil
}

func (p *pgRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := p.db.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		slog.ErrorContext(ctx, "ListUsers failed", "err", err)
		return nil, err
	}
	defer rows.Close()
	out := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Phone, &u.AvatarURL, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (p *pgRepo) UpdateUserProfile(ctx context.Context, userID uuid.UUID, name *string, avatarURL *string, phone *string) error {
	slog.DebugContext(ctx, "UpdateUserProfile", "user_id", userID.String())
	_, err := p.db.Exec(ctx,
		`UPDATE users SET
		   name       = COALESCE($2, name),
		   avatar_url = COALESCE($3, avatar_url),
		   phone      = COALESCE($4, phone)
		 WHERE id = $1`,
		userID, name, avatarURL, phone)
	return err
}

func (p *pgRepo) SetUserRole(ctx context.Context, userID uuid.UUID, role models.Role) error {
	slog.DebugContext(ctx, "SetUserRole", "user_id", userID.String(), "role", string(role))
	tag, err := p.db.Exec(ctx, `UPDATE users SET role = $2 WHERE id = $1`, userID, string(role))
	if err != nil {
		slog.ErrorContext(ctx, "SetUserRole failed", "err", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

// ---------------- Local credentials ----------------

func (p *pgRepo) CreateLocalCredential(ctx context.Context, uid uuid.UUID, username, phc string) error {
	slog.DebugContext(ctx, "CreateLocalCredential", "user_id", uid.String(), "username", strings.ToLower(username))
	_, err := p.db.Exec(ctx,
		`INSERT INTO local_credentials (user_id, username, password_hash) VALUES ($1, $2, $3)`,
		uid, strings.ToLower(username), phc)
	return err
}

func (p *pgRepo) GetLocalCredentialByUsername(ctx context.Context, username string) (models.LocalCredential, models.User, error) {
	slog.DebugContext(ctx, "GetLocalCredentialByUsername", "username", strings.ToLower(username))
	var (
		lc models.LocalCredential
		u  models.User
	)
	err := p.db.QueryRow(ctx,
		`SELECT c.user_id, c.username, c.password_hash,
		        u.id, u.email, u.name, u.role, u.phone, u.avatar_url, u.created_at
		 FROM local_credentials c
		 JOIN users u ON u.id = c.user_id
		 WHERE c.username = $1`,
		strings.ToLower(username),
	).Scan(&lc.UserID, &lc.Username, &lc.PasswordHash,
		&u.ID, &u.Email, &u.Name, &u.Role, &u.Phone, &u.AvatarURL, &u.CreatedAt)
	if err != nil {
		return models.LocalCredential{}, models.User{}, notFound(err, models.ErrUserNotFound)
	}
	return lc, u, nil
}

// -------- Login attempt recording --------

func (p *pgRepo) RecordLoginSuccess(ctx context.Context, username string, ip netip.Addr) error {
	slog.DebugContext(ctx, "RecordLoginSuccess", "username", strings.ToLower(username), "ip", ip.String())
	_, err := p.db.Exec(ctx,
		`INSERT INTO login_attempts (username, ip, success) VALUES ($1, $2, true)`,
		strings.ToLower(username), ip)
	return err
}

func (p *pgRepo) RecordLoginFailure(ctx context.Context, username string, ip netip.Addr) error {
	slog.DebugContext(ctx, "RecordLoginFailure", "username", strings.ToLower(username), "ip", ip.String())
	_, err := p.db.Exec(ctx,
		`INSERT INTO login_attempts (username, ip, success) VALUES ($1, $2, false)`,
		strings.ToLower(username), ip)
	return err
}
