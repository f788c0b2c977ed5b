// internal/repo/repo.go
package repo

import (
	"context"
	"net/netip"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"propcheck/internal/models"
)

// Repo defines the methods the rest of the app uses.
type Repo interface {
	// Users
	CreateUser(ctx context.Context, email, name string, role models.Role) (models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUserProfile(ctx context.Context, userID uuid.UUID, name *string, avatarURL *string, phone *string) error
	SetUserRole(ctx context.Context, userID uuid.UUID, role models.Role) error

	// Local auth
	CreateLocalCredential(ctx context.Context, uid uuid.UUID, username, phc string) error
	GetLocalCredentialByUsername(ctx context.Context, username string) (models.LocalCredential, models.User, error)
	RecordLoginSuccess(ctx context.Context, username string, ip netip.Addr) error
	RecordLoginFailure(ctx context.Context, username string, ip netip.Addr) error

	// Properties
	CreateProperty(ctx context.Context, p models.Property) (models.Property, error)
	GetProperty(ctx context.Context, id uuid.UUID) (models.Property, error)
	ListProperties(ctx context.Context, ownerID *uuid.UUID) ([]models.Property, error)
	UpdateProperty(ctx context.Context, p models.Property) (models.Property, error)
	DeleteProperty(ctx context.Context, id uuid.UUID) error

	// Inspectors
	CreateInspector(ctx context.Context, i models.Inspector) (models.Inspector, error)
	GetInspector(ctx context.Context, id uuid.UUID) (models.Inspector, error)
	ListInspectors(ctx context.Context, activeOnly bool) ([]models.Inspector, error)
	UpdateInspector(ctx context.Context, i models.Inspector) (models.Inspector, error)

	// Inspections
	CreateInspection(ctx context.Context, ins models.Inspection) (models.Inspection, error)
	GetInspection(ctx context.Context, id uuid.UUID) (models.Inspection, error)
	ListInspections(ctx context.Context, f InspectionFilter) ([]models.Inspection, error)
	UpdateInspection(ctx context.Context, ins models.Inspection, expectedUpdatedAt *time.Time) (models.Inspection, error)
	DeleteInspection(ctx context.Context, id uuid.UUID) error

	// Notifications
	CreateNotification(ctx context.Context, n models.Notification) error
	ListNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, id uuid.UUID) error
}

// InspectionFilter narrows ListInspections. Nil fields match everything.
type InspectionFilter struct {
	Status      *models.InspectionStatus
	PropertyID  *uuid.UUID
	InspectorID *uuid.UUID
	CreatedBy   *uuid.UUID
}

// pgRepo implements Repo over a pgx pool.
type pgRepo struct{ db *pgxpool.Pool }

func New(db *pgxpool.Pool) Repo { return &pgRepo{db: db} }
