// internal/models/types.go
package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"propcheck/internal/checklist"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSupervisor Role = "supervisor"
	RoleInspector  Role = "inspector"
	RoleClient     Role = "client"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Property is the inspectable unit owned by a client.
type Property struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	PropertyType string    `json:"property_type"`
	OwnerID      uuid.UUID `json:"owner_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Inspector is the assignable field profile. Inspectors usually also exist
// as users with RoleInspector; UserID links the two when they do.
type Inspector struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type InspectionStatus string

const (
	StatusScheduled  InspectionStatus = "scheduled"
	StatusPending    InspectionStatus = "pending"
	StatusInProgress InspectionStatus = "in_progress"
	StatusCompleted  InspectionStatus = "completed"
	StatusCancelled  InspectionStatus = "cancelled"
)

// Geo is the last-known location at the time of the latest photo capture.
type Geo struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Inspection is the persisted aggregate: template-derived checklist state,
// user-added amenities, notes, photo references and the derived progress.
// Progress is recomputed before every save; a client-supplied value is
// never trusted.
type Inspection struct {
	ID              uuid.UUID                 `json:"id"`
	PropertyID      uuid.UUID                 `json:"property_id"`
	InspectorID     uuid.UUID                 `json:"inspector_id"`
	Status          InspectionStatus          `json:"status"`
	Checklist       checklist.State           `json:"checklist"`
	CustomAmenities []checklist.CustomAmenity `json:"custom_amenities"`
	Notes           string                    `json:"notes,omitempty"`
	Photos          []string                  `json:"photos"`
	Progress        int                       `json:"progress"`
	Location        *Geo                      `json:"location,omitempty"`
	ScheduledDate   time.Time                 `json:"scheduled_date"`
	CompletedDate   *time.Time                `json:"completed_date,omitempty"`
	CreatedBy       uuid.UUID                 `json:"created_by"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

type Notification struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type LocalCredential struct {
	UserID       uuid.UUID
	Username     string
	PasswordHash string
}

type Session struct {
	UserID   uuid.UUID
	Role     Role
	Provider string
	Expiry   time.Time
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPropertyNotFound   = errors.New("property not found")
	ErrInspectorNotFound  = errors.New("inspector not found")
	ErrInspectionNotFound = errors.New("inspection not found")
	ErrStaleSave          = errors.New("inspection modified by another writer")
)
