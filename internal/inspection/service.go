// internal/inspection/service.go
package inspection

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"propcheck/internal/checklist"
	"propcheck/internal/models"
)

// Repository is the persistence capability the service needs. The pg-backed
// repo in internal/repo satisfies it; tests plug in mocks.
type Repository interface {
	GetInspection(ctx context.Context, id uuid.UUID) (models.Inspection, error)
	CreateInspection(ctx context.Context, ins models.Inspection) (models.Inspection, error)
	// UpdateInspection persists the aggregate. When expectedUpdatedAt is
	// non-nil the update is a compare-and-swap on updated_at and fails with
	// models.ErrStaleSave if another writer got there first.
	UpdateInspection(ctx context.Context, ins models.Inspection, expectedUpdatedAt *time.Time) (models.Inspection, error)
	GetProperty(ctx context.Context, id uuid.UUID) (models.Property, error)
	GetInspector(ctx context.Context, id uuid.UUID) (models.Inspector, error)
	CreateNotification(ctx context.Context, n models.Notification) error
}

// ValidationError reports missing or malformed caller input. Reported before
// any persistence attempt and never retried.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// Service owns the inspection aggregate lifecycle: scheduling, checklist
// mutation, progress recomputation and status transitions.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(r Repository) *Service {
	return &Service{repo: r, now: time.Now}
}

// Schedule creates a new inspection aggregate in the scheduled state with
// progress 0. Property, inspector and date are required and immutable
// afterwards.
func (s *Service) Schedule(ctx context.Context, propertyID, inspectorID uuid.UUID, scheduledDate time.Time, createdBy uuid.UUID) (models.Inspection, error) {
	if propertyID == uuid.Nil {
		return models.Inspection{}, &ValidationError{Msg: "property_id required"}
	}
	if inspectorID == uuid.Nil {
		return models.Inspection{}, &ValidationError{Msg: "inspector_id required"}
	}
	if scheduledDate.IsZero() {
		return models.Inspection{}, &ValidationError{Msg: "scheduled_date required"}
	}

	prop, err := s.repo.GetProperty(ctx, propertyID)
	if err != nil {
		return models.Inspection{}, err
	}
	insp, err := s.repo.GetInspector(ctx, inspectorID)
	if err != nil {
		return models.Inspection{}, err
	}

	ins := models.Inspection{
		PropertyID:    propertyID,
		InspectorID:   inspectorID,
		Status:        models.StatusScheduled,
		Checklist:     checklist.NewState(),
		Photos:        []string{},
		Progress:      0,
		ScheduledDate: scheduledDate,
		CreatedBy:     createdBy,
	}
	created, err := s.repo.CreateInspection(ctx, ins)
	if err != nil {
		return models.Inspection{}, err
	}
	slog.InfoContext(ctx, "inspection scheduled",
		"inspection_id", created.ID.String(), "property_id", propertyID.String(), "inspector_id", inspectorID.String())

	s.notify(ctx, insp.UserID, "inspection_scheduled",
		fmt.Sprintf("New inspection scheduled for %s on %s", prop.Name, scheduledDate.Format("2006-01-02")))
	return created, nil
}

// SavePatch carries the mutable aggregate fields for Save. Nil slices and
// pointers mean "leave unchanged". Any progress value the client sent has
// already been dropped by the handler; Save recomputes it unconditionally.
type SavePatch struct {
	Notes             *string
	Checklist         checklist.State
	CustomAmenities   []checklist.CustomAmenity
	Photos            []string
	Location          *models.Geo
	ExpectedUpdatedAt *time.Time
}

// Save merges the patch into the stored aggregate and persists it with a
// freshly computed progress.
func (s *Service) Save(ctx context.Context, id uuid.UUID, patch SavePatch) (models.Inspection, error) {
	ins, err := s.repo.GetInspection(ctx, id)
	if err != nil {
		return models.Inspection{}, err
	}
	if patch.Notes != nil {
		ins.Notes = sanitizeNotes(*patch.Notes)
	}
	if patch.Checklist != nil {
		// Client-supplied maps can carry explicit untouched records that
		// SetItem would never have stored; drop them before they count
		// toward progress.
		patch.Checklist.Normalize()
		ins.Checklist = patch.Checklist
	}
	if patch.CustomAmenities != nil {
		amenities := make([]checklist.CustomAmenity, 0, len(patch.CustomAmenities))
		for _, a := range patch.CustomAmenities {
			if strings.TrimSpace(a.Name) == "" {
				return models.Inspection{}, &ValidationError{Msg: "amenity name required"}
			}
			if !a.Status.Valid() {
				a.Status = checklist.StatusUnchecked
			}
			amenities = append(amenities, a)
		}
		ins.CustomAmenities = amenities
	}
	if patch.Photos != nil {
		ins.Photos = patch.Photos
	}
	if patch.Location != nil {
		ins.Location = patch.Location
	}
	return s.persist(ctx, ins, patch.ExpectedUpdatedAt)
}

// PatchItem updates a single checklist item and re-derives progress, for
// granular per-item persistence independent of a full aggregate save.
func (s *Service) PatchItem(ctx context.Context, id uuid.UUID, itemID string, status checklist.ItemStatus, comment string) (models.Inspection, error) {
	if strings.TrimSpace(itemID) == "" {
		return models.Inspection{}, &ValidationError{Msg: "item id required"}
	}
	ins, err := s.repo.GetInspection(ctx, id)
	if err != nil {
		return models.Inspection{}, err
	}
	if ins.Checklist == nil {
		ins.Checklist = checklist.NewState()
	}
	ins.Checklist.SetItem(itemID, status, comment)
	return s.persist(ctx, ins, nil)
}

// AttachPhoto appends an opaque stored photo reference, optionally updating
// the last-known capture location.
func (s *Service) AttachPhoto(ctx context.Context, id uuid.UUID, url string, loc *models.Geo) (models.Inspection, error) {
	ins, err := s.repo.GetInspection(ctx, id)
	if err != nil {
		return models.Inspection{}, err
	}
	ins.Photos = append(ins.Photos, url)
	if loc != nil {
		ins.Location = loc
	}
	return s.persist(ctx, ins, nil)
}

// Start moves the inspection to in_progress.
func (s *Service) Start(ctx context.Context, id uuid.UUID) (models.Inspection, error) {
	return s.transition(ctx, id, models.StatusInProgress)
}

// Cancel moves the inspection to cancelled.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (models.Inspection, error) {
	return s.transition(ctx, id, models.StatusCancelled)
}

// Complete finalizes the inspection: status completed, completed date
// stamped to today, progress recomputed from the final checklist state (not
// forced to 100).
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (models.Inspection, error) {
	ins, err := s.repo.GetInspection(ctx, id)
	if err != nil {
		return models.Inspection{}, err
	}
	if err := Transition(ins.Status, models.StatusCompleted); err != nil {
		return models.Inspection{}, err
	}
	ins.Status = models.StatusCompleted
	done := s.now().UTC().Truncate(24 * time.Hour)
	ins.CompletedDate = &done

	saved, err := s.persist(ctx, ins, nil)
	if err != nil {
		return models.Inspection{}, err
	}
	s.notify(ctx, saved.CreatedBy, "inspection_completed",
		fmt.Sprintf("Inspection %s completed at %d%% checklist coverage", saved.ID, saved.Progress))
	return saved, nil
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, to models.InspectionStatus) (models.Inspection, error) {
	ins, err := s.repo.GetInspection(ctx, id)
	if err != nil {
		return models.Inspection{}, err
	}
	if err := Transition(ins.Status, to); err != nil {
		return models.Inspection{}, err
	}
	ins.Status = to
	return s.persist(ctx, ins, nil)
}

// persist recomputes progress from the aggregate's current state and writes
// it. This is the single funnel every mutation goes through, so a stale or
// forged client progress can never reach storage.
func (s *Service) persist(ctx context.Context, ins models.Inspection, expectedUpdatedAt *time.Time) (models.Inspection, error) {
	tmpl, err := s.templateFor(ctx, ins.PropertyID)
	if err != nil {
		return models.Inspection{}, err
	}
	ins.Progress = checklist.ComputeProgress(tmpl, ins.Checklist, ins.CustomAmenities)
	saved, err := s.repo.UpdateInspection(ctx, ins, expectedUpdatedAt)
	if err != nil {
		return models.Inspection{}, err
	}
	return saved, nil
}

func (s *Service) templateFor(ctx context.Context, propertyID uuid.UUID) ([]checklist.Category, error) {
	prop, err := s.repo.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	return checklist.Template(prop.PropertyType), nil
}

// notify is best effort: a failed notification never fails the operation
// that triggered it.
func (s *Service) notify(ctx context.Context, userID uuid.UUID, kind, message string) {
	if userID == uuid.Nil {
		return
	}
	err := s.repo.CreateNotification(ctx, models.Notification{
		UserID:  userID,
		Kind:    kind,
		Message: message,
	})
	if err != nil {
		slog.WarnContext(ctx, "notification create failed", "kind", kind, "err", err)
	}
}

// sanitizeNotes strips legacy *NULL* markers and stray carriage returns that
// older exports left in free-text fields.
func sanitizeNotes(notes string) string {
	notes = strings.ReplaceAll(notes, "*NULL*", "")
	notes = strings.ReplaceAll(notes, "\r\n", "\n")
	return strings.TrimRight(notes, "\n ")
}
