package inspection

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propcheck/internal/checklist"
	"propcheck/internal/models"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	inspections   map[uuid.UUID]models.Inspection
	properties    map[uuid.UUID]models.Property
	inspectors    map[uuid.UUID]models.Inspector
	notifications []models.Notification
	failCAS       bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		inspections: map[uuid.UUID]models.Inspection{},
		properties:  map[uuid.UUID]models.Property{},
		inspectors:  map[uuid.UUID]models.Inspector{},
	}
}

func (f *fakeRepo) GetInspection(_ context.Context, id uuid.UUID) (models.Inspection, error) {
	ins, ok := f.inspections[id]
	if !ok {
		return models.Inspection{}, models.ErrInspectionNotFound
	}
	return ins, nil
}

func (f *fakeRepo) CreateInspection(_ context.Context, ins models.Inspection) (models.Inspection, error) {
	ins.ID = uuid.New()
	now := time.Now().UTC()
	ins.CreatedAt = now
	ins.UpdatedAt = now
	f.inspections[ins.ID] = ins
	return ins, nil
}

func (f *fakeRepo) UpdateInspection(_ context.Context, ins models.Inspection, expectedUpdatedAt *time.Time) (models.Inspection, error) {
	cur, ok := f.inspections[ins.ID]
	if !ok {
		return models.Inspection{}, models.ErrInspectionNotFound
	}
	if expectedUpdatedAt != nil && (f.failCAS || !cur.UpdatedAt.Equal(*expectedUpdatedAt)) {
		return models.Inspection{}, models.ErrStaleSave
	}
	ins.UpdatedAt = time.Now().UTC()
	f.inspections[ins.ID] = ins
	return ins, nil
}

func (f *fakeRepo) GetProperty(_ context.Context, id uuid.UUID) (models.Property, error) {
	p, ok := f.properties[id]
	if !ok {
		return models.Property{}, models.ErrPropertyNotFound
	}
	return p, nil
}

func (f *fakeRepo) GetInspector(_ context.Context, id uuid.UUID) (models.Inspector, error) {
	i, ok := f.inspectors[id]
	if !ok {
		return models.Inspector{}, models.ErrInspectorNotFound
	}
	return i, nil
}

func (f *fakeRepo) CreateNotification(_ context.Context, n models.Notification) error {
	f.notifications = append(f.notifications, n)
	return nil
}

func setup(t *testing.T) (*Service, *fakeRepo, models.Inspection) {
	t.Helper()
	repo := newFakeRepo()
	svc := NewService(repo)

	prop := models.Property{ID: uuid.New(), Name: "12 Oak Lane", Address: "12 Oak Lane", PropertyType: checklist.PropertyTypeResidential}
	insp := models.Inspector{ID: uuid.New(), UserID: uuid.New(), Name: "Dana", Email: "dana@example.com", Active: true}
	repo.properties[prop.ID] = prop
	repo.inspectors[insp.ID] = insp

	ins, err := svc.Schedule(context.Background(), prop.ID, insp.ID,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), uuid.New())
	require.NoError(t, err)
	return svc, repo, ins
}

func TestScheduleCreatesScheduledAtZeroProgress(t *testing.T) {
	_, repo, ins := setup(t)

	assert.Equal(t, models.StatusScheduled, ins.Status)
	assert.Equal(t, 0, ins.Progress)
	assert.Empty(t, ins.Checklist)
	assert.Nil(t, ins.CompletedDate)

	// the assigned inspector gets notified
	require.Len(t, repo.notifications, 1)
	assert.Equal(t, "inspection_scheduled", repo.notifications[0].Kind)
}

func TestScheduleValidation(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	var verr *ValidationError
	_, err := svc.Schedule(ctx, uuid.Nil, uuid.New(), date, uuid.New())
	assert.ErrorAs(t, err, &verr)
	_, err = svc.Schedule(ctx, uuid.New(), uuid.Nil, date, uuid.New())
	assert.ErrorAs(t, err, &verr)
	_, err = svc.Schedule(ctx, uuid.New(), uuid.New(), time.Time{}, uuid.New())
	assert.ErrorAs(t, err, &verr)

	// unknown property surfaces the repo sentinel, not a create
	_, err = svc.Schedule(ctx, uuid.New(), uuid.New(), date, uuid.New())
	assert.ErrorIs(t, err, models.ErrPropertyNotFound)
	assert.Empty(t, repo.inspections)
}

func TestSaveRecomputesProgressServerSide(t *testing.T) {
	svc, repo, ins := setup(t)
	ctx := context.Background()

	st := checklist.NewState()
	st.SetItem("ext-roof", checklist.StatusPass, "")
	st.SetItem("ext-gutters", checklist.StatusFail, "sagging")

	// a forged progress cannot reach storage; Save derives it from state.
	// Residential template has 20 items, 2 touched -> 10%.
	saved, err := svc.Save(ctx, ins.ID, SavePatch{Checklist: st})
	require.NoError(t, err)
	assert.Equal(t, 10, saved.Progress)
	assert.Equal(t, 10, repo.inspections[ins.ID].Progress)
}

func TestSaveDropsExplicitUntouchedRecords(t *testing.T) {
	svc, repo, ins := setup(t)
	ctx := context.Background()

	// a raw wire map can name every item with an empty pending record;
	// only the genuinely touched one may count
	st := checklist.State{
		"ext-roof":    {Status: checklist.StatusPass},
		"ext-gutters": {Status: checklist.StatusUnchecked},
		"int-walls":   {Status: checklist.StatusUnchecked},
		"saf-smoke":   {Status: checklist.StatusUnchecked},
	}
	saved, err := svc.Save(ctx, ins.ID, SavePatch{Checklist: st})
	require.NoError(t, err)

	// 1 of 20 residential items -> 5%, not 20%
	assert.Equal(t, 5, saved.Progress)
	assert.Len(t, repo.inspections[ins.ID].Checklist, 1)
	assert.Equal(t, checklist.StatusUnchecked, saved.Checklist.ItemStatus("ext-gutters"))
}

func TestSaveAmenityValidation(t *testing.T) {
	svc, _, ins := setup(t)

	_, err := svc.Save(context.Background(), ins.ID, SavePatch{
		CustomAmenities: []checklist.CustomAmenity{{ID: "am-1", Name: "   "}},
	})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestSaveSanitizesNotes(t *testing.T) {
	svc, _, ins := setup(t)

	notes := "roof ok*NULL*\r\nneeds paint\r\n"
	saved, err := svc.Save(context.Background(), ins.ID, SavePatch{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "roof ok\nneeds paint", saved.Notes)
}

func TestSaveCASConflict(t *testing.T) {
	svc, _, ins := setup(t)

	stale := ins.UpdatedAt.Add(-time.Minute)
	_, err := svc.Save(context.Background(), ins.ID, SavePatch{ExpectedUpdatedAt: &stale})
	assert.ErrorIs(t, err, models.ErrStaleSave)

	// omitting the token keeps last-write-wins behavior
	_, err = svc.Save(context.Background(), ins.ID, SavePatch{})
	assert.NoError(t, err)
}

func TestPatchItemUpdatesProgress(t *testing.T) {
	svc, _, ins := setup(t)
	ctx := context.Background()

	saved, err := svc.PatchItem(ctx, ins.ID, "ext-roof", checklist.StatusPass, "")
	require.NoError(t, err)
	assert.Equal(t, 5, saved.Progress) // 1 of 20

	// reverting the same item drops progress back to zero
	saved, err = svc.PatchItem(ctx, ins.ID, "ext-roof", checklist.StatusUnchecked, "")
	require.NoError(t, err)
	assert.Equal(t, 0, saved.Progress)
	assert.Empty(t, saved.Checklist)
}

func TestCompleteStampsDateAndKeepsRealProgress(t *testing.T) {
	svc, repo, ins := setup(t)
	ctx := context.Background()
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 15, 4, 5, 0, time.UTC) }

	_, err := svc.PatchItem(ctx, ins.ID, "ext-roof", checklist.StatusPass, "")
	require.NoError(t, err)
	_, err = svc.Start(ctx, ins.ID)
	require.NoError(t, err)

	done, err := svc.Complete(ctx, ins.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, done.Status)
	require.NotNil(t, done.CompletedDate)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), *done.CompletedDate)
	// progress reflects the actual checklist, never a forced 100
	assert.Equal(t, 5, done.Progress)

	// creator notified on completion
	var kinds []string
	for _, n := range repo.notifications {
		kinds = append(kinds, n.Kind)
	}
	assert.Contains(t, kinds, "inspection_completed")
}

func TestCompleteRequiresInProgress(t *testing.T) {
	svc, _, ins := setup(t)

	_, err := svc.Complete(context.Background(), ins.ID)
	var terr *InvalidTransitionError
	assert.ErrorAs(t, err, &terr)
}

func TestCancelFromAnyActiveState(t *testing.T) {
	svc, _, ins := setup(t)
	ctx := context.Background()

	cancelled, err := svc.Cancel(ctx, ins.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	// terminal states reject further transitions
	_, err = svc.Start(ctx, ins.ID)
	var terr *InvalidTransitionError
	assert.ErrorAs(t, err, &terr)
}

func TestAttachPhoto(t *testing.T) {
	svc, _, ins := setup(t)

	loc := &models.Geo{Lat: 51.5, Lng: -0.12}
	saved, err := svc.AttachPhoto(context.Background(), ins.ID, "/static/uploads/x.jpg", loc)
	require.NoError(t, err)
	assert.Equal(t, []string{"/static/uploads/x.jpg"}, saved.Photos)
	require.NotNil(t, saved.Location)
	assert.Equal(t, 51.5, saved.Location.Lat)
}
