package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"syndiceasy/internal/adapters/persistence/models"
	"syndiceasy/internal/core/domain"
	"syndiceasy/internal/core/event"
	"syndiceasy/internal/core/feed"
)

type fakeReclamationRepo struct {
	nextID uint
	rows   map[uint]*models.Reclamation
}

func newFakeReclamationRepo() *fakeReclamationRepo {
	return &fakeReclamationRepo{rows: make(map[uint]*models.Reclamation)}
}

func (r *fakeReclamationRepo) Create(_ context.Context, rec *models.Reclamation) error {
	r.nextID++
	rec.ID = r.nextID
	rec.CreatedAt = time.Now()
	r.rows[rec.ID] = rec
	return nil
}

func (r *fakeReclamationRepo) GetByID(_ context.Context, id uint) (*models.Reclamation, error) {
	rec, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *rec
	return &clone, nil
}

func (r *fakeReclamationRepo) Update(_ context.Context, rec *models.Reclamation) error {
	r.rows[rec.ID] = rec
	return nil
}

func (r *fakeReclamationRepo) List(_ context.Context, status string, _, _ int) ([]*models.Reclamation, int64, error) {
	var out []*models.Reclamation
	for _, rec := range r.rows {
		if status == "" || rec.Status == status {
			out = append(out, rec)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeReclamationRepo) ListByResident(_ context.Context, residentID uint) ([]*models.Reclamation, error) {
	var out []*models.Reclamation
	for _, rec := range r.rows {
		if rec.ResidentID == residentID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeReclamationRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var count int64
	for _, rec := range r.rows {
		if rec.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeReclamationRepo) CountByBuildingAndStatus(_ context.Context, buildingID uint, status string) (int64, error) {
	var count int64
	for _, rec := range r.rows {
		if rec.BuildingID != nil && *rec.BuildingID == buildingID && rec.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeBuildingRepo struct {
	buildings  map[uint]*models.Building
	apartments map[uint]*models.Apartment
}

func newFakeBuildingRepo() *fakeBuildingRepo {
	return &fakeBuildingRepo{
		buildings:  make(map[uint]*models.Building),
		apartments: make(map[uint]*models.Apartment),
	}
}

func (r *fakeBuildingRepo) Create(_ context.Context, b *models.Building) error {
	r.buildings[b.ID] = b
	return nil
}

func (r *fakeBuildingRepo) GetByID(_ context.Context, id uint) (*models.Building, error) {
	b, ok := r.buildings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (r *fakeBuildingRepo) Update(_ context.Context, b *models.Building) error {
	r.buildings[b.ID] = b
	return nil
}

func (r *fakeBuildingRepo) Delete(context.Context, uint) error { return nil }

func (r *fakeBuildingRepo) List(context.Context, int, int) ([]*models.Building, int64, error) {
	return nil, 0, nil
}

func (r *fakeBuildingRepo) ListBySyndic(_ context.Context, syndicID uint) ([]*models.Building, error) {
	var out []*models.Building
	for _, b := range r.buildings {
		if b.SyndicID != nil && *b.SyndicID == syndicID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBuildingRepo) CreateApartment(_ context.Context, a *models.Apartment) error {
	r.apartments[a.ID] = a
	return nil
}

func (r *fakeBuildingRepo) GetApartmentByID(_ context.Context, id uint) (*models.Apartment, error) {
	a, ok := r.apartments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *fakeBuildingRepo) UpdateApartment(_ context.Context, a *models.Apartment) error {
	r.apartments[a.ID] = a
	return nil
}

func (r *fakeBuildingRepo) DeleteApartment(context.Context, uint) error { return nil }

func (r *fakeBuildingRepo) ListApartments(_ context.Context, buildingID uint) ([]*models.Apartment, error) {
	var out []*models.Apartment
	for _, a := range r.apartments {
		if a.BuildingID == buildingID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeBuildingRepo) GetApartmentByResident(_ context.Context, residentID uint) (*models.Apartment, error) {
	for _, a := range r.apartments {
		if a.ResidentID != nil && *a.ResidentID == residentID {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeBuildingRepo) CountBuildings(context.Context) (int64, error) {
	return int64(len(r.buildings)), nil
}

func (r *fakeBuildingRepo) CountApartments(context.Context) (int64, error) {
	return int64(len(r.apartments)), nil
}

func newTestReclamationService(t *testing.T) (*ReclamationService, *fakeReclamationRepo, *fakeBuildingRepo, *fakeNotificationRepo) {
	t.Helper()

	reclamationRepo := newFakeReclamationRepo()
	buildingRepo := newFakeBuildingRepo()
	notifRepo := &fakeNotificationRepo{}
	notifications := NewNotificationService(notifRepo, event.NewBus(), nil, feed.DefaultReadTTL, feed.SystemClock())

	svc := NewReclamationService(reclamationRepo, buildingRepo, notifications)
	return svc, reclamationRepo, buildingRepo, notifRepo
}

func TestReclamationCreateDerivesBuildingAndNotifiesSyndic(t *testing.T) {
	t.Parallel()

	svc, _, buildingRepo, notifRepo := newTestReclamationService(t)
	ctx := context.Background()

	syndicID := uint(10)
	residentID := uint(20)
	buildingRepo.buildings[1] = &models.Building{ID: 1, Name: "Résidence Atlas", SyndicID: &syndicID}
	buildingRepo.apartments[1] = &models.Apartment{ID: 1, BuildingID: 1, ResidentID: &residentID}

	rec, err := svc.Create(ctx, residentID, &CreateReclamationInput{Title: "Ascenseur en panne"})
	require.NoError(t, err)
	require.Equal(t, domain.ReclamationOpen, rec.Status)
	require.NotNil(t, rec.BuildingID)
	require.Equal(t, uint(1), *rec.BuildingID)

	// the syndic got a persisted notification
	rows, err := notifRepo.ListByUser(ctx, syndicID, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, models.NotifKindReclamation, rows[0].Kind)
}

func TestReclamationStatusLifecycle(t *testing.T) {
	t.Parallel()

	svc, _, buildingRepo, _ := newTestReclamationService(t)
	ctx := context.Background()

	residentID := uint(20)
	buildingRepo.apartments[1] = &models.Apartment{ID: 1, BuildingID: 1, ResidentID: &residentID}

	rec, err := svc.Create(ctx, residentID, &CreateReclamationInput{Title: "Fuite d'eau"})
	require.NoError(t, err)

	// OPEN -> IN_PROGRESS
	updated, err := svc.UpdateStatus(ctx, rec.ID, 30, &UpdateStatusInput{Status: domain.ReclamationInProgress})
	require.NoError(t, err)
	require.Equal(t, domain.ReclamationInProgress, updated.Status)
	require.Nil(t, updated.ResolvedAt)

	// IN_PROGRESS -> RESOLVED stamps the resolution time
	updated, err = svc.UpdateStatus(ctx, rec.ID, 30, &UpdateStatusInput{Status: domain.ReclamationResolved})
	require.NoError(t, err)
	require.Equal(t, domain.ReclamationResolved, updated.Status)
	require.NotNil(t, updated.ResolvedAt)

	// a closed reclamation never reopens
	_, err = svc.UpdateStatus(ctx, rec.ID, 30, &UpdateStatusInput{Status: domain.ReclamationOpen})
	require.ErrorIs(t, err, ErrReclamationClosed)
}

func TestReclamationInvalidTransitionRejected(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestReclamationService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, 20, &CreateReclamationInput{Title: "Bruit nocturne"})
	require.NoError(t, err)

	// OPEN -> OPEN is not a transition
	_, err = svc.UpdateStatus(ctx, rec.ID, 30, &UpdateStatusInput{Status: domain.ReclamationOpen})
	require.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = svc.UpdateStatus(ctx, rec.ID, 30, &UpdateStatusInput{Status: "NONSENSE"})
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestReclamationResidentOwnershipCheck(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestReclamationService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, 20, &CreateReclamationInput{Title: "Porte cassée"})
	require.NoError(t, err)

	// the owner reads it fine
	_, err = svc.Get(ctx, rec.ID, 20, domain.RoleResident)
	require.NoError(t, err)

	// another resident is refused
	_, err = svc.Get(ctx, rec.ID, 21, domain.RoleResident)
	require.ErrorIs(t, err, ErrNotReclamationOwner)

	// the syndic sees everything
	_, err = svc.Get(ctx, rec.ID, 99, domain.RoleSyndic)
	require.NoError(t, err)
}
