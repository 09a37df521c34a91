package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"syndiceasy/internal/adapters/persistence/models"
	"syndiceasy/internal/core/domain"
)

type fakeUserRepo struct {
	countsByRole map[string]int64
}

func (r *fakeUserRepo) Create(context.Context, *models.User) error { return nil }
func (r *fakeUserRepo) GetByID(context.Context, uint) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeUserRepo) GetByUsername(context.Context, string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeUserRepo) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeUserRepo) Update(context.Context, *models.User) error { return nil }
func (r *fakeUserRepo) Delete(context.Context, uint) error         { return nil }
func (r *fakeUserRepo) List(context.Context, int, int) ([]*models.User, int64, error) {
	return nil, 0, nil
}
func (r *fakeUserRepo) ListByRole(context.Context, string) ([]*models.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) ExistsByUsername(context.Context, string) (bool, error) { return false, nil }
func (r *fakeUserRepo) ExistsByEmail(context.Context, string) (bool, error)    { return false, nil }
func (r *fakeUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	return r.countsByRole[role], nil
}

type fakeCaisseRepo struct {
	caisses []*models.Caisse
}

func (r *fakeCaisseRepo) Create(_ context.Context, c *models.Caisse) error {
	r.caisses = append(r.caisses, c)
	return nil
}
func (r *fakeCaisseRepo) GetByID(context.Context, uint) (*models.Caisse, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeCaisseRepo) List(context.Context) ([]*models.Caisse, error) { return r.caisses, nil }
func (r *fakeCaisseRepo) ListByBuilding(_ context.Context, buildingID uint) ([]*models.Caisse, error) {
	var out []*models.Caisse
	for _, c := range r.caisses {
		if c.BuildingID == buildingID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r *fakeCaisseRepo) AddTransaction(context.Context, *models.CaisseTransaction) error {
	return nil
}
func (r *fakeCaisseRepo) ListTransactions(context.Context, uint, int, int) ([]*models.CaisseTransaction, int64, error) {
	return nil, 0, nil
}
func (r *fakeCaisseRepo) TotalBalance(context.Context) (float64, error) {
	var total float64
	for _, c := range r.caisses {
		total += c.Balance
	}
	return total, nil
}

type fakeEventRepo struct {
	events []*models.Event
}

func (r *fakeEventRepo) Create(_ context.Context, e *models.Event) error {
	r.events = append(r.events, e)
	return nil
}
func (r *fakeEventRepo) GetByID(context.Context, uint) (*models.Event, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeEventRepo) Update(context.Context, *models.Event) error { return nil }
func (r *fakeEventRepo) Delete(context.Context, uint) error          { return nil }
func (r *fakeEventRepo) ListBetween(context.Context, time.Time, time.Time) ([]*models.Event, error) {
	return r.events, nil
}
func (r *fakeEventRepo) ListUpcoming(context.Context, int) ([]*models.Event, error) {
	return r.events, nil
}

func uintPtr(v uint) *uint { return &v }

func TestGetStatsAggregatesTotals(t *testing.T) {
	t.Parallel()

	userRepo := &fakeUserRepo{countsByRole: map[string]int64{
		string(domain.RoleAdmin):    1,
		string(domain.RoleResident): 12,
	}}
	buildingRepo := newFakeBuildingRepo()
	buildingRepo.buildings[1] = &models.Building{ID: 1, Name: "A"}
	buildingRepo.buildings[2] = &models.Building{ID: 2, Name: "B"}
	reclamationRepo := newFakeReclamationRepo()
	require.NoError(t, reclamationRepo.Create(context.Background(), &models.Reclamation{
		ResidentID: 5, Status: domain.ReclamationOpen,
	}))
	caisseRepo := &fakeCaisseRepo{caisses: []*models.Caisse{
		{ID: 1, BuildingID: 1, Balance: 1500},
		{ID: 2, BuildingID: 2, Balance: 250.50},
	}}

	svc := NewDashboardService(userRepo, buildingRepo, reclamationRepo, caisseRepo, &fakeEventRepo{})

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.UsersByRole[string(domain.RoleAdmin)])
	require.Equal(t, int64(12), stats.UsersByRole[string(domain.RoleResident)])
	require.Equal(t, int64(2), stats.TotalBuildings)
	require.Equal(t, int64(1), stats.ReclamationsByState[domain.ReclamationOpen])
	require.Equal(t, int64(0), stats.ReclamationsByState[domain.ReclamationResolved])
	require.InDelta(t, 1750.50, stats.TotalCaisseBalance, 0.001)
}

func TestGetSyndicStatsOnlyCoversOwnBuildings(t *testing.T) {
	t.Parallel()

	buildingRepo := newFakeBuildingRepo()
	buildingRepo.buildings[1] = &models.Building{
		ID: 1, Name: "Al Amal", SyndicID: uintPtr(7),
		Apartments: []models.Apartment{
			{ID: 1, BuildingID: 1, ResidentID: uintPtr(20)},
			{ID: 2, BuildingID: 1},
		},
	}
	buildingRepo.buildings[2] = &models.Building{ID: 2, Name: "Autre", SyndicID: uintPtr(99)}

	reclamationRepo := newFakeReclamationRepo()
	require.NoError(t, reclamationRepo.Create(context.Background(), &models.Reclamation{
		ResidentID: 20, BuildingID: uintPtr(1), Status: domain.ReclamationOpen,
	}))
	require.NoError(t, reclamationRepo.Create(context.Background(), &models.Reclamation{
		ResidentID: 21, BuildingID: uintPtr(2), Status: domain.ReclamationOpen,
	}))

	caisseRepo := &fakeCaisseRepo{caisses: []*models.Caisse{
		{ID: 1, BuildingID: 1, Balance: 300},
		{ID: 2, BuildingID: 2, Balance: 9999},
	}}

	svc := NewDashboardService(&fakeUserRepo{}, buildingRepo, reclamationRepo, caisseRepo, &fakeEventRepo{})

	stats, err := svc.GetSyndicStats(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, stats.Buildings, 1)

	row := stats.Buildings[0]
	require.Equal(t, uint(1), row.BuildingID)
	require.Equal(t, 2, row.TotalApartments)
	require.Equal(t, 1, row.OccupiedApartments)
	require.Equal(t, int64(1), row.OpenReclamations)
	require.Equal(t, int64(0), row.InProgressReclamations)
	require.InDelta(t, 300, row.CaisseBalance, 0.001)
}
