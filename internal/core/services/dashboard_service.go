package services

import (
	"context"

	"syndiceasy/internal/adapters/persistence/models"
	"syndiceasy/internal/adapters/persistence/repositories"
	"syndiceasy/internal/core/domain"
)

// DashboardService aggregates the dashboard figures, admin totals and
// the per-building syndic view
type DashboardService struct {
	userRepo        repositories.UserRepository
	buildingRepo    repositories.BuildingRepository
	reclamationRepo repositories.ReclamationRepository
	caisseRepo      repositories.CaisseRepository
	eventRepo       repositories.EventRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	userRepo repositories.UserRepository,
	buildingRepo repositories.BuildingRepository,
	reclamationRepo repositories.ReclamationRepository,
	caisseRepo repositories.CaisseRepository,
	eventRepo repositories.EventRepository,
) *DashboardService {
	return &DashboardService{
		userRepo:        userRepo,
		buildingRepo:    buildingRepo,
		reclamationRepo: reclamationRepo,
		caisseRepo:      caisseRepo,
		eventRepo:       eventRepo,
	}
}

// DashboardStats represents the dashboard payload
type DashboardStats struct {
	UsersByRole         map[string]int64 `json:"users_by_role"`
	TotalBuildings      int64            `json:"total_buildings"`
	TotalApartments     int64            `json:"total_apartments"`
	ReclamationsByState map[string]int64 `json:"reclamations_by_state"`
	TotalCaisseBalance  float64          `json:"total_caisse_balance"`
	UpcomingEvents      []*models.Event  `json:"upcoming_events"`
}

// GetStats assembles the dashboard in one pass
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{
		UsersByRole:         make(map[string]int64, len(domain.AllRoles)),
		ReclamationsByState: make(map[string]int64, 4),
	}

	// 1. Population counts
	for _, role := range domain.AllRoles {
		count, err := s.userRepo.CountByRole(ctx, string(role))
		if err != nil {
			return nil, err
		}
		stats.UsersByRole[string(role)] = count
	}

	// 2. Residence counts
	var err error
	if stats.TotalBuildings, err = s.buildingRepo.CountBuildings(ctx); err != nil {
		return nil, err
	}
	if stats.TotalApartments, err = s.buildingRepo.CountApartments(ctx); err != nil {
		return nil, err
	}

	// 3. Reclamation pipeline
	for _, status := range []string{
		domain.ReclamationOpen,
		domain.ReclamationInProgress,
		domain.ReclamationResolved,
		domain.ReclamationRejected,
	} {
		count, err := s.reclamationRepo.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		stats.ReclamationsByState[status] = count
	}

	// 4. Finances and agenda
	if stats.TotalCaisseBalance, err = s.caisseRepo.TotalBalance(ctx); err != nil {
		return nil, err
	}
	if stats.UpcomingEvents, err = s.eventRepo.ListUpcoming(ctx, 5); err != nil {
		return nil, err
	}

	return stats, nil
}

// BuildingStats represents one building row of the syndic dashboard
type BuildingStats struct {
	BuildingID             uint    `json:"building_id"`
	Name                   string  `json:"name"`
	TotalApartments        int     `json:"total_apartments"`
	OccupiedApartments     int     `json:"occupied_apartments"`
	OpenReclamations       int64   `json:"open_reclamations"`
	InProgressReclamations int64   `json:"in_progress_reclamations"`
	CaisseBalance          float64 `json:"caisse_balance"`
}

// SyndicStats represents the syndic dashboard payload
type SyndicStats struct {
	Buildings []BuildingStats `json:"buildings"`
}

// GetSyndicStats assembles the per-building view for a syndic's own
// buildings only
func (s *DashboardService) GetSyndicStats(ctx context.Context, syndicID uint) (*SyndicStats, error) {
	buildings, err := s.buildingRepo.ListBySyndic(ctx, syndicID)
	if err != nil {
		return nil, err
	}

	stats := &SyndicStats{Buildings: make([]BuildingStats, 0, len(buildings))}
	for _, building := range buildings {
		row := BuildingStats{
			BuildingID:      building.ID,
			Name:            building.Name,
			TotalApartments: len(building.Apartments),
		}
		for _, apartment := range building.Apartments {
			if apartment.ResidentID != nil {
				row.OccupiedApartments++
			}
		}

		if row.OpenReclamations, err = s.reclamationRepo.CountByBuildingAndStatus(ctx, building.ID, domain.ReclamationOpen); err != nil {
			return nil, err
		}
		if row.InProgressReclamations, err = s.reclamationRepo.CountByBuildingAndStatus(ctx, building.ID, domain.ReclamationInProgress); err != nil {
			return nil, err
		}

		caisses, err := s.caisseRepo.ListByBuilding(ctx, building.ID)
		if err != nil {
			return nil, err
		}
		for _, caisse := range caisses {
			row.CaisseBalance += caisse.Balance
		}

		stats.Buildings = append(stats.Buildings, row)
	}

	return stats, nil
}
