package services

import (
	"context"
	"errors"
	"log"

	"syndiceasy/internal/adapters/persistence/models"
	"syndiceasy/internal/adapters/persistence/repositories"
	"syndiceasy/internal/core/domain"

	"gorm.io/gorm"
)

// Building service errors
var (
	ErrBuildingNameTaken = errors.New("building name already in use")
	ErrSyndicRequired    = errors.New("assigned syndic must have the SYNDIC role")
	ErrResidentRequired  = errors.New("assigned resident must have the RESIDENT role")
)

// BuildingService handles building and apartment management
type BuildingService struct {
	buildingRepo repositories.BuildingRepository
	userRepo     repositories.UserRepository
}

// NewBuildingService creates a new building service
func NewBuildingService(
	buildingRepo repositories.BuildingRepository,
	userRepo repositories.UserRepository,
) *BuildingService {
	return &BuildingService{
		buildingRepo: buildingRepo,
		userRepo:     userRepo,
	}
}

// CreateBuildingInput represents create building input
type CreateBuildingInput struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	SyndicID *uint  `json:"syndic_id"`
}

// UpdateBuildingInput represents update building input
type UpdateBuildingInput struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	SyndicID *uint   `json:"syndic_id"`
}

// CreateApartmentInput represents create apartment input
type CreateApartmentInput struct {
	Number     string `json:"number"`
	Floor      int    `json:"floor"`
	BuildingID uint   `json:"building_id"`
	ResidentID *uint  `json:"resident_id"`
}

// AssignResidentInput represents assign resident input
type AssignResidentInput struct {
	ResidentID *uint `json:"resident_id"`
}

// ListBuildingsOutput represents list buildings output
type ListBuildingsOutput struct {
	Buildings  []*models.Building `json:"buildings"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

// ListBuildings lists buildings with pagination
func (s *BuildingService) ListBuildings(ctx context.Context, page, limit int) (*ListBuildingsOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	buildings, total, err := s.buildingRepo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	return &ListBuildingsOutput{
		Buildings:  buildings,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// GetBuilding retrieves a building with its apartments
func (s *BuildingService) GetBuilding(ctx context.Context, id uint) (*models.Building, error) {
	building, err := s.buildingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBuildingNotFound
		}
		return nil, err
	}
	return building, nil
}

// CreateBuilding creates a new building
func (s *BuildingService) CreateBuilding(ctx context.Context, input *CreateBuildingInput) (*models.Building, error) {
	// 1. Validate syndic assignment
	if input.SyndicID != nil {
		if err := s.requireRole(ctx, *input.SyndicID, domain.RoleSyndic, ErrSyndicRequired); err != nil {
			return nil, err
		}
	}

	// 2. Create
	building := &models.Building{
		Name:     input.Name,
		Address:  input.Address,
		SyndicID: input.SyndicID,
	}
	if err := s.buildingRepo.Create(ctx, building); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrBuildingNameTaken
		}
		return nil, err
	}

	log.Printf("✅ Building created: %s", building.Name)
	return building, nil
}

// UpdateBuilding updates a building
func (s *BuildingService) UpdateBuilding(ctx context.Context, id uint, input *UpdateBuildingInput) (*models.Building, error) {
	building, err := s.GetBuilding(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		building.Name = *input.Name
	}
	if input.Address != nil {
		building.Address = *input.Address
	}
	if input.SyndicID != nil {
		if err := s.requireRole(ctx, *input.SyndicID, domain.RoleSyndic, ErrSyndicRequired); err != nil {
			return nil, err
		}
		building.SyndicID = input.SyndicID
	}

	if err := s.buildingRepo.Update(ctx, building); err != nil {
		return nil, err
	}
	return building, nil
}

// DeleteBuilding soft-deletes a building
func (s *BuildingService) DeleteBuilding(ctx context.Context, id uint) error {
	if _, err := s.GetBuilding(ctx, id); err != nil {
		return err
	}
	return s.buildingRepo.Delete(ctx, id)
}

// ListApartments lists a building's apartments
func (s *BuildingService) ListApartments(ctx context.Context, buildingID uint) ([]*models.Apartment, error) {
	if _, err := s.GetBuilding(ctx, buildingID); err != nil {
		return nil, err
	}
	return s.buildingRepo.ListApartments(ctx, buildingID)
}

// CreateApartment creates an apartment in a building
func (s *BuildingService) CreateApartment(ctx context.Context, input *CreateApartmentInput) (*models.Apartment, error) {
	// 1. Building must exist
	if _, err := s.GetBuilding(ctx, input.BuildingID); err != nil {
		return nil, err
	}

	// 2. Optional initial resident
	if input.ResidentID != nil {
		if err := s.checkResidentFree(ctx, *input.ResidentID); err != nil {
			return nil, err
		}
	}

	apartment := &models.Apartment{
		Number:     input.Number,
		Floor:      input.Floor,
		BuildingID: input.BuildingID,
		ResidentID: input.ResidentID,
	}
	if err := s.buildingRepo.CreateApartment(ctx, apartment); err != nil {
		return nil, err
	}
	return apartment, nil
}

// AssignResident assigns or clears the resident of an apartment
func (s *BuildingService) AssignResident(ctx context.Context, apartmentID uint, input *AssignResidentInput) (*models.Apartment, error) {
	// 1. Load apartment
	apartment, err := s.buildingRepo.GetApartmentByID(ctx, apartmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrApartmentNotFound
		}
		return nil, err
	}

	// 2. A resident occupies at most one apartment
	if input.ResidentID != nil {
		if err := s.checkResidentFree(ctx, *input.ResidentID); err != nil {
			return nil, err
		}
	}

	apartment.ResidentID = input.ResidentID
	if err := s.buildingRepo.UpdateApartment(ctx, apartment); err != nil {
		return nil, err
	}

	if input.ResidentID != nil {
		log.Printf("🏠 Resident %d assigned to apartment %s", *input.ResidentID, apartment.Number)
	}
	return apartment, nil
}

// DeleteApartment soft-deletes an apartment
func (s *BuildingService) DeleteApartment(ctx context.Context, id uint) error {
	if _, err := s.buildingRepo.GetApartmentByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrApartmentNotFound
		}
		return err
	}
	return s.buildingRepo.DeleteApartment(ctx, id)
}

func (s *BuildingService) requireRole(ctx context.Context, userID uint, role domain.Role, roleErr error) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.Role != string(role) {
		return roleErr
	}
	return nil
}

func (s *BuildingService) checkResidentFree(ctx context.Context, residentID uint) error {
	if err := s.requireRole(ctx, residentID, domain.RoleResident, ErrResidentRequired); err != nil {
		return err
	}
	existing, err := s.buildingRepo.GetApartmentByResident(ctx, residentID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		return domain.ErrApartmentOccupied
	}
	return nil
}
