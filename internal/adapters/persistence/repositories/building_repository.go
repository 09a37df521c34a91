package repositories

import (
	"context"

	"syndiceasy/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// buildingRepository implements BuildingRepository interface
type buildingRepository struct {
	db *gorm.DB
}

// NewBuildingRepository creates a new building repository
func NewBuildingRepository(db *gorm.DB) BuildingRepository {
	return &buildingRepository{db: db}
}

// Create creates a new building
func (r *buildingRepository) Create(ctx context.Context, building *models.Building) error {
	return r.db.WithContext(ctx).Create(building).Error
}

// GetByID gets a building with its apartments
func (r *buildingRepository) GetByID(ctx context.Context, id uint) (*models.Building, error) {
	var building models.Building
	err := r.db.WithContext(ctx).
		Preload("Syndic").
		Preload("Apartments").
		Where("id = ?", id).
		First(&building).Error
	if err != nil {
		return nil, err
	}
	return &building, nil
}

// Update updates a building
func (r *buildingRepository) Update(ctx context.Context, building *models.Building) error {
	return r.db.WithContext(ctx).Save(building).Error
}

// Delete soft deletes a building
func (r *buildingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Building{}, id).Error
}

// List lists buildings with pagination
func (r *buildingRepository) List(ctx context.Context, offset, limit int) ([]*models.Building, int64, error) {
	var buildings []*models.Building
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Building{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Syndic").
		Offset(offset).Limit(limit).Order("name").
		Find(&buildings).Error
	if err != nil {
		return nil, 0, err
	}

	return buildings, total, nil
}

// ListBySyndic lists the buildings managed by a syndic
func (r *buildingRepository) ListBySyndic(ctx context.Context, syndicID uint) ([]*models.Building, error) {
	var buildings []*models.Building
	err := r.db.WithContext(ctx).
		Preload("Apartments").
		Where("syndic_id = ?", syndicID).
		Order("name").
		Find(&buildings).Error
	if err != nil {
		return nil, err
	}
	return buildings, nil
}

// CreateApartment creates a new apartment
func (r *buildingRepository) CreateApartment(ctx context.Context, apartment *models.Apartment) error {
	return r.db.WithContext(ctx).Create(apartment).Error
}

// GetApartmentByID gets an apartment with its building and resident
func (r *buildingRepository) GetApartmentByID(ctx context.Context, id uint) (*models.Apartment, error) {
	var apartment models.Apartment
	err := r.db.WithContext(ctx).
		Preload("Building").
		Preload("Resident").
		Where("id = ?", id).
		First(&apartment).Error
	if err != nil {
		return nil, err
	}
	return &apartment, nil
}

// UpdateApartment updates an apartment
func (r *buildingRepository) UpdateApartment(ctx context.Context, apartment *models.Apartment) error {
	return r.db.WithContext(ctx).Save(apartment).Error
}

// DeleteApartment soft deletes an apartment
func (r *buildingRepository) DeleteApartment(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Apartment{}, id).Error
}

// ListApartments lists apartments of a building
func (r *buildingRepository) ListApartments(ctx context.Context, buildingID uint) ([]*models.Apartment, error) {
	var apartments []*models.Apartment
	err := r.db.WithContext(ctx).
		Preload("Resident").
		Where("building_id = ?", buildingID).
		Order("floor, number").
		Find(&apartments).Error
	if err != nil {
		return nil, err
	}
	return apartments, nil
}

// GetApartmentByResident gets the apartment assigned to a resident
func (r *buildingRepository) GetApartmentByResident(ctx context.Context, residentID uint) (*models.Apartment, error) {
	var apartment models.Apartment
	err := r.db.WithContext(ctx).
		Preload("Building").
		Where("resident_id = ?", residentID).
		First(&apartment).Error
	if err != nil {
		return nil, err
	}
	return &apartment, nil
}

// CountBuildings counts all buildings
func (r *buildingRepository) CountBuildings(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Building{}).Count(&count).Error
	return count, err
}

// CountApartments counts all apartments
func (r *buildingRepository) CountApartments(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Apartment{}).Count(&count).Error
	return count, err
}
