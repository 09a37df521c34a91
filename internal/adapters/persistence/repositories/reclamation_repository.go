package repositories

import (
	"context"

	"syndiceasy/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// reclamationRepository implements ReclamationRepository interface
type reclamationRepository struct {
	db *gorm.DB
}

// NewReclamationRepository creates a new reclamation repository
func NewReclamationRepository(db *gorm.DB) ReclamationRepository {
	return &reclamationRepository{db: db}
}

// Create creates a new reclamation
func (r *reclamationRepository) Create(ctx context.Context, reclamation *models.Reclamation) error {
	return r.db.WithContext(ctx).Create(reclamation).Error
}

// GetByID gets a reclamation with its relations
func (r *reclamationRepository) GetByID(ctx context.Context, id uint) (*models.Reclamation, error) {
	var reclamation models.Reclamation
	err := r.db.WithContext(ctx).
		Preload("Resident").
		Preload("Building").
		Preload("Handler").
		Where("id = ?", id).
		First(&reclamation).Error
	if err != nil {
		return nil, err
	}
	return &reclamation, nil
}

// Update updates a reclamation
func (r *reclamationRepository) Update(ctx context.Context, reclamation *models.Reclamation) error {
	return r.db.WithContext(ctx).Save(reclamation).Error
}

// List lists reclamations, optionally filtered by status, newest first
func (r *reclamationRepository) List(ctx context.Context, status string, offset, limit int) ([]*models.Reclamation, int64, error) {
	var reclamations []*models.Reclamation
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Reclamation{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Resident").
		Preload("Building").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&reclamations).Error
	if err != nil {
		return nil, 0, err
	}

	return reclamations, total, nil
}

// ListByResident lists a resident's own reclamations, newest first
func (r *reclamationRepository) ListByResident(ctx context.Context, residentID uint) ([]*models.Reclamation, error) {
	var reclamations []*models.Reclamation
	err := r.db.WithContext(ctx).
		Preload("Building").
		Where("resident_id = ?", residentID).
		Order("created_at DESC").
		Find(&reclamations).Error
	if err != nil {
		return nil, err
	}
	return reclamations, nil
}

// CountByStatus counts reclamations in a status
func (r *reclamationRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Reclamation{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// CountByBuildingAndStatus counts a building's reclamations in a status
func (r *reclamationRepository) CountByBuildingAndStatus(ctx context.Context, buildingID uint, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Reclamation{}).
		Where("building_id = ?", buildingID).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
