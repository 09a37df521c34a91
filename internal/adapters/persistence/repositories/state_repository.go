package repositories

import (
	"context"
	"errors"

	"syndiceasy/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// State keys
const (
	StateKeySession  = "session"
	StateKeyLanguage = "language"
)

// stateRepository implements StateRepository interface
type stateRepository struct {
	db *gorm.DB
}

// NewStateRepository creates a new state repository
func NewStateRepository(db *gorm.DB) StateRepository {
	return &stateRepository{db: db}
}

// Get returns the value stored under key, or empty when absent
func (r *stateRepository) Get(ctx context.Context, key string) (string, error) {
	var state models.AppState
	err := r.db.WithContext(ctx).Where("`key` = ?", key).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return state.Value, nil
}

// Put upserts a key-value pair
func (r *stateRepository) Put(ctx context.Context, key, value string) error {
	state := models.AppState{Key: key, Value: value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&state).Error
}

// Delete removes a key
func (r *stateRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("`key` = ?", key).Delete(&models.AppState{}).Error
}
