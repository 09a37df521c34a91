package repositories

import (
	"context"
	"time"

	"syndiceasy/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// eventRepository implements EventRepository interface
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// Create creates a new event
func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// GetByID gets an event with its relations
func (r *eventRepository) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).
		Preload("Building").
		Preload("Creator").
		Where("id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Update updates an event
func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// Delete soft deletes an event
func (r *eventRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Event{}, id).Error
}

// ListBetween lists events starting inside [from, to)
func (r *eventRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*models.Event, error) {
	var events []*models.Event
	err := r.db.WithContext(ctx).
		Preload("Building").
		Where("starts_at >= ? AND starts_at < ?", from, to).
		Order("starts_at").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// ListUpcoming lists the next events from now
func (r *eventRepository) ListUpcoming(ctx context.Context, limit int) ([]*models.Event, error) {
	var events []*models.Event
	err := r.db.WithContext(ctx).
		Preload("Building").
		Where("starts_at >= ?", time.Now()).
		Order("starts_at").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
