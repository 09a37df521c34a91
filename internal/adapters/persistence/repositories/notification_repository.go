package repositories

import (
	"context"
	"time"

	"syndiceasy/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// notificationRepository implements NotificationRepository interface
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create creates a new notification
func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// ListByUser lists a user's notifications in arrival order
func (r *notificationRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkAllReadByUser flips every unread notification of a user in one
// statement. The client never sends individual ids.
func (r *notificationRepository) MarkAllReadByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Update("is_read", true).Error
}

// CountUnreadByUser counts a user's unread notifications
func (r *notificationRepository) CountUnreadByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}

// DeleteReadOlderThan purges read notifications older than cutoff
// (cleanup job)
func (r *notificationRepository) DeleteReadOlderThan(ctx context.Context, cutoff time.Time) error {
	return r.db.WithContext(ctx).
		Where("is_read = ?", true).
		Where("created_at < ?", cutoff).
		Delete(&models.Notification{}).Error
}
