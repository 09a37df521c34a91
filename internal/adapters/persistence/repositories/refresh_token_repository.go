package repositories

import (
	"context"
	"time"

	"syndiceasy/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// GetByTokenHash looks up a live (non-revoked) token by its SHA256 hash
func (r *refreshTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		Where("revoked_at IS NULL").
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// revoke stamps revoked_at on every row the query matches
func (r *refreshTokenRepository) revoke(tx *gorm.DB) error {
	return tx.Model(&models.RefreshToken{}).Update("revoked_at", time.Now()).Error
}

func (r *refreshTokenRepository) Revoke(ctx context.Context, id uint) error {
	return r.revoke(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *refreshTokenRepository) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	return r.revoke(r.db.WithContext(ctx).Where("token_hash = ?", tokenHash))
}

// RevokeAllByUserID kills every live session of a user, used on
// password change, deactivation and logout-all
func (r *refreshTokenRepository) RevokeAllByUserID(ctx context.Context, userID uint) error {
	return r.revoke(r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("revoked_at IS NULL"))
}

// DeleteExpired is run hourly by the cron service
func (r *refreshTokenRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&models.RefreshToken{}).Error
}
