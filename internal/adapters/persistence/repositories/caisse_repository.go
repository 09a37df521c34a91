package repositories

import (
	"context"

	"syndiceasy/internal/adapters/persistence/models"
	"syndiceasy/internal/core/domain"

	"gorm.io/gorm"
)

// caisseRepository implements CaisseRepository interface
type caisseRepository struct {
	db *gorm.DB
}

// NewCaisseRepository creates a new caisse repository
func NewCaisseRepository(db *gorm.DB) CaisseRepository {
	return &caisseRepository{db: db}
}

// Create creates a new caisse
func (r *caisseRepository) Create(ctx context.Context, caisse *models.Caisse) error {
	return r.db.WithContext(ctx).Create(caisse).Error
}

// GetByID gets a caisse with its building
func (r *caisseRepository) GetByID(ctx context.Context, id uint) (*models.Caisse, error) {
	var caisse models.Caisse
	err := r.db.WithContext(ctx).
		Preload("Building").
		Where("id = ?", id).
		First(&caisse).Error
	if err != nil {
		return nil, err
	}
	return &caisse, nil
}

// List lists all caisses
func (r *caisseRepository) List(ctx context.Context) ([]*models.Caisse, error) {
	var caisses []*models.Caisse
	err := r.db.WithContext(ctx).Preload("Building").Order("name").Find(&caisses).Error
	if err != nil {
		return nil, err
	}
	return caisses, nil
}

// ListByBuilding lists the caisses of a building
func (r *caisseRepository) ListByBuilding(ctx context.Context, buildingID uint) ([]*models.Caisse, error) {
	var caisses []*models.Caisse
	err := r.db.WithContext(ctx).
		Where("building_id = ?", buildingID).
		Order("name").
		Find(&caisses).Error
	if err != nil {
		return nil, err
	}
	return caisses, nil
}

// AddTransaction records a transaction and moves the caisse balance in
// the same database transaction.
func (r *caisseRepository) AddTransaction(ctx context.Context, tx *models.CaisseTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		if err := dbtx.Create(tx).Error; err != nil {
			return err
		}

		delta := tx.Amount
		if tx.Kind == domain.CaisseDebit {
			delta = -delta
		}

		return dbtx.Model(&models.Caisse{}).
			Where("id = ?", tx.CaisseID).
			Update("balance", gorm.Expr("balance + ?", delta)).Error
	})
}

// ListTransactions lists transactions of a caisse, newest first
func (r *caisseRepository) ListTransactions(ctx context.Context, caisseID uint, offset, limit int) ([]*models.CaisseTransaction, int64, error) {
	var txs []*models.CaisseTransaction
	var total int64

	query := r.db.WithContext(ctx).Model(&models.CaisseTransaction{}).Where("caisse_id = ?", caisseID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Performer").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&txs).Error
	if err != nil {
		return nil, 0, err
	}

	return txs, total, nil
}

// TotalBalance sums all caisse balances
func (r *caisseRepository) TotalBalance(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.Caisse{}).
		Select("COALESCE(SUM(balance), 0)").
		Scan(&total).Error
	return total, err
}
