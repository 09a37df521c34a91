package repositories

import (
	"context"
	"time"

	"syndiceasy/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ListByRole(ctx context.Context, role string) ([]*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// PasswordResetRepository defines password reset repository interface
type PasswordResetRepository interface {
	Create(ctx context.Context, reset *models.PasswordReset) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.PasswordReset, error)
	MarkUsed(ctx context.Context, id uint) error
	DeleteExpired(ctx context.Context) error
}

// StateRepository is the key-value persistence behind the session store
// and the language preference.
type StateRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// BuildingRepository defines building and apartment repository interface
type BuildingRepository interface {
	Create(ctx context.Context, building *models.Building) error
	GetByID(ctx context.Context, id uint) (*models.Building, error)
	Update(ctx context.Context, building *models.Building) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.Building, int64, error)
	ListBySyndic(ctx context.Context, syndicID uint) ([]*models.Building, error)
	CreateApartment(ctx context.Context, apartment *models.Apartment) error
	GetApartmentByID(ctx context.Context, id uint) (*models.Apartment, error)
	UpdateApartment(ctx context.Context, apartment *models.Apartment) error
	DeleteApartment(ctx context.Context, id uint) error
	ListApartments(ctx context.Context, buildingID uint) ([]*models.Apartment, error)
	GetApartmentByResident(ctx context.Context, residentID uint) (*models.Apartment, error)
	CountBuildings(ctx context.Context) (int64, error)
	CountApartments(ctx context.Context) (int64, error)
}

// ReclamationRepository defines reclamation repository interface
type ReclamationRepository interface {
	Create(ctx context.Context, reclamation *models.Reclamation) error
	GetByID(ctx context.Context, id uint) (*models.Reclamation, error)
	Update(ctx context.Context, reclamation *models.Reclamation) error
	List(ctx context.Context, status string, offset, limit int) ([]*models.Reclamation, int64, error)
	ListByResident(ctx context.Context, residentID uint) ([]*models.Reclamation, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountByBuildingAndStatus(ctx context.Context, buildingID uint, status string) (int64, error)
}

// CaisseRepository defines caisse repository interface
type CaisseRepository interface {
	Create(ctx context.Context, caisse *models.Caisse) error
	GetByID(ctx context.Context, id uint) (*models.Caisse, error)
	List(ctx context.Context) ([]*models.Caisse, error)
	ListByBuilding(ctx context.Context, buildingID uint) ([]*models.Caisse, error)
	AddTransaction(ctx context.Context, tx *models.CaisseTransaction) error
	ListTransactions(ctx context.Context, caisseID uint, offset, limit int) ([]*models.CaisseTransaction, int64, error)
	TotalBalance(ctx context.Context) (float64, error)
}

// EventRepository defines calendar event repository interface
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id uint) (*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uint) error
	ListBetween(ctx context.Context, from, to time.Time) ([]*models.Event, error)
	ListUpcoming(ctx context.Context, limit int) ([]*models.Event, error)
}

// NotificationRepository defines notification repository interface.
// MarkAllReadByUser is deliberately user-scoped, not id-scoped: the
// client sends one batched mark-read request per menu dismissal.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]*models.Notification, error)
	MarkAllReadByUser(ctx context.Context, userID uint) error
	CountUnreadByUser(ctx context.Context, userID uint) (int64, error)
	DeleteReadOlderThan(ctx context.Context, cutoff time.Time) error
}
