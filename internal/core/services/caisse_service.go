package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"syndiceasy/internal/adapters/persistence/models"
	"syndiceasy/internal/adapters/persistence/repositories"
	"syndiceasy/internal/core/domain"

	"gorm.io/gorm"
)

// CaisseService handles building fund business logic
type CaisseService struct {
	caisseRepo    repositories.CaisseRepository
	buildingRepo  repositories.BuildingRepository
	notifications *NotificationService
}

// NewCaisseService creates a new caisse service
func NewCaisseService(
	caisseRepo repositories.CaisseRepository,
	buildingRepo repositories.BuildingRepository,
	notifications *NotificationService,
) *CaisseService {
	return &CaisseService{
		caisseRepo:    caisseRepo,
		buildingRepo:  buildingRepo,
		notifications: notifications,
	}
}

// CreateCaisseInput represents create caisse input
type CreateCaisseInput struct {
	Name       string  `json:"name"`
	BuildingID uint    `json:"building_id"`
	Balance    float64 `json:"balance"`
}

// TransactionInput represents a credit or debit operation
type TransactionInput struct {
	Kind   string  `json:"kind"`
	Amount float64 `json:"amount"`
	Label  string  `json:"label"`
}

// ListTransactionsOutput represents list transactions output
type ListTransactionsOutput struct {
	Transactions []*models.CaisseTransaction `json:"transactions"`
	Total        int64                       `json:"total"`
	Page         int                         `json:"page"`
	Limit        int                         `json:"limit"`
	TotalPages   int                         `json:"total_pages"`
}

// ListCaisses lists every fund, optionally scoped to a building
func (s *CaisseService) ListCaisses(ctx context.Context, buildingID uint) ([]*models.Caisse, error) {
	if buildingID > 0 {
		return s.caisseRepo.ListByBuilding(ctx, buildingID)
	}
	return s.caisseRepo.List(ctx)
}

// GetCaisse retrieves a fund by ID
func (s *CaisseService) GetCaisse(ctx context.Context, id uint) (*models.Caisse, error) {
	caisse, err := s.caisseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCaisseNotFound
		}
		return nil, err
	}
	return caisse, nil
}

// CreateCaisse creates a fund for a building
func (s *CaisseService) CreateCaisse(ctx context.Context, input *CreateCaisseInput) (*models.Caisse, error) {
	// 1. Building must exist
	if _, err := s.buildingRepo.GetByID(ctx, input.BuildingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBuildingNotFound
		}
		return nil, err
	}
	if input.Balance < 0 {
		return nil, domain.ErrInvalidTransaction
	}

	caisse := &models.Caisse{
		Name:       input.Name,
		BuildingID: input.BuildingID,
		Balance:    input.Balance,
	}
	if err := s.caisseRepo.Create(ctx, caisse); err != nil {
		return nil, err
	}

	log.Printf("💰 Caisse created: %s (building %d)", caisse.Name, caisse.BuildingID)
	return caisse, nil
}

// AddTransaction records a credit or debit and moves the balance. The
// repository performs both writes in one database transaction; a debit
// that would drive the balance negative is rejected there.
func (s *CaisseService) AddTransaction(ctx context.Context, caisseID, performerID uint, input *TransactionInput) (*models.CaisseTransaction, error) {
	// 1. Validate input
	if input.Kind != domain.CaisseCredit && input.Kind != domain.CaisseDebit {
		return nil, domain.ErrInvalidTransaction
	}
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidTransaction
	}

	// 2. Fund must exist
	caisse, err := s.GetCaisse(ctx, caisseID)
	if err != nil {
		return nil, err
	}

	// 3. Record atomically
	tx := &models.CaisseTransaction{
		CaisseID:    caisseID,
		Kind:        input.Kind,
		Amount:      input.Amount,
		Label:       input.Label,
		PerformedBy: performerID,
	}
	if err := s.caisseRepo.AddTransaction(ctx, tx); err != nil {
		return nil, err
	}

	// 4. Notify the building's syndic
	s.notifyTransaction(ctx, caisse, tx)

	log.Printf("💰 %s of %.2f on caisse %d by user %d", input.Kind, input.Amount, caisseID, performerID)
	return tx, nil
}

// ListTransactions lists a fund's transaction history, newest first
func (s *CaisseService) ListTransactions(ctx context.Context, caisseID uint, page, limit int) (*ListTransactionsOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	if _, err := s.GetCaisse(ctx, caisseID); err != nil {
		return nil, err
	}

	transactions, total, err := s.caisseRepo.ListTransactions(ctx, caisseID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	return &ListTransactionsOutput{
		Transactions: transactions,
		Total:        total,
		Page:         page,
		Limit:        limit,
		TotalPages:   totalPages,
	}, nil
}

func (s *CaisseService) notifyTransaction(ctx context.Context, caisse *models.Caisse, tx *models.CaisseTransaction) {
	building, err := s.buildingRepo.GetByID(ctx, caisse.BuildingID)
	if err != nil || building.SyndicID == nil || *building.SyndicID == tx.PerformedBy {
		return
	}

	verb := "créditée"
	if tx.Kind == domain.CaisseDebit {
		verb = "débitée"
	}
	if err := s.notifications.Notify(ctx, *building.SyndicID,
		"Mouvement de caisse",
		fmt.Sprintf("La caisse %s a été %s de %.2f MAD", caisse.Name, verb, tx.Amount),
		models.NotifKindCaisse,
	); err != nil {
		log.Printf("⚠️ Failed to notify syndic %d: %v", *building.SyndicID, err)
	}
}
