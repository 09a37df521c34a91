package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"syndiceasy/internal/adapters/persistence/models"
	"syndiceasy/internal/adapters/persistence/repositories"
	"syndiceasy/internal/core/domain"

	"gorm.io/gorm"
)

// Reclamation service errors
var (
	ErrReclamationClosed   = errors.New("reclamation already resolved or rejected")
	ErrNotReclamationOwner = errors.New("reclamation belongs to another resident")
)

// Legal status transitions. A closed reclamation never reopens.
var reclamationTransitions = map[string][]string{
	domain.ReclamationOpen:       {domain.ReclamationInProgress, domain.ReclamationResolved, domain.ReclamationRejected},
	domain.ReclamationInProgress: {domain.ReclamationResolved, domain.ReclamationRejected},
}

// ReclamationService handles reclamation business logic
type ReclamationService struct {
	reclamationRepo repositories.ReclamationRepository
	buildingRepo    repositories.BuildingRepository
	notifications   *NotificationService
}

// NewReclamationService creates a new reclamation service
func NewReclamationService(
	reclamationRepo repositories.ReclamationRepository,
	buildingRepo repositories.BuildingRepository,
	notifications *NotificationService,
) *ReclamationService {
	return &ReclamationService{
		reclamationRepo: reclamationRepo,
		buildingRepo:    buildingRepo,
		notifications:   notifications,
	}
}

// CreateReclamationInput represents create reclamation input
type CreateReclamationInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateStatusInput represents status change input
type UpdateStatusInput struct {
	Status string `json:"status"`
}

// ListReclamationsInput represents list reclamations input
type ListReclamationsInput struct {
	Status string
	Page   int
	Limit  int
}

// ListReclamationsOutput represents list reclamations output
type ListReclamationsOutput struct {
	Reclamations []*models.ReclamationResponse `json:"reclamations"`
	Total        int64                         `json:"total"`
	Page         int                           `json:"page"`
	Limit        int                           `json:"limit"`
	TotalPages   int                           `json:"total_pages"`
}

// Create opens a new reclamation for a resident. The building is derived
// from the resident's apartment when one is assigned.
func (s *ReclamationService) Create(ctx context.Context, residentID uint, input *CreateReclamationInput) (*models.ReclamationResponse, error) {
	// 1. Resolve the resident's building
	var buildingID *uint
	apartment, err := s.buildingRepo.GetApartmentByResident(ctx, residentID)
	if err == nil && apartment != nil {
		buildingID = &apartment.BuildingID
	}

	// 2. Create
	reclamation := &models.Reclamation{
		ResidentID:  residentID,
		BuildingID:  buildingID,
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.ReclamationOpen,
	}
	if err := s.reclamationRepo.Create(ctx, reclamation); err != nil {
		return nil, err
	}

	// 3. Notify the building's syndic
	s.notifySyndic(ctx, reclamation)

	log.Printf("📋 Reclamation #%d opened by resident %d", reclamation.ID, residentID)
	return reclamation.ToResponse(), nil
}

// List lists reclamations for staff, optionally filtered by status
func (s *ReclamationService) List(ctx context.Context, input *ListReclamationsInput) (*ListReclamationsOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 10
	}
	if input.Limit > 100 {
		input.Limit = 100
	}
	if input.Status != "" && !validReclamationStatus(input.Status) {
		return nil, domain.ErrInvalidStatus
	}

	reclamations, total, err := s.reclamationRepo.List(ctx, input.Status, (input.Page-1)*input.Limit, input.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.ReclamationResponse, len(reclamations))
	for i, r := range reclamations {
		responses[i] = r.ToResponse()
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListReclamationsOutput{
		Reclamations: responses,
		Total:        total,
		Page:         input.Page,
		Limit:        input.Limit,
		TotalPages:   totalPages,
	}, nil
}

// ListMine lists the caller's own reclamations, newest first
func (s *ReclamationService) ListMine(ctx context.Context, residentID uint) ([]*models.ReclamationResponse, error) {
	reclamations, err := s.reclamationRepo.ListByResident(ctx, residentID)
	if err != nil {
		return nil, err
	}
	responses := make([]*models.ReclamationResponse, len(reclamations))
	for i, r := range reclamations {
		responses[i] = r.ToResponse()
	}
	return responses, nil
}

// Get retrieves a reclamation. Residents can only read their own.
func (s *ReclamationService) Get(ctx context.Context, id uint, callerID uint, callerRole domain.Role) (*models.ReclamationResponse, error) {
	reclamation, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if callerRole == domain.RoleResident && reclamation.ResidentID != callerID {
		return nil, ErrNotReclamationOwner
	}
	return reclamation.ToResponse(), nil
}

// UpdateStatus moves a reclamation through its lifecycle and notifies
// the resident of the change.
func (s *ReclamationService) UpdateStatus(ctx context.Context, id, handlerID uint, input *UpdateStatusInput) (*models.ReclamationResponse, error) {
	// 1. Validate target status
	if !validReclamationStatus(input.Status) {
		return nil, domain.ErrInvalidStatus
	}

	// 2. Load and check the transition
	reclamation, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	allowed, open := reclamationTransitions[reclamation.Status]
	if !open {
		return nil, ErrReclamationClosed
	}
	if !contains(allowed, input.Status) {
		return nil, domain.ErrInvalidStatus
	}

	// 3. Apply
	reclamation.Status = input.Status
	reclamation.HandledBy = &handlerID
	if input.Status == domain.ReclamationResolved || input.Status == domain.ReclamationRejected {
		now := time.Now()
		reclamation.ResolvedAt = &now
	}
	if err := s.reclamationRepo.Update(ctx, reclamation); err != nil {
		return nil, err
	}

	// 4. Notify the resident
	if err := s.notifications.Notify(ctx, reclamation.ResidentID,
		"Réclamation mise à jour",
		fmt.Sprintf("Votre réclamation « %s » est passée au statut %s", reclamation.Title, statusLabel(reclamation.Status)),
		models.NotifKindReclamation,
	); err != nil {
		log.Printf("⚠️ Failed to notify resident %d: %v", reclamation.ResidentID, err)
	}

	log.Printf("📋 Reclamation #%d moved to %s by user %d", id, input.Status, handlerID)
	return reclamation.ToResponse(), nil
}

func (s *ReclamationService) load(ctx context.Context, id uint) (*models.Reclamation, error) {
	reclamation, err := s.reclamationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReclamationNotFound
		}
		return nil, err
	}
	return reclamation, nil
}

func (s *ReclamationService) notifySyndic(ctx context.Context, reclamation *models.Reclamation) {
	if reclamation.BuildingID == nil {
		return
	}
	building, err := s.buildingRepo.GetByID(ctx, *reclamation.BuildingID)
	if err != nil || building.SyndicID == nil {
		return
	}
	if err := s.notifications.Notify(ctx, *building.SyndicID,
		"Nouvelle réclamation",
		fmt.Sprintf("Réclamation « %s » déposée dans %s", reclamation.Title, building.Name),
		models.NotifKindReclamation,
	); err != nil {
		log.Printf("⚠️ Failed to notify syndic %d: %v", *building.SyndicID, err)
	}
}

func validReclamationStatus(status string) bool {
	switch status {
	case domain.ReclamationOpen, domain.ReclamationInProgress, domain.ReclamationResolved, domain.ReclamationRejected:
		return true
	}
	return false
}

func statusLabel(status string) string {
	switch status {
	case domain.ReclamationInProgress:
		return "en cours"
	case domain.ReclamationResolved:
		return "résolue"
	case domain.ReclamationRejected:
		return "rejetée"
	default:
		return "ouverte"
	}
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
