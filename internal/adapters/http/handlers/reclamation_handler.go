package handlers

import (
	"errors"

	"syndiceasy/internal/adapters/http/middleware"
	"syndiceasy/internal/core/domain"
	"syndiceasy/internal/core/services"
	"syndiceasy/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReclamationHandler handles reclamation endpoints
type ReclamationHandler struct {
	reclamationService *services.ReclamationService
}

// NewReclamationHandler creates a new reclamation handler
func NewReclamationHandler(reclamationService *services.ReclamationService) *ReclamationHandler {
	return &ReclamationHandler{reclamationService: reclamationService}
}

// Create opens a reclamation for the calling resident
// @Summary Create reclamation
// @Tags Reclamations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateReclamationInput true "Reclamation data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /reclamations [post]
func (h *ReclamationHandler) Create(c *fiber.Ctx) error {
	var input services.CreateReclamationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Title == "" {
		return response.BadRequest(c, "Title is required")
	}

	reclamation, err := h.reclamationService.Create(c.Context(), middleware.CurrentUserID(c), &input)
	if err != nil {
		return response.InternalServerError(c, "Failed to create reclamation")
	}
	return response.Created(c, "Reclamation created", reclamation)
}

// List lists reclamations for staff
// @Summary List reclamations
// @Description List reclamations with pagination, optionally filtered by status
// @Tags Reclamations
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (OPEN, IN_PROGRESS, RESOLVED, REJECTED)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response
// @Router /reclamations [get]
func (h *ReclamationHandler) List(c *fiber.Ctx) error {
	input := &services.ListReclamationsInput{
		Status: c.Query("status"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 10),
	}

	result, err := h.reclamationService.List(c.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			return response.BadRequest(c, "Invalid status filter")
		}
		return response.InternalServerError(c, "Failed to list reclamations")
	}
	return response.Success(c, "Reclamations retrieved", result)
}

// ListMine lists the calling resident's own reclamations
// @Summary List own reclamations
// @Tags Reclamations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /reclamations/mine [get]
func (h *ReclamationHandler) ListMine(c *fiber.Ctx) error {
	reclamations, err := h.reclamationService.ListMine(c.Context(), middleware.CurrentUserID(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to list reclamations")
	}
	return response.Success(c, "Reclamations retrieved", reclamations)
}

// Get retrieves one reclamation
// @Summary Get reclamation
// @Tags Reclamations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reclamation ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reclamations/{id} [get]
func (h *ReclamationHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid reclamation ID")
	}

	reclamation, err := h.reclamationService.Get(c.Context(), uint(id), middleware.CurrentUserID(c), middleware.CurrentRole(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrReclamationNotFound):
			return response.NotFound(c, "Reclamation not found")
		case errors.Is(err, services.ErrNotReclamationOwner):
			return response.Forbidden(c, "This reclamation belongs to another resident")
		default:
			return response.InternalServerError(c, "Failed to get reclamation")
		}
	}
	return response.Success(c, "Reclamation retrieved", reclamation)
}

// UpdateStatus moves a reclamation through its lifecycle
// @Summary Update reclamation status
// @Description Move a reclamation to IN_PROGRESS, RESOLVED or REJECTED
// @Tags Reclamations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reclamation ID"
// @Param body body services.UpdateStatusInput true "Target status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reclamations/{id}/status [put]
func (h *ReclamationHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid reclamation ID")
	}

	var input services.UpdateStatusInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	reclamation, err := h.reclamationService.UpdateStatus(c.Context(), uint(id), middleware.CurrentUserID(c), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrReclamationNotFound):
			return response.NotFound(c, "Reclamation not found")
		case errors.Is(err, domain.ErrInvalidStatus):
			return response.BadRequest(c, "Invalid status transition")
		case errors.Is(err, services.ErrReclamationClosed):
			return response.BadRequest(c, "Reclamation already resolved or rejected")
		default:
			return response.InternalServerError(c, "Failed to update reclamation")
		}
	}
	return response.Success(c, "Reclamation updated", reclamation)
}
