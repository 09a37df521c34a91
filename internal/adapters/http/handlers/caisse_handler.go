package handlers

import (
	"errors"

	"syndiceasy/internal/adapters/http/middleware"
	"syndiceasy/internal/core/domain"
	"syndiceasy/internal/core/services"
	"syndiceasy/internal/pkg/pagination"
	"syndiceasy/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CaisseHandler handles building fund endpoints
type CaisseHandler struct {
	caisseService *services.CaisseService
}

// NewCaisseHandler creates a new caisse handler
func NewCaisseHandler(caisseService *services.CaisseService) *CaisseHandler {
	return &CaisseHandler{caisseService: caisseService}
}

// List lists funds
// @Summary List caisses
// @Tags Caisse
// @Produce json
// @Security BearerAuth
// @Param building_id query int false "Filter by building"
// @Success 200 {object} response.Response
// @Router /caisses [get]
func (h *CaisseHandler) List(c *fiber.Ctx) error {
	caisses, err := h.caisseService.ListCaisses(c.Context(), uint(c.QueryInt("building_id", 0)))
	if err != nil {
		return response.InternalServerError(c, "Failed to list caisses")
	}
	return response.Success(c, "Caisses retrieved", caisses)
}

// Get retrieves one fund
// @Summary Get caisse
// @Tags Caisse
// @Produce json
// @Security BearerAuth
// @Param id path int true "Caisse ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /caisses/{id} [get]
func (h *CaisseHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid caisse ID")
	}

	caisse, err := h.caisseService.GetCaisse(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrCaisseNotFound) {
			return response.NotFound(c, "Caisse not found")
		}
		return response.InternalServerError(c, "Failed to get caisse")
	}
	return response.Success(c, "Caisse retrieved", caisse)
}

// Create creates a fund
// @Summary Create caisse
// @Tags Caisse
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateCaisseInput true "Caisse data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /caisses [post]
func (h *CaisseHandler) Create(c *fiber.Ctx) error {
	var input services.CreateCaisseInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Name == "" {
		return response.BadRequest(c, "Caisse name is required")
	}

	caisse, err := h.caisseService.CreateCaisse(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBuildingNotFound):
			return response.NotFound(c, "Building not found")
		case errors.Is(err, domain.ErrInvalidTransaction):
			return response.BadRequest(c, "Initial balance cannot be negative")
		default:
			return response.InternalServerError(c, "Failed to create caisse")
		}
	}
	return response.Created(c, "Caisse created", caisse)
}

// AddTransaction records a credit or debit
// @Summary Record transaction
// @Description Record a CREDIT or DEBIT and move the balance atomically
// @Tags Caisse
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Caisse ID"
// @Param body body services.TransactionInput true "Transaction data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /caisses/{id}/transactions [post]
func (h *CaisseHandler) AddTransaction(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid caisse ID")
	}

	var input services.TransactionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	tx, err := h.caisseService.AddTransaction(c.Context(), uint(id), middleware.CurrentUserID(c), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCaisseNotFound):
			return response.NotFound(c, "Caisse not found")
		case errors.Is(err, domain.ErrInvalidTransaction):
			return response.BadRequest(c, "Invalid transaction kind or amount")
		case errors.Is(err, domain.ErrInsufficientFunds):
			return response.BadRequest(c, "Insufficient funds")
		default:
			return response.InternalServerError(c, "Failed to record transaction")
		}
	}
	return response.Created(c, "Transaction recorded", tx)
}

// ListTransactions lists a fund's history
// @Summary List transactions
// @Tags Caisse
// @Produce json
// @Security BearerAuth
// @Param id path int true "Caisse ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /caisses/{id}/transactions [get]
func (h *CaisseHandler) ListTransactions(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid caisse ID")
	}

	params := pagination.GetParams(c)
	result, err := h.caisseService.ListTransactions(c.Context(), uint(id), params.Page, params.Limit)
	if err != nil {
		if errors.Is(err, domain.ErrCaisseNotFound) {
			return response.NotFound(c, "Caisse not found")
		}
		return response.InternalServerError(c, "Failed to list transactions")
	}
	return response.Success(c, "Transactions retrieved", result)
}
