package handlers

import (
	"errors"

	"syndiceasy/internal/core/domain"
	"syndiceasy/internal/core/services"
	"syndiceasy/internal/pkg/pagination"
	"syndiceasy/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BuildingHandler handles building and apartment endpoints
type BuildingHandler struct {
	buildingService *services.BuildingService
}

// NewBuildingHandler creates a new building handler
func NewBuildingHandler(buildingService *services.BuildingService) *BuildingHandler {
	return &BuildingHandler{buildingService: buildingService}
}

// List lists buildings
// @Summary List buildings
// @Tags Buildings
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response
// @Router /buildings [get]
func (h *BuildingHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	result, err := h.buildingService.ListBuildings(c.Context(), params.Page, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list buildings")
	}
	return response.Success(c, "Buildings retrieved", result)
}

// Get retrieves one building
// @Summary Get building
// @Tags Buildings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Building ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /buildings/{id} [get]
func (h *BuildingHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid building ID")
	}

	building, err := h.buildingService.GetBuilding(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrBuildingNotFound) {
			return response.NotFound(c, "Building not found")
		}
		return response.InternalServerError(c, "Failed to get building")
	}
	return response.Success(c, "Building retrieved", building)
}

// Create creates a building
// @Summary Create building
// @Tags Buildings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateBuildingInput true "Building data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /buildings [post]
func (h *BuildingHandler) Create(c *fiber.Ctx) error {
	var input services.CreateBuildingInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Name == "" {
		return response.BadRequest(c, "Building name is required")
	}

	building, err := h.buildingService.CreateBuilding(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBuildingNameTaken):
			return response.Conflict(c, "Building name already in use")
		case errors.Is(err, services.ErrSyndicRequired):
			return response.BadRequest(c, "Assigned syndic must have the SYNDIC role")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "Syndic not found")
		default:
			return response.InternalServerError(c, "Failed to create building")
		}
	}
	return response.Created(c, "Building created", building)
}

// Update updates a building
// @Summary Update building
// @Tags Buildings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Building ID"
// @Param body body services.UpdateBuildingInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /buildings/{id} [put]
func (h *BuildingHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid building ID")
	}

	var input services.UpdateBuildingInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	building, err := h.buildingService.UpdateBuilding(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBuildingNotFound):
			return response.NotFound(c, "Building not found")
		case errors.Is(err, services.ErrSyndicRequired):
			return response.BadRequest(c, "Assigned syndic must have the SYNDIC role")
		default:
			return response.InternalServerError(c, "Failed to update building")
		}
	}
	return response.Success(c, "Building updated", building)
}

// Delete deletes a building
// @Summary Delete building
// @Tags Buildings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Building ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /buildings/{id} [delete]
func (h *BuildingHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid building ID")
	}

	if err := h.buildingService.DeleteBuilding(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrBuildingNotFound) {
			return response.NotFound(c, "Building not found")
		}
		return response.InternalServerError(c, "Failed to delete building")
	}
	return response.Success(c, "Building deleted", nil)
}

// ListApartments lists a building's apartments
// @Summary List apartments
// @Tags Buildings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Building ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /buildings/{id}/apartments [get]
func (h *BuildingHandler) ListApartments(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid building ID")
	}

	apartments, err := h.buildingService.ListApartments(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrBuildingNotFound) {
			return response.NotFound(c, "Building not found")
		}
		return response.InternalServerError(c, "Failed to list apartments")
	}
	return response.Success(c, "Apartments retrieved", apartments)
}

// CreateApartment creates an apartment
// @Summary Create apartment
// @Tags Buildings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Building ID"
// @Param body body services.CreateApartmentInput true "Apartment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /buildings/{id}/apartments [post]
func (h *BuildingHandler) CreateApartment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid building ID")
	}

	var input services.CreateApartmentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	input.BuildingID = uint(id)
	if input.Number == "" {
		return response.BadRequest(c, "Apartment number is required")
	}

	apartment, err := h.buildingService.CreateApartment(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBuildingNotFound):
			return response.NotFound(c, "Building not found")
		case errors.Is(err, services.ErrResidentRequired):
			return response.BadRequest(c, "Assigned resident must have the RESIDENT role")
		case errors.Is(err, domain.ErrApartmentOccupied):
			return response.Conflict(c, "Resident already occupies an apartment")
		default:
			return response.InternalServerError(c, "Failed to create apartment")
		}
	}
	return response.Created(c, "Apartment created", apartment)
}

// AssignResident assigns or clears an apartment's resident
// @Summary Assign resident
// @Tags Buildings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Apartment ID"
// @Param body body services.AssignResidentInput true "Resident assignment (null clears)"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /apartments/{id}/resident [put]
func (h *BuildingHandler) AssignResident(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid apartment ID")
	}

	var input services.AssignResidentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	apartment, err := h.buildingService.AssignResident(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrApartmentNotFound):
			return response.NotFound(c, "Apartment not found")
		case errors.Is(err, services.ErrResidentRequired):
			return response.BadRequest(c, "Assigned resident must have the RESIDENT role")
		case errors.Is(err, domain.ErrApartmentOccupied):
			return response.Conflict(c, "Resident already occupies an apartment")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "Resident not found")
		default:
			return response.InternalServerError(c, "Failed to assign resident")
		}
	}
	return response.Success(c, "Resident assigned", apartment)
}

// DeleteApartment deletes an apartment
// @Summary Delete apartment
// @Tags Buildings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Apartment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /apartments/{id} [delete]
func (h *BuildingHandler) DeleteApartment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid apartment ID")
	}

	if err := h.buildingService.DeleteApartment(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrApartmentNotFound) {
			return response.NotFound(c, "Apartment not found")
		}
		return response.InternalServerError(c, "Failed to delete apartment")
	}
	return response.Success(c, "Apartment deleted", nil)
}
