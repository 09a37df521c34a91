package handlers

import (
	"errors"
	"time"

	"syndiceasy/internal/adapters/http/middleware"
	"syndiceasy/internal/core/domain"
	"syndiceasy/internal/core/services"
	"syndiceasy/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EventHandler handles calendar event endpoints
type EventHandler struct {
	eventService *services.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// List lists events in a window
// @Summary List events
// @Description List events between two RFC3339 dates, defaulting to the current month
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param from query string false "Window start (RFC3339)"
// @Param to query string false "Window end (RFC3339)"
// @Success 200 {object} response.Response
// @Router /events [get]
func (h *EventHandler) List(c *fiber.Ctx) error {
	var from, to time.Time
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return response.BadRequest(c, "Invalid 'from' date")
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return response.BadRequest(c, "Invalid 'to' date")
		}
		to = parsed
	}

	events, err := h.eventService.ListEvents(c.Context(), from, to)
	if err != nil {
		return response.InternalServerError(c, "Failed to list events")
	}
	return response.Success(c, "Events retrieved", events)
}

// Planning lists the next scheduled events for the staff schedule
// @Summary Get staff planning
// @Description Upcoming events ordered by start date
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /events/planning [get]
func (h *EventHandler) Planning(c *fiber.Ctx) error {
	events, err := h.eventService.Planning(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load planning")
	}
	return response.Success(c, "Planning retrieved", events)
}

// Get retrieves one event
// @Summary Get event
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /events/{id} [get]
func (h *EventHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid event ID")
	}

	event, err := h.eventService.GetEvent(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return response.NotFound(c, "Event not found")
		}
		return response.InternalServerError(c, "Failed to get event")
	}
	return response.Success(c, "Event retrieved", event)
}

// Create creates an event
// @Summary Create event
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateEventInput true "Event data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /events [post]
func (h *EventHandler) Create(c *fiber.Ctx) error {
	var input services.CreateEventInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Title == "" {
		return response.BadRequest(c, "Title is required")
	}
	if input.StartsAt.IsZero() {
		return response.BadRequest(c, "Start date is required")
	}

	event, err := h.eventService.CreateEvent(c.Context(), middleware.CurrentUserID(c), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidEventEnd):
			return response.BadRequest(c, "Event ends before it starts")
		case errors.Is(err, domain.ErrBuildingNotFound):
			return response.NotFound(c, "Building not found")
		default:
			return response.InternalServerError(c, "Failed to create event")
		}
	}
	return response.Created(c, "Event created", event)
}

// Update updates an event
// @Summary Update event
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param body body services.UpdateEventInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /events/{id} [put]
func (h *EventHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid event ID")
	}

	var input services.UpdateEventInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	event, err := h.eventService.UpdateEvent(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			return response.NotFound(c, "Event not found")
		case errors.Is(err, services.ErrInvalidEventEnd):
			return response.BadRequest(c, "Event ends before it starts")
		default:
			return response.InternalServerError(c, "Failed to update event")
		}
	}
	return response.Success(c, "Event updated", event)
}

// Delete deletes an event
// @Summary Delete event
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid event ID")
	}

	if err := h.eventService.DeleteEvent(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return response.NotFound(c, "Event not found")
		}
		return response.InternalServerError(c, "Failed to delete event")
	}
	return response.Success(c, "Event deleted", nil)
}
