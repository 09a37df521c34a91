package handlers

import (
	"syndiceasy/internal/adapters/http/middleware"
	"syndiceasy/internal/core/services"
	"syndiceasy/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles notification endpoints
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List returns the caller's notification feed
// @Summary List notifications
// @Description Return the caller's visible notifications in arrival order
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	if userID == 0 {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.notificationService.Open(c.Context(), userID); err != nil {
		return response.InternalServerError(c, "Failed to load notifications")
	}

	unread, err := h.notificationService.UnreadCount(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load notifications")
	}

	return response.Success(c, "Notifications retrieved", fiber.Map{
		"notifications": h.notificationService.Records(userID),
		"unread_count":  unread,
	})
}

// MarkAllRead marks every notification read in one batch
// @Summary Mark all notifications read
// @Description Flip every unread notification; read ones are removed from the live feed shortly after
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notifications/read [post]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	if userID == 0 {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.notificationService.MarkAllRead(c.Context(), userID); err != nil {
		return response.InternalServerError(c, "Failed to mark notifications read")
	}

	return response.Success(c, "Notifications marked read", nil)
}

// UnreadCount returns the badge value
// @Summary Count unread notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notifications/unread [get]
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	if userID == 0 {
		return response.Unauthorized(c, "Unauthorized")
	}

	unread, err := h.notificationService.UnreadCount(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to count notifications")
	}

	return response.Success(c, "Unread count retrieved", fiber.Map{
		"unread_count": unread,
	})
}
