package handlers

import (
	"syndiceasy/internal/adapters/http/middleware"
	"syndiceasy/internal/core/services"
	"syndiceasy/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles the dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats returns aggregate platform figures
// @Summary Get dashboard stats
// @Description Aggregate user, residence, reclamation and caisse figures
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetStats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}
	return response.Success(c, "Dashboard retrieved", stats)
}

// SyndicStats returns the per-building view for the calling syndic
// @Summary Get syndic dashboard
// @Description Apartment occupancy, open reclamations and caisse balance per managed building
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/syndic [get]
func (h *DashboardHandler) SyndicStats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetSyndicStats(c.Context(), middleware.CurrentUserID(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}
	return response.Success(c, "Dashboard retrieved", stats)
}
