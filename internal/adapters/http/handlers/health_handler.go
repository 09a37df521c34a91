package handlers

import (
	"time"

	"syndiceasy/internal/config"
	"syndiceasy/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	startedAt time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now()}
}

// Check returns service health
// @Summary Health check
// @Description Report service and database health
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "up"
	if err := config.HealthCheck(); err != nil {
		dbStatus = "down"
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success":  false,
			"database": dbStatus,
			"uptime":   time.Since(h.startedAt).String(),
		})
	}

	return response.Success(c, "Service healthy", fiber.Map{
		"database": dbStatus,
		"uptime":   time.Since(h.startedAt).String(),
	})
}
