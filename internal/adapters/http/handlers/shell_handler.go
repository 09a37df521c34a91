package handlers

import (
	"syndiceasy/internal/core/navigation"
	"syndiceasy/internal/core/services"
	"syndiceasy/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ShellHandler serves the client shell: bootstrap state, guard
// decisions for navigation, and the sidebar menu.
type ShellHandler struct {
	shellService *services.ShellService
}

// NewShellHandler creates a new shell handler
func NewShellHandler(shellService *services.ShellService) *ShellHandler {
	return &ShellHandler{shellService: shellService}
}

// Bootstrap returns everything the client needs after a full reload
// @Summary Bootstrap the client shell
// @Description Resolve session, guard decision, menu and notifications for the requested path
// @Tags Shell
// @Produce json
// @Param path query string false "Requested path" default(/)
// @Success 200 {object} response.Response
// @Router /shell [get]
func (h *ShellHandler) Bootstrap(c *fiber.Ctx) error {
	requestedPath := c.Query("path", "/")

	state, err := h.shellService.Bootstrap(c.Context(), requestedPath, c.Cookies("refresh_token"))
	if err != nil {
		return response.InternalServerError(c, "Failed to bootstrap shell")
	}

	return response.Success(c, "Shell resolved", state)
}

// Navigate evaluates the route guard for one in-app navigation
// @Summary Evaluate a navigation
// @Description Run the route guard for a path and return the decision
// @Tags Shell
// @Produce json
// @Param path query string true "Target path"
// @Param from query string false "Path the user was on before login"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /shell/navigate [get]
func (h *ShellHandler) Navigate(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return response.BadRequest(c, "path query parameter is required")
	}

	decision := h.shellService.Evaluate(path, navigation.NavState{
		PreLoginPath: c.Query("from"),
	})

	return response.Success(c, "Navigation evaluated", decision)
}

// Menu returns the sidebar for the current role
// @Summary Get the sidebar menu
// @Description Return the role's menu entries with the active path marked
// @Tags Shell
// @Produce json
// @Security BearerAuth
// @Param active query string false "Currently active path"
// @Success 200 {object} response.Response
// @Router /shell/menu [get]
func (h *ShellHandler) Menu(c *fiber.Ctx) error {
	entries := h.shellService.Menu(c.Query("active"))
	return response.Success(c, "Menu built", fiber.Map{
		"entries": entries,
	})
}
