package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestao-tpt/helpdesk/internal/service"
)

// DashboardHandler serves the aggregated counters.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: dashboardService}
}

// Resumo GET /dashboard/resumo.
func (h *DashboardHandler) Resumo(c *fiber.Ctx) error {
	resumo, err := h.service.Resumo(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": resumo})
}
