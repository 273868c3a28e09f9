package handler

import (
	"github.com/gofiber/fiber/v2"

	"buildsite-be/internal/middleware"
	"buildsite-be/internal/service/dashboard"
)

type DashboardHandler struct {
	dashboardService dashboard.Service
}

func NewDashboardHandler(dashboardService dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	stats, err := h.dashboardService.GetStats(c.Context(), user.CompanyID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
