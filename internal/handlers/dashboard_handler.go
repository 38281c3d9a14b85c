package handlers

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
	auditService     *services.AuditService
}

func NewDashboardHandler(dashboardService *services.DashboardService, auditService *services.AuditService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, auditService: auditService}
}

func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.Stats(c.UserContext())
	if err != nil {
		slog.Error("failed to compute dashboard stats", "error", err)
		return internalError(c, "Failed to load stats")
	}
	return c.JSON(stats)
}

// AuditLogs lists recent audit entries; ?limit= caps the count.
func (h *DashboardHandler) AuditLogs(c *fiber.Ctx) error {
	logs, err := h.auditService.List(c.UserContext(), c.QueryInt("limit", 100))
	if err != nil {
		slog.Error("failed to list audit logs", "error", err)
		return internalError(c, "Failed to list audit logs")
	}
	return c.JSON(logs)
}
