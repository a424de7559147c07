package handler

import (
	"go-inventory-orders/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type DashboardHandler struct {
	service service.DashboardService
	log     *logrus.Entry
}

func NewDashboardHandler(s service.DashboardService, log *logrus.Entry) *DashboardHandler {
	return &DashboardHandler{service: s, log: log}
}

// GetDashboardStats returns stock and order figures.
// Query params: from, to (YYYY-MM-DD, both optional, inclusive)
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext(), service.DateRange{
		From: c.Query("from"),
		To:   c.Query("to"),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(stats)
}
