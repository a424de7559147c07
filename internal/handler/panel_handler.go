package handler

import (
	"go-inventory-orders/internal/panel"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type PanelHandler struct {
	panel panel.Controller
	log   *logrus.Entry
}

func NewPanelHandler(p panel.Controller, log *logrus.Entry) *PanelHandler {
	return &PanelHandler{panel: p, log: log}
}

// GetPanel returns the current lists in one payload.
// GET /api/v1/panel
func (h *PanelHandler) GetPanel(c *fiber.Ctx) error {
	return c.JSON(h.panel.Snapshot())
}

// Reload refetches every list. On failure the previous lists are still
// returned along with the error.
// POST /api/v1/panel/reload
func (h *PanelHandler) Reload(c *fiber.Ctx) error {
	if err := h.panel.Load(c.UserContext()); err != nil {
		return c.Status(503).JSON(h.panel.Snapshot())
	}
	return c.JSON(h.panel.Snapshot())
}
