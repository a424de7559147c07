package handler

import (
	"go-inventory-orders/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type RoleHandler struct {
	access service.AccessService
	log    *logrus.Entry
}

func NewRoleHandler(access service.AccessService, log *logrus.Entry) *RoleHandler {
	return &RoleHandler{access: access, log: log}
}

// GetRoles returns all available roles
// GET /api/v1/roles
func (h *RoleHandler) GetRoles(c *fiber.Ctx) error {
	roles, err := h.access.Roles(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(roles)
}

// GET /api/v1/privileges
func (h *RoleHandler) GetPrivileges(c *fiber.Ctx) error {
	privileges, err := h.access.Privileges(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(privileges)
}
