package handler

import (
	"go-inventory-orders/internal/panel"
	"go-inventory-orders/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CategoryHandler struct {
	panel      panel.Controller
	categories service.CategoryService
	log        *logrus.Entry
}

func NewCategoryHandler(p panel.Controller, categories service.CategoryService, log *logrus.Entry) *CategoryHandler {
	return &CategoryHandler{panel: p, categories: categories, log: log}
}

// GET /api/v1/categories
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.categories.List(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(categories)
}

// POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var in service.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return invalidJSON(c)
	}
	category, err := h.panel.CreateCategory(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Category created", "data": category})
}
