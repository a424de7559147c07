package handler

import (
	"go-inventory-orders/internal/panel"
	"go-inventory-orders/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ProductHandler struct {
	panel    panel.Controller
	products service.ProductService
	log      *logrus.Entry
}

func NewProductHandler(p panel.Controller, products service.ProductService, log *logrus.Entry) *ProductHandler {
	return &ProductHandler{panel: p, products: products, log: log}
}

// GET /api/v1/products
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	return c.JSON(h.panel.Snapshot().Products)
}

// GetProduct returns one product with its images.
// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	product, err := h.products.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(product)
}

// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var in service.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return invalidJSON(c)
	}
	product, err := h.panel.CreateProduct(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

// PUT /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var in service.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return invalidJSON(c)
	}
	product, err := h.panel.UpdateProduct(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

// DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.panel.DeleteProduct(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// UpdateOption edits a single variant in place.
// PATCH /api/v1/products/:id/options/:optionId
func (h *ProductHandler) UpdateOption(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var patch service.OptionPatch
	if err := c.BodyParser(&patch); err != nil {
		return invalidJSON(c)
	}
	product, err := h.panel.UpdateOption(c.UserContext(), id, c.Params("optionId"), patch)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Option updated", "data": product})
}

// GET /api/v1/product-types
func (h *ProductHandler) GetProductTypes(c *fiber.Ctx) error {
	types, err := h.products.ProductTypes(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(types)
}
