package handler

import (
	"fmt"
	"time"

	"go-inventory-orders/internal/export"
	"go-inventory-orders/internal/model"
	"go-inventory-orders/internal/panel"
	"go-inventory-orders/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type OrderHandler struct {
	panel  panel.Controller
	orders service.OrderService
	log    *logrus.Entry
}

func NewOrderHandler(p panel.Controller, orders service.OrderService, log *logrus.Entry) *OrderHandler {
	return &OrderHandler{panel: p, orders: orders, log: log}
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// DraftItemRequest adds a line to an order that has not been saved yet.
type DraftItemRequest struct {
	Items     []model.OrderItem `json:"items"`
	ProductID string            `json:"productId"`
	OptionID  string            `json:"optionId"`
}

type StatusResponse struct {
	Code  string            `json:"code"`
	Label model.OrderStatus `json:"label"`
}

// GET /api/v1/orders
func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	return c.JSON(h.panel.Snapshot().Orders)
}

// GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	order, err := h.orders.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(order)
}

// POST /api/v1/orders
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var in service.OrderInput
	if err := c.BodyParser(&in); err != nil {
		return invalidJSON(c)
	}
	order, err := h.panel.CreateOrder(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Order created", "data": order})
}

// PUT /api/v1/orders/:id
func (h *OrderHandler) UpdateOrder(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var in service.OrderInput
	if err := c.BodyParser(&in); err != nil {
		return invalidJSON(c)
	}
	order, err := h.panel.UpdateOrder(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Order updated", "data": order})
}

// UpdateStatus writes the stage as given; any stage may follow any other.
// PUT /api/v1/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	order, err := h.panel.UpdateOrderStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Order status updated", "data": order})
}

// DELETE /api/v1/orders/:id
func (h *OrderHandler) DeleteOrder(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.panel.DeleteOrder(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Order deleted"})
}

// AddItem adds one unit of a product option to a saved order.
// POST /api/v1/orders/:id/items
func (h *OrderHandler) AddItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var ref service.LineRef
	if err := c.BodyParser(&ref); err != nil {
		return invalidJSON(c)
	}
	order, err := h.panel.AddOrderItem(c.UserContext(), id, ref)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Item added", "data": order})
}

// POST /api/v1/orders/draft/items
func (h *OrderHandler) DraftItem(c *fiber.Ctx) error {
	var req DraftItemRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	ref := service.LineRef{OptionID: req.OptionID}
	if err := ref.ProductID.UnmarshalText([]byte(req.ProductID)); err != nil {
		return respondError(c, h.log, &service.ValidationError{Field: "productId", Message: "must be a valid id"})
	}
	items, err := h.panel.DraftOrderItem(req.Items, ref)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(items)
}

// Preview returns the order with totals derived, without saving it.
// POST /api/v1/orders/preview
func (h *OrderHandler) Preview(c *fiber.Ctx) error {
	var in service.OrderInput
	if err := c.BodyParser(&in); err != nil {
		return invalidJSON(c)
	}
	order, err := h.orders.Preview(in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(order)
}

// GET /api/v1/orders/statuses
func (h *OrderHandler) GetStatuses(c *fiber.Ctx) error {
	out := make([]StatusResponse, 0, len(model.OrderStatuses))
	for _, s := range model.OrderStatuses {
		out = append(out, StatusResponse{Code: s.Code(), Label: s})
	}
	return c.JSON(out)
}

// Export downloads every order as an XLSX workbook.
// GET /api/v1/orders/export
func (h *OrderHandler) Export(c *fiber.Ctx) error {
	orders, err := h.orders.List(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	f, err := export.OrdersWorkbook(orders)
	if err != nil {
		return respondError(c, h.log, err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return respondError(c, h.log, err)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=orders_%s.xlsx", time.Now().Format("20060102")))
	return c.Send(buf.Bytes())
}
