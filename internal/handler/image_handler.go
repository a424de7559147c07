package handler

import (
	"go-inventory-orders/internal/gallery"
	"go-inventory-orders/internal/model"
	"go-inventory-orders/internal/panel"
	"go-inventory-orders/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ImageHandler struct {
	images service.ImageService
	panel  panel.Controller
	log    *logrus.Entry
}

func NewImageHandler(images service.ImageService, p panel.Controller, log *logrus.Entry) *ImageHandler {
	return &ImageHandler{images: images, panel: p, log: log}
}

type MoveImageRequest struct {
	Direction gallery.Direction `json:"direction"`
}

// GetImages returns the product gallery grouped by role.
// GET /api/v1/products/:id/images
func (h *ImageHandler) GetImages(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	g, err := h.images.List(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(g)
}

// UploadImage accepts multipart fields file, role, variantId and variantName.
// POST /api/v1/products/:id/images
func (h *ImageHandler) UploadImage(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "file is required"})
	}
	file, err := fh.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Unreadable file"})
	}
	defer file.Close()

	img, err := h.images.Upload(c.UserContext(), service.UploadInput{
		ProductID:   id,
		Role:        model.ImageRole(c.FormValue("role")),
		VariantID:   c.FormValue("variantId"),
		VariantName: c.FormValue("variantName"),
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        file,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.refresh(c, id)
	return c.Status(201).JSON(fiber.Map{"message": "Image uploaded", "data": img})
}

// POST /api/v1/products/:id/images/:imageId/move
func (h *ImageHandler) MoveImage(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	imageID, err := paramID(c, "imageId")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var req MoveImageRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	group, err := h.images.Move(c.UserContext(), id, imageID, req.Direction)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(group)
}

// DELETE /api/v1/products/:id/images/:imageId
func (h *ImageHandler) DeleteImage(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	imageID, err := paramID(c, "imageId")
	if err != nil {
		return respondError(c, h.log, err)
	}
	remaining, err := h.images.Delete(c.UserContext(), id, imageID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.refresh(c, id)
	return c.JSON(fiber.Map{"message": "Image deleted", "data": remaining})
}

// refresh pulls the product back into the panel so a changed main image shows
// up in the list.
func (h *ImageHandler) refresh(c *fiber.Ctx, id uuid.UUID) {
	if err := h.panel.RefreshProduct(c.UserContext(), id); err != nil {
		h.log.WithError(err).WithField("product_id", id).Warn("panel refresh after image change failed")
	}
}
