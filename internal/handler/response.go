package handler

import (
	"errors"

	"go-inventory-orders/internal/gallery"
	"go-inventory-orders/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var notFound = []error{
	service.ErrProductNotFound,
	service.ErrOptionNotFound,
	service.ErrOrderNotFound,
	service.ErrImageNotFound,
	service.ErrCategoryNotFound,
	gallery.ErrImageNotFound,
}

// respondError maps service errors onto HTTP statuses. Anything unrecognised
// is logged and reported as a generic 500.
func respondError(c *fiber.Ctx, log *logrus.Entry, err error) error {
	var v *service.ValidationError
	if errors.As(err, &v) {
		return c.Status(400).JSON(fiber.Map{"error": v.Error(), "field": v.Field})
	}
	if errors.Is(err, gallery.ErrBadDirection) {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	for _, target := range notFound {
		if errors.Is(err, target) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
	}

	log.WithError(err).WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).Error("request failed")
	return c.Status(500).JSON(fiber.Map{"error": "Something went wrong, please try again"})
}

func paramID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, &service.ValidationError{Field: name, Message: "must be a valid id"}
	}
	return id, nil
}

func invalidJSON(c *fiber.Ctx) error {
	return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
}
