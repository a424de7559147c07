package model

import (
	"time"

	"github.com/google/uuid"
)

// ImageRole selects which group of a product gallery an image belongs to.
type ImageRole string

const (
	ImageMain       ImageRole = "main"
	ImageAdditional ImageRole = "additional"
	ImageVariant    ImageRole = "variant"
)

// MainImagePosition is the fixed position of the main image.
const MainImagePosition = 1

type ProductImage struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"productId"`
	ImageURL    string    `json:"imageUrl"`
	Order       int       `json:"order"`
	VariantID   string    `json:"variantId,omitempty"`
	VariantName string    `json:"variantName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Role derives the gallery group from the stored fields.
func (img ProductImage) Role() ImageRole {
	switch {
	case img.VariantID != "":
		return ImageVariant
	case img.Order <= MainImagePosition:
		return ImageMain
	default:
		return ImageAdditional
	}
}
