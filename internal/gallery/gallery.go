// Package gallery groups product images by role and reorders them. It is pure;
// persisting positions is the caller's job.
package gallery

import (
	"errors"
	"sort"

	"github.com/google/uuid"

	"go-inventory-orders/internal/model"
)

var (
	ErrImageNotFound = errors.New("image not found in group")
	ErrBadDirection  = errors.New("direction must be up or down")
)

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Gallery holds the three disjoint image groups of one product.
type Gallery struct {
	Main       *model.ProductImage             `json:"main"`
	Additional []model.ProductImage            `json:"additional"`
	Variants   map[string][]model.ProductImage `json:"variants"`
}

// Partition splits images into main, additional (sorted by position) and
// per-variant groups. If several rows claim the main slot the earliest wins and
// the rest are treated as additional.
func Partition(images []model.ProductImage) Gallery {
	g := Gallery{
		Additional: []model.ProductImage{},
		Variants:   map[string][]model.ProductImage{},
	}
	for _, img := range images {
		switch img.Role() {
		case model.ImageVariant:
			g.Variants[img.VariantID] = append(g.Variants[img.VariantID], img)
		case model.ImageMain:
			if g.Main == nil || img.CreatedAt.Before(g.Main.CreatedAt) {
				if g.Main != nil {
					g.Additional = append(g.Additional, *g.Main)
				}
				main := img
				g.Main = &main
				continue
			}
			g.Additional = append(g.Additional, img)
		default:
			g.Additional = append(g.Additional, img)
		}
	}
	sortByPosition(g.Additional)
	return g
}

// NextPosition is the position for an image appended to the additional group.
func NextPosition(additional []model.ProductImage) int {
	next := model.MainImagePosition + 1
	for _, img := range additional {
		if img.Order >= next {
			next = img.Order + 1
		}
	}
	return next
}

// Move swaps the position of image id with its neighbour in the given direction
// and returns the reordered group. Every image in the returned group should be
// persisted. Moving past either end leaves the group as it was.
func Move(group []model.ProductImage, id uuid.UUID, dir Direction) ([]model.ProductImage, error) {
	if dir != Up && dir != Down {
		return nil, ErrBadDirection
	}

	out := make([]model.ProductImage, len(group))
	copy(out, group)
	sortByPosition(out)

	idx := -1
	for i := range out {
		if out[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrImageNotFound
	}

	other := idx - 1
	if dir == Down {
		other = idx + 1
	}
	if other < 0 || other >= len(out) {
		return out, nil
	}

	out[idx].Order, out[other].Order = out[other].Order, out[idx].Order
	out[idx], out[other] = out[other], out[idx]
	return out, nil
}

// Remove drops image id from the group. Survivors keep their positions, so
// gaps are expected after deletes.
func Remove(group []model.ProductImage, id uuid.UUID) []model.ProductImage {
	out := make([]model.ProductImage, 0, len(group))
	for _, img := range group {
		if img.ID != id {
			out = append(out, img)
		}
	}
	return out
}

func sortByPosition(images []model.ProductImage) {
	sort.SliceStable(images, func(i, j int) bool {
		if images[i].Order != images[j].Order {
			return images[i].Order < images[j].Order
		}
		return images[i].CreatedAt.Before(images[j].CreatedAt)
	})
}
