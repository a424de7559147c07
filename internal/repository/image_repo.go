package repository

import (
	"context"

	"go-inventory-orders/internal/model"
	"go-inventory-orders/internal/store"

	"github.com/google/uuid"
)

type ImageRepository interface {
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]model.ProductImage, error)
	Create(ctx context.Context, img *model.ProductImage) error
	// ReplaceMain deletes the given previous main rows and inserts img, atomically.
	ReplaceMain(ctx context.Context, previous []uuid.UUID, img *model.ProductImage) error
	UpdatePositions(ctx context.Context, images []model.ProductImage) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type imageRepo struct {
	store store.Store
}

func NewImageRepo(s store.Store) ImageRepository {
	return &imageRepo{store: s}
}

func (r *imageRepo) FindByProduct(ctx context.Context, productID uuid.UUID) ([]model.ProductImage, error) {
	var rows []imageRow
	err := r.store.SelectAll(ctx, tableProductImages, store.Query{
		Filters: []store.Filter{{Column: "product_id", Value: productID}},
		OrderBy: []store.Sort{{Column: "order"}, {Column: "created_at"}},
	}, &rows)
	if err != nil {
		return nil, err
	}
	images := make([]model.ProductImage, 0, len(rows))
	for _, row := range rows {
		images = append(images, toImage(row))
	}
	return images, nil
}

func (r *imageRepo) Create(ctx context.Context, img *model.ProductImage) error {
	row := fromImage(*img)
	if err := r.store.Insert(ctx, tableProductImages, &row); err != nil {
		return err
	}
	*img = toImage(row)
	return nil
}

func (r *imageRepo) ReplaceMain(ctx context.Context, previous []uuid.UUID, img *model.ProductImage) error {
	row := fromImage(*img)
	err := r.store.Transaction(ctx, func(tx store.Store) error {
		for _, id := range previous {
			if err := tx.DeleteByID(ctx, tableProductImages, id); err != nil {
				return err
			}
		}
		return tx.Insert(ctx, tableProductImages, &row)
	})
	if err != nil {
		return err
	}
	*img = toImage(row)
	return nil
}

// UpdatePositions writes every image of a reordered group in one transaction.
func (r *imageRepo) UpdatePositions(ctx context.Context, images []model.ProductImage) error {
	return r.store.Transaction(ctx, func(tx store.Store) error {
		for _, img := range images {
			row := fromImage(img)
			if err := tx.UpdateByID(ctx, tableProductImages, img.ID, &row); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *imageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.DeleteByID(ctx, tableProductImages, id)
}
