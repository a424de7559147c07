package repository

import (
	"context"

	"go-inventory-orders/internal/model"
	"go-inventory-orders/internal/store"
)

type CategoryRepository interface {
	FindAll(ctx context.Context) ([]model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
	Create(ctx context.Context, name string) (*model.Category, error)
}

type categoryRepo struct {
	store store.Store
}

func NewCategoryRepo(s store.Store) CategoryRepository {
	return &categoryRepo{store: s}
}

func (r *categoryRepo) FindAll(ctx context.Context) ([]model.Category, error) {
	var rows []categoryRow
	err := r.store.SelectAll(ctx, tableCategories, store.Query{
		OrderBy: []store.Sort{{Column: "name"}},
	}, &rows)
	if err != nil {
		return nil, err
	}
	categories := make([]model.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, toCategory(row))
	}
	return categories, nil
}

func (r *categoryRepo) FindByName(ctx context.Context, name string) (*model.Category, error) {
	var rows []categoryRow
	err := r.store.SelectAll(ctx, tableCategories, store.Query{
		Filters: []store.Filter{{Column: "name", Value: name}},
	}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}
	c := toCategory(rows[0])
	return &c, nil
}

func (r *categoryRepo) Create(ctx context.Context, name string) (*model.Category, error) {
	row := categoryRow{Name: name}
	if err := r.store.Insert(ctx, tableCategories, &row); err != nil {
		return nil, err
	}
	c := toCategory(row)
	return &c, nil
}
