package repository

import (
	"context"

	"go-inventory-orders/internal/model"
	"go-inventory-orders/internal/store"

	"github.com/google/uuid"
)

type OrderRepository interface {
	FindAll(ctx context.Context) ([]model.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	Create(ctx context.Context, order *model.Order) error
	Update(ctx context.Context, order *model.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderRepo struct {
	store store.Store
}

func NewOrderRepo(s store.Store) OrderRepository {
	return &orderRepo{store: s}
}

func (r *orderRepo) FindAll(ctx context.Context) ([]model.Order, error) {
	var rows []orderRow
	err := r.store.SelectAll(ctx, tableOrders, store.Query{
		OrderBy: []store.Sort{{Column: "created_at", Desc: true}},
	}, &rows)
	if err != nil {
		return nil, err
	}
	orders := make([]model.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, toOrder(row))
	}
	return orders, nil
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var rows []orderRow
	err := r.store.SelectAll(ctx, tableOrders, store.Query{
		Filters: []store.Filter{{Column: "id", Value: id}},
	}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}
	o := toOrder(rows[0])
	return &o, nil
}

func (r *orderRepo) Create(ctx context.Context, order *model.Order) error {
	row := fromOrder(*order)
	if err := r.store.Insert(ctx, tableOrders, &row); err != nil {
		return err
	}
	*order = toOrder(row)
	return nil
}

func (r *orderRepo) Update(ctx context.Context, order *model.Order) error {
	row := fromOrder(*order)
	if err := r.store.UpdateByID(ctx, tableOrders, order.ID, &row); err != nil {
		return err
	}
	*order = toOrder(row)
	return nil
}

func (r *orderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.DeleteByID(ctx, tableOrders, id)
}
