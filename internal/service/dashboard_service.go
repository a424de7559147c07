package service

import (
	"context"
	"fmt"

	"go-inventory-orders/internal/model"
	"go-inventory-orders/internal/pricing"
	"go-inventory-orders/internal/repository"

	"golang.org/x/sync/errgroup"
)

// DateRange bounds orders by order date, both ends inclusive. Empty ends are
// open.
type DateRange struct {
	From string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `json:"to" validate:"omitempty,datetime=2006-01-02"`
}

func (r DateRange) Contains(date string) bool {
	if r.From != "" && date < r.From {
		return false
	}
	if r.To != "" && date > r.To {
		return false
	}
	return true
}

type DashboardStats struct {
	Range  DateRange            `json:"range"`
	Stock  pricing.StockSummary `json:"stock"`
	Orders pricing.OrderSummary `json:"orders"`
}

type DashboardService interface {
	Stats(ctx context.Context, r DateRange) (*DashboardStats, error)
}

type dashboardService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
}

func NewDashboardService(products repository.ProductRepository, orders repository.OrderRepository) DashboardService {
	return &dashboardService{products: products, orders: orders}
}

func (s *dashboardService) Stats(ctx context.Context, r DateRange) (*DashboardStats, error) {
	if err := validate(&r); err != nil {
		return nil, err
	}
	if r.From != "" && r.To != "" && r.From > r.To {
		return nil, invalid("from", "must not be after to")
	}

	var products []model.Product
	var orders []model.Order
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.products.FindAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		orders, err = s.orders.FindAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}

	inRange := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if r.Contains(o.OrderDate) {
			inRange = append(inRange, o)
		}
	}
	return &DashboardStats{
		Range:  r,
		Stock:  pricing.SummarizeStock(products),
		Orders: pricing.SummarizeOrders(inRange),
	}, nil
}
