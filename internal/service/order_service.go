package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-inventory-orders/internal/model"
	"go-inventory-orders/internal/pricing"
	"go-inventory-orders/internal/repository"
	"go-inventory-orders/internal/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type OrderInput struct {
	Items        []ItemInput  `json:"items" validate:"dive"`
	ShippingCost model.Number `json:"shippingCost" validate:"gte=0"`
	Deposit      model.Number `json:"deposit" validate:"gte=0"`
	Discount     model.Number `json:"discount" validate:"gte=0"`
	Status       string       `json:"status"`
	OrderDate    string       `json:"orderDate" validate:"omitempty,datetime=2006-01-02"`
	PaymentDate  string       `json:"paymentDate" validate:"omitempty,datetime=2006-01-02"`
	PaymentSlip  string       `json:"paymentSlip"`
	Username     string       `json:"username" validate:"notblank"`
	Address      string       `json:"address" validate:"notblank"`
}

// ItemInput is an order line as edited by staff. Unit price and cost are taken
// as given; the snapshot fields were captured when the line was added.
type ItemInput struct {
	ProductID    uuid.UUID    `json:"productId" validate:"uuid_required"`
	OptionID     string       `json:"optionId"`
	SKU          string       `json:"sku"`
	Name         string       `json:"name"`
	Image        string       `json:"image"`
	Quantity     int          `json:"quantity" validate:"gte=1"`
	SellingPrice model.Number `json:"sellingPrice"`
	CostThb      model.Number `json:"costThb"`
}

// LineRef picks a product, and optionally one of its options, to add to an order.
type LineRef struct {
	ProductID uuid.UUID `json:"productId" validate:"uuid_required"`
	OptionID  string    `json:"optionId"`
}

// OrderExporter forwards new orders to an outside sheet.
type OrderExporter interface {
	ExportOrder(o model.Order) <-chan struct{}
}

type OrderService interface {
	List(ctx context.Context) ([]model.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Order, error)
	Create(ctx context.Context, in OrderInput) (*model.Order, error)
	Update(ctx context.Context, id uuid.UUID, in OrderInput) (*model.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddItem(ctx context.Context, orderID uuid.UUID, ref LineRef) (*model.Order, error)
	DraftItem(items []model.OrderItem, p model.Product, optionID string) ([]model.OrderItem, error)
	Preview(in OrderInput) (model.Order, error)
}

type orderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	exporter OrderExporter
	notify   Notifier
	log      *logrus.Entry
	now      func() time.Time
}

func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	exporter OrderExporter,
	notify Notifier,
	log *logrus.Entry,
) OrderService {
	return &orderService{
		orders:   orders,
		products: products,
		exporter: exporter,
		notify:   notifierOrNop(notify),
		log:      log,
		now:      time.Now,
	}
}

func (s *orderService) List(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return s.find(ctx, id)
}

func (s *orderService) Create(ctx context.Context, in OrderInput) (*model.Order, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}
	o, err := s.order(in)
	if err != nil {
		return nil, err
	}
	pricing.ApplyTotals(&o)

	if err := s.orders.Create(ctx, &o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	if s.exporter != nil {
		s.exporter.ExportOrder(o)
	}
	s.notify.Publish(EventOrderCreated, o)
	return &o, nil
}

func (s *orderService) Update(ctx context.Context, id uuid.UUID, in OrderInput) (*model.Order, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}
	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	o, err := s.order(in)
	if err != nil {
		return nil, err
	}
	o.ID = existing.ID
	o.CreatedAt = existing.CreatedAt
	if strings.TrimSpace(in.OrderDate) == "" {
		o.OrderDate = existing.OrderDate
	}
	return s.save(ctx, &o)
}

// UpdateStatus writes any known stage regardless of the current one.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error) {
	st, err := parseStatus(status)
	if err != nil {
		return nil, err
	}
	o, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Status = st
	return s.save(ctx, o)
}

func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("delete order: %w", err)
	}
	s.notify.Publish(EventOrderDeleted, map[string]string{"id": id.String()})
	return nil
}

// AddItem adds one unit of the referenced product or option to a stored order.
func (s *orderService) AddItem(ctx context.Context, orderID uuid.UUID, ref LineRef) (*model.Order, error) {
	if err := validate(&ref); err != nil {
		return nil, err
	}
	o, err := s.find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	p, err := s.products.FindByID(ctx, ref.ProductID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}

	items, err := s.DraftItem(o.Items, *p, ref.OptionID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return s.save(ctx, o)
}

// DraftItem is AddItem for an order that has not been saved yet.
func (s *orderService) DraftItem(items []model.OrderItem, p model.Product, optionID string) ([]model.OrderItem, error) {
	if optionID == "" {
		return pricing.AddLineItem(items, p, nil), nil
	}
	opt, ok := p.Option(optionID)
	if !ok {
		return nil, ErrOptionNotFound
	}
	return pricing.AddLineItem(items, p, &opt), nil
}

// previewInput is the part of an order the totals depend on. Customer fields
// may still be blank while the form is being filled in.
type previewInput struct {
	Items        []ItemInput  `json:"items" validate:"dive"`
	ShippingCost model.Number `json:"shippingCost" validate:"gte=0"`
	Deposit      model.Number `json:"deposit" validate:"gte=0"`
	Discount     model.Number `json:"discount" validate:"gte=0"`
}

// Preview derives totals for unsaved input. Lines and adjustments are
// validated; nothing is stored.
func (s *orderService) Preview(in OrderInput) (model.Order, error) {
	if err := validate(&previewInput{
		Items:        in.Items,
		ShippingCost: in.ShippingCost,
		Deposit:      in.Deposit,
		Discount:     in.Discount,
	}); err != nil {
		return model.Order{}, err
	}
	o := model.Order{
		Items:        in.items(),
		ShippingCost: in.ShippingCost.Float(),
		Deposit:      in.Deposit.Float(),
		Discount:     in.Discount.Float(),
		Status:       model.NormalizeOrderStatus(in.Status),
	}
	pricing.ApplyTotals(&o)
	return o, nil
}

func (s *orderService) save(ctx context.Context, o *model.Order) (*model.Order, error) {
	pricing.ApplyTotals(o)
	if err := s.orders.Update(ctx, o); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order: %w", err)
	}
	s.notify.Publish(EventOrderUpdated, o)
	return o, nil
}

func (s *orderService) find(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	return o, nil
}

func (s *orderService) order(in OrderInput) (model.Order, error) {
	st, err := parseStatus(in.Status)
	if err != nil {
		return model.Order{}, err
	}
	date := strings.TrimSpace(in.OrderDate)
	if date == "" {
		date = s.now().Format(time.DateOnly)
	}
	return model.Order{
		Items:        in.items(),
		ShippingCost: in.ShippingCost.Float(),
		Deposit:      in.Deposit.Float(),
		Discount:     in.Discount.Float(),
		Status:       st,
		OrderDate:    date,
		PaymentDate:  strings.TrimSpace(in.PaymentDate),
		PaymentSlip:  strings.TrimSpace(in.PaymentSlip),
		Username:     strings.TrimSpace(in.Username),
		Address:      strings.TrimSpace(in.Address),
	}, nil
}

func (in OrderInput) items() []model.OrderItem {
	items := make([]model.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, model.OrderItem{
			ProductID:    it.ProductID,
			OptionID:     it.OptionID,
			SKU:          it.SKU,
			Name:         it.Name,
			Image:        it.Image,
			Quantity:     it.Quantity,
			SellingPrice: it.SellingPrice.Float(),
			CostThb:      it.CostThb.Float(),
		})
	}
	return items
}

// parseStatus accepts an empty value, a stage label or a stage code.
func parseStatus(raw string) (model.OrderStatus, error) {
	st := model.NormalizeOrderStatus(raw)
	r := strings.TrimSpace(raw)
	if r == "" || r == string(st) || strings.EqualFold(r, st.Code()) {
		return st, nil
	}
	return "", invalid("status", "unknown order status")
}
