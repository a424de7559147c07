// Package panel owns the admin panel's in-memory product, order and category
// lists. Lists are only ever replaced wholesale after the store confirmed a
// write, so a failed call leaves them untouched.
package panel

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go-inventory-orders/internal/model"
	"go-inventory-orders/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// State is a point-in-time copy of the panel lists.
type State struct {
	Products   []model.Product  `json:"products"`
	Orders     []model.Order    `json:"orders"`
	Categories []model.Category `json:"categories"`
	LoadError  string           `json:"loadError,omitempty"`
	LoadedAt   time.Time        `json:"loadedAt"`
}

type Controller interface {
	Load(ctx context.Context) error
	Snapshot() State
	Product(id uuid.UUID) (model.Product, bool)

	CreateProduct(ctx context.Context, in service.ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, in service.ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	UpdateOption(ctx context.Context, id uuid.UUID, optionID string, patch service.OptionPatch) (*model.Product, error)
	RefreshProduct(ctx context.Context, id uuid.UUID) error

	CreateOrder(ctx context.Context, in service.OrderInput) (*model.Order, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, in service.OrderInput) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	AddOrderItem(ctx context.Context, id uuid.UUID, ref service.LineRef) (*model.Order, error)
	DraftOrderItem(items []model.OrderItem, ref service.LineRef) ([]model.OrderItem, error)

	CreateCategory(ctx context.Context, in service.CategoryInput) (*model.Category, error)
}

type Panel struct {
	products   service.ProductService
	orders     service.OrderService
	categories service.CategoryService
	log        *logrus.Entry

	mu    sync.RWMutex
	state State
}

var _ Controller = (*Panel)(nil)

func New(products service.ProductService, orders service.OrderService, categories service.CategoryService, log *logrus.Entry) *Panel {
	return &Panel{
		products:   products,
		orders:     orders,
		categories: categories,
		log:        log,
		state: State{
			Products:   []model.Product{},
			Orders:     []model.Order{},
			Categories: []model.Category{},
		},
	}
}

// Load fetches the three lists concurrently. If any fetch fails the previous
// lists are kept and the error is recorded in the state.
func (p *Panel) Load(ctx context.Context) error {
	var (
		products   []model.Product
		orders     []model.Order
		categories []model.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = p.products.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		orders, err = p.orders.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		categories, err = p.categories.List(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		p.mu.Lock()
		p.state.LoadError = err.Error()
		p.mu.Unlock()
		p.log.WithError(err).Error("panel load failed")
		return fmt.Errorf("load panel: %w", err)
	}

	p.mu.Lock()
	p.state = State{
		Products:   products,
		Orders:     orders,
		Categories: categories,
		LoadedAt:   time.Now(),
	}
	p.mu.Unlock()
	p.log.WithFields(logrus.Fields{
		"products":   len(products),
		"orders":     len(orders),
		"categories": len(categories),
	}).Info("panel loaded")
	return nil
}

func (p *Panel) Snapshot() State {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s := p.state
	s.Products = make([]model.Product, len(p.state.Products))
	for i, prod := range p.state.Products {
		s.Products[i] = cloneProduct(prod)
	}
	s.Orders = make([]model.Order, len(p.state.Orders))
	for i, o := range p.state.Orders {
		s.Orders[i] = cloneOrder(o)
	}
	s.Categories = slices.Clone(p.state.Categories)
	return s
}

func (p *Panel) Product(id uuid.UUID) (model.Product, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, prod := range p.state.Products {
		if prod.ID == id {
			return cloneProduct(prod), true
		}
	}
	return model.Product{}, false
}

func (p *Panel) CreateProduct(ctx context.Context, in service.ProductInput) (*model.Product, error) {
	prod, err := p.products.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	p.putProduct(*prod)
	p.refreshCategories(ctx)
	return prod, nil
}

func (p *Panel) UpdateProduct(ctx context.Context, id uuid.UUID, in service.ProductInput) (*model.Product, error) {
	prod, err := p.products.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	p.putProduct(*prod)
	p.refreshCategories(ctx)
	return prod, nil
}

func (p *Panel) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := p.products.Delete(ctx, id); err != nil {
		return err
	}
	p.mu.Lock()
	p.state.Products = without(p.state.Products, id, productID)
	p.mu.Unlock()
	return nil
}

func (p *Panel) UpdateOption(ctx context.Context, id uuid.UUID, optionID string, patch service.OptionPatch) (*model.Product, error) {
	prod, err := p.products.UpdateOption(ctx, id, optionID, patch)
	if err != nil {
		return nil, err
	}
	p.putProduct(*prod)
	return prod, nil
}

// RefreshProduct reloads one product after a change made outside the panel,
// such as a new main image.
func (p *Panel) RefreshProduct(ctx context.Context, id uuid.UUID) error {
	prod, err := p.products.Get(ctx, id)
	if err != nil {
		return err
	}
	prod.Images = nil
	p.putProduct(*prod)
	return nil
}

func (p *Panel) CreateOrder(ctx context.Context, in service.OrderInput) (*model.Order, error) {
	o, err := p.orders.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	p.putOrder(*o)
	return o, nil
}

func (p *Panel) UpdateOrder(ctx context.Context, id uuid.UUID, in service.OrderInput) (*model.Order, error) {
	o, err := p.orders.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	p.putOrder(*o)
	return o, nil
}

func (p *Panel) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error) {
	o, err := p.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	p.putOrder(*o)
	return o, nil
}

func (p *Panel) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if err := p.orders.Delete(ctx, id); err != nil {
		return err
	}
	p.mu.Lock()
	p.state.Orders = without(p.state.Orders, id, orderID)
	p.mu.Unlock()
	return nil
}

func (p *Panel) AddOrderItem(ctx context.Context, id uuid.UUID, ref service.LineRef) (*model.Order, error) {
	o, err := p.orders.AddItem(ctx, id, ref)
	if err != nil {
		return nil, err
	}
	p.putOrder(*o)
	return o, nil
}

// DraftOrderItem adds a line to an unsaved order using the in-memory catalog.
func (p *Panel) DraftOrderItem(items []model.OrderItem, ref service.LineRef) ([]model.OrderItem, error) {
	prod, ok := p.Product(ref.ProductID)
	if !ok {
		return nil, service.ErrProductNotFound
	}
	return p.orders.DraftItem(items, prod, ref.OptionID)
}

func (p *Panel) CreateCategory(ctx context.Context, in service.CategoryInput) (*model.Category, error) {
	c, err := p.categories.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	next := make([]model.Category, 0, len(p.state.Categories)+1)
	next = append(next, p.state.Categories...)
	p.state.Categories = append(next, *c)
	p.mu.Unlock()
	return c, nil
}

// refreshCategories picks up labels a product save added. Failure only logs:
// the product write already succeeded.
func (p *Panel) refreshCategories(ctx context.Context) {
	categories, err := p.categories.List(ctx)
	if err != nil {
		p.log.WithError(err).Warn("category refresh failed")
		return
	}
	p.mu.Lock()
	p.state.Categories = categories
	p.mu.Unlock()
}

func (p *Panel) putProduct(prod model.Product) {
	p.mu.Lock()
	p.state.Products = upsert(p.state.Products, prod, productID)
	p.mu.Unlock()
}

func (p *Panel) putOrder(o model.Order) {
	p.mu.Lock()
	p.state.Orders = upsert(p.state.Orders, o, orderID)
	p.mu.Unlock()
}

func productID(p model.Product) uuid.UUID { return p.ID }
func orderID(o model.Order) uuid.UUID     { return o.ID }

// upsert returns a new list with item replacing the entry of the same id, or
// prepended when there is none.
func upsert[T any](list []T, item T, id func(T) uuid.UUID) []T {
	out := make([]T, 0, len(list)+1)
	found := false
	for _, existing := range list {
		if id(existing) == id(item) {
			out = append(out, item)
			found = true
			continue
		}
		out = append(out, existing)
	}
	if !found {
		out = append([]T{item}, out...)
	}
	return out
}

func without[T any](list []T, target uuid.UUID, id func(T) uuid.UUID) []T {
	out := make([]T, 0, len(list))
	for _, existing := range list {
		if id(existing) != target {
			out = append(out, existing)
		}
	}
	return out
}

func cloneProduct(p model.Product) model.Product {
	p.Categories = slices.Clone(p.Categories)
	p.Options = slices.Clone(p.Options)
	p.Images = slices.Clone(p.Images)
	return p
}

func cloneOrder(o model.Order) model.Order {
	o.Items = slices.Clone(o.Items)
	return o
}
