package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go-inventory-orders/internal/model"
	"go-inventory-orders/internal/pricing"
	"go-inventory-orders/internal/repository"
	"go-inventory-orders/internal/sku"
	"go-inventory-orders/internal/storage"
	"go-inventory-orders/internal/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// skuAttempts bounds how many generated codes are tried against the store.
const skuAttempts = 5

// CatalogCache is the read-through cache for catalog lists.
type CatalogCache interface {
	Categories(ctx context.Context) ([]model.Category, bool, error)
	SetCategories(ctx context.Context, categories []model.Category) error
	InvalidateCategories(ctx context.Context) error
	ProductTypes(ctx context.Context) ([]string, bool, error)
	SetProductTypes(ctx context.Context, types []string) error
	InvalidateProductTypes(ctx context.Context) error
}

type ProductInput struct {
	SKU          string        `json:"sku"`
	Name         string        `json:"name"`
	Categories   []string      `json:"categories" validate:"min=1,dive,notblank"`
	ProductType  string        `json:"productType"`
	Image        string        `json:"image"`
	PriceYuan    model.Number  `json:"priceYuan"`
	ExchangeRate model.Number  `json:"exchangeRate"`
	ImportCost   model.Number  `json:"importCost"`
	SellingPrice model.Number  `json:"sellingPrice"`
	Status       string        `json:"status"`
	ShipmentDate string        `json:"shipmentDate" validate:"omitempty,datetime=2006-01-02"`
	Link         string        `json:"link"`
	Description  string        `json:"description"`
	Quantity     int           `json:"quantity" validate:"gte=0"`
	Options      []OptionInput `json:"options" validate:"dive"`
}

// OptionInput carries no profit: it is always recomputed.
type OptionInput struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Image        string       `json:"image"`
	CostThb      model.Number `json:"costThb"`
	SellingPrice model.Number `json:"sellingPrice"`
	Quantity     int          `json:"quantity" validate:"gte=0"`
}

// OptionPatch edits one option in place; nil fields are left alone.
type OptionPatch struct {
	Name         *string       `json:"name"`
	Image        *string       `json:"image"`
	CostThb      *model.Number `json:"costThb"`
	SellingPrice *model.Number `json:"sellingPrice"`
	Quantity     *int          `json:"quantity" validate:"omitempty,gte=0"`
}

type ProductService interface {
	List(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Create(ctx context.Context, in ProductInput) (*model.Product, error)
	Update(ctx context.Context, id uuid.UUID, in ProductInput) (*model.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateOption(ctx context.Context, productID uuid.UUID, optionID string, patch OptionPatch) (*model.Product, error)
	ProductTypes(ctx context.Context) ([]string, error)
}

type productService struct {
	products repository.ProductRepository
	images   repository.ImageRepository
	objects  storage.ObjectStore
	cache    CatalogCache
	skus     *sku.Generator
	notify   Notifier
	log      *logrus.Entry
}

func NewProductService(
	products repository.ProductRepository,
	images repository.ImageRepository,
	objects storage.ObjectStore,
	cache CatalogCache,
	skus *sku.Generator,
	notify Notifier,
	log *logrus.Entry,
) ProductService {
	return &productService{
		products: products,
		images:   images,
		objects:  objects,
		cache:    cache,
		skus:     skus,
		notify:   notifierOrNop(notify),
		log:      log,
	}
}

func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Get returns the product with its images attached.
func (s *productService) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	images, err := s.images.FindByProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load images: %w", err)
	}
	p.Images = images
	return p, nil
}

func (s *productService) Create(ctx context.Context, in ProductInput) (*model.Product, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}
	p := in.product()

	code, err := s.resolveSKU(ctx, p.SKU, "", p.PrimaryCategory())
	if err != nil {
		return nil, err
	}
	p.SKU = code
	p.Options = s.assignOptionIDs(nil, in.Options, p.PrimaryCategory())
	pricing.ApplyProductCosts(&p)

	if err := s.products.Save(ctx, &p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.invalidateCatalog(ctx)
	s.notify.Publish(EventProductCreated, p)
	return &p, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, in ProductInput) (*model.Product, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}
	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	p := in.product()
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	if p.Image == "" {
		p.Image = existing.Image
	}
	code, err := s.resolveSKU(ctx, p.SKU, existing.SKU, p.PrimaryCategory())
	if err != nil {
		return nil, err
	}
	p.SKU = code
	p.Options = s.assignOptionIDs(existing.Options, in.Options, p.PrimaryCategory())
	pricing.ApplyProductCosts(&p)

	if err := s.products.Save(ctx, &p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	s.invalidateCatalog(ctx)
	s.notify.Publish(EventProductUpdated, p)
	return &p, nil
}

// Delete removes the product rows, then best-effort its image objects.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	images, err := s.images.FindByProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("load images: %w", err)
	}
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("delete product: %w", err)
	}
	for _, img := range images {
		removeObject(ctx, s.objects, s.log, img.ImageURL)
	}
	s.invalidateTypes(ctx)
	s.notify.Publish(EventProductDeleted, map[string]string{"id": id.String()})
	return nil
}

func (s *productService) UpdateOption(ctx context.Context, productID uuid.UUID, optionID string, patch OptionPatch) (*model.Product, error) {
	if err := validate(&patch); err != nil {
		return nil, err
	}
	p, err := s.find(ctx, productID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range p.Options {
		if p.Options[i].ID == optionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrOptionNotFound
	}

	opt := &p.Options[idx]
	if patch.Name != nil {
		opt.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Image != nil {
		opt.Image = *patch.Image
	}
	if patch.CostThb != nil {
		opt.CostThb = patch.CostThb.Float()
	}
	if patch.SellingPrice != nil {
		opt.SellingPrice = patch.SellingPrice.Float()
	}
	if patch.Quantity != nil {
		opt.Quantity = *patch.Quantity
	}
	pricing.ApplyProductCosts(p)

	if err := s.products.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("update option: %w", err)
	}
	s.notify.Publish(EventProductUpdated, p)
	return p, nil
}

// ProductTypes lists the distinct non-empty product types, sorted.
func (s *productService) ProductTypes(ctx context.Context) ([]string, error) {
	if types, ok, err := s.cache.ProductTypes(ctx); err != nil {
		s.log.WithError(err).Warn("product type cache read failed")
	} else if ok {
		return types, nil
	}

	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list product types: %w", err)
	}
	seen := map[string]bool{}
	types := []string{}
	for _, p := range products {
		t := strings.TrimSpace(p.ProductType)
		if t != "" && !seen[t] {
			seen[t] = true
			types = append(types, t)
		}
	}
	sort.Strings(types)

	if err := s.cache.SetProductTypes(ctx, types); err != nil {
		s.log.WithError(err).Warn("product type cache write failed")
	}
	return types, nil
}

func (s *productService) find(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	return p, nil
}

// resolveSKU keeps a requested or current code, or draws a fresh one that the
// store does not know yet.
func (s *productService) resolveSKU(ctx context.Context, requested, current, category string) (string, error) {
	if requested == "" && current != "" {
		return current, nil
	}
	if requested != "" {
		if requested == current {
			return requested, nil
		}
		exists, err := s.products.SKUExists(ctx, requested)
		if err != nil {
			return "", fmt.Errorf("check sku: %w", err)
		}
		if exists {
			return "", invalid("sku", "already exists")
		}
		return requested, nil
	}

	for i := 0; i < skuAttempts; i++ {
		code := s.skus.New(category)
		exists, err := s.products.SKUExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check sku: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("no unused sku after %d attempts", skuAttempts)
}

// assignOptionIDs keeps the id of every option that already exists on the
// product and gives new options a fresh variant code. An id is kept for its
// first occurrence only; repeats are treated as new options.
func (s *productService) assignOptionIDs(existing []model.ProductOption, in []OptionInput, category string) []model.ProductOption {
	known := make(map[string]bool, len(existing))
	for _, o := range existing {
		known[o.ID] = true
	}

	used := make(map[string]bool, len(in))
	out := make([]model.ProductOption, 0, len(in))
	for i, o := range in {
		id := strings.TrimSpace(o.ID)
		if !known[id] || used[id] {
			id = sku.Variant(s.skus.New(category), i+1)
			for used[id] || known[id] {
				id = sku.Variant(s.skus.New(category), i+1)
			}
		}
		used[id] = true
		out = append(out, model.ProductOption{
			ID:           id,
			Name:         strings.TrimSpace(o.Name),
			Image:        o.Image,
			CostThb:      o.CostThb.Float(),
			SellingPrice: o.SellingPrice.Float(),
			Quantity:     o.Quantity,
		})
	}
	return out
}

// invalidateCatalog drops both cached lists: a save may add category rows for
// labels the store has not seen before.
func (s *productService) invalidateCatalog(ctx context.Context) {
	s.invalidateTypes(ctx)
	if err := s.cache.InvalidateCategories(ctx); err != nil {
		s.log.WithError(err).Warn("category cache invalidation failed")
	}
}

func (s *productService) invalidateTypes(ctx context.Context) {
	if err := s.cache.InvalidateProductTypes(ctx); err != nil {
		s.log.WithError(err).Warn("product type cache invalidation failed")
	}
}

func (in ProductInput) product() model.Product {
	categories := make([]string, 0, len(in.Categories))
	for _, c := range in.Categories {
		categories = append(categories, strings.TrimSpace(c))
	}
	return model.Product{
		SKU:          strings.ToUpper(strings.TrimSpace(in.SKU)),
		Name:         strings.TrimSpace(in.Name),
		Categories:   categories,
		ProductType:  strings.TrimSpace(in.ProductType),
		Image:        in.Image,
		PriceYuan:    in.PriceYuan.Float(),
		ExchangeRate: in.ExchangeRate.Float(),
		ImportCost:   in.ImportCost.Float(),
		SellingPrice: in.SellingPrice.Float(),
		Status:       model.NormalizeProductStatus(in.Status),
		ShipmentDate: in.ShipmentDate,
		Link:         strings.TrimSpace(in.Link),
		Description:  in.Description,
		Quantity:     in.Quantity,
	}
}

// removeObject deletes the object behind a public URL, logging failures.
func removeObject(ctx context.Context, objects storage.ObjectStore, log *logrus.Entry, url string) {
	if objects == nil || url == "" {
		return
	}
	key, ok := objects.KeyFromURL(url)
	if !ok {
		return
	}
	if err := objects.Remove(ctx, key); err != nil {
		log.WithError(err).WithField("key", key).Warn("image object cleanup failed")
	}
}
