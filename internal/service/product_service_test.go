package service

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"go-inventory-orders/internal/model"
	"go-inventory-orders/internal/sku"
	"go-inventory-orders/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var variantPattern = regexp.MustCompile(`^[A-Z]{3}-\d{4}[A-Z]{3}-\d{2}$`)

type productFixture struct {
	products *MockProductRepository
	images   *MockImageRepository
	objects  *MockObjectStore
	notify   *recordingNotifier
	svc      ProductService
}

func newProductFixture() *productFixture {
	f := &productFixture{
		products: new(MockProductRepository),
		images:   new(MockImageRepository),
		objects:  new(MockObjectStore),
		notify:   &recordingNotifier{},
	}
	f.svc = NewProductService(f.products, f.images, f.objects, noCache(), sku.NewGenerator("PRD"), f.notify, quietLog())
	return f
}

func TestProductCreate_RequiresCategory(t *testing.T) {
	f := newProductFixture()

	_, err := f.svc.Create(context.Background(), ProductInput{Name: "Robot"})

	require.Error(t, err)
	assert.True(t, IsValidation(err))
	f.products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	assert.Empty(t, f.notify.Events())
}

func TestProductCreate_DerivesCostsAndIDs(t *testing.T) {
	f := newProductFixture()
	f.products.On("SKUExists", mock.Anything, mock.Anything).Return(true, nil).Once()
	f.products.On("SKUExists", mock.Anything, mock.Anything).Return(false, nil)
	f.products.On("Save", mock.Anything, mock.Anything).Return(nil)

	p, err := f.svc.Create(context.Background(), ProductInput{
		Name:         "Robot",
		Categories:   []string{"Toys"},
		PriceYuan:    100,
		ExchangeRate: 5,
		ImportCost:   20,
		SellingPrice: 700,
		Options: []OptionInput{
			{ID: "client-made-up", Name: "Red", CostThb: 90, SellingPrice: 150, Quantity: 2},
			{Name: "Blue", CostThb: 90, SellingPrice: 140, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Regexp(t, `^TOY-\d{4}[A-Z]{3}$`, p.SKU)
	assert.Equal(t, 500.0, p.PriceThb)
	assert.Equal(t, 520.0, p.CostThb)
	require.Len(t, p.Options, 2)
	assert.Regexp(t, variantPattern, p.Options[0].ID)
	assert.Equal(t, "-01", p.Options[0].ID[len(p.Options[0].ID)-3:])
	assert.Equal(t, "-02", p.Options[1].ID[len(p.Options[1].ID)-3:])
	assert.Equal(t, 60.0, p.Options[0].Profit)
	assert.Equal(t, 50.0, p.Options[1].Profit)
	assert.Equal(t, 3, p.StockQuantity())
	assert.Equal(t, model.ProductPreOrder, p.Status)

	f.products.AssertNumberOfCalls(t, "SKUExists", 2)
	assert.Equal(t, []string{EventProductCreated}, f.notify.Events())
}

func TestProductCreate_DuplicateSKU(t *testing.T) {
	f := newProductFixture()
	f.products.On("SKUExists", mock.Anything, "TOY-0001AAA").Return(true, nil)

	_, err := f.svc.Create(context.Background(), ProductInput{SKU: "toy-0001aaa", Categories: []string{"Toys"}})

	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestProductCreate_StoreFailure(t *testing.T) {
	f := newProductFixture()
	f.products.On("SKUExists", mock.Anything, mock.Anything).Return(false, nil)
	f.products.On("Save", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	_, err := f.svc.Create(context.Background(), ProductInput{Categories: []string{"Toys"}})

	require.Error(t, err)
	assert.False(t, IsValidation(err))
	assert.Empty(t, f.notify.Events())
}

func TestProductUpdate_KeepsOptionIDs(t *testing.T) {
	f := newProductFixture()
	id := uuid.New()
	existing := &model.Product{
		ID:         id,
		SKU:        "TOY-1234ABC",
		Image:      "https://cdn/main.jpg",
		Categories: []string{"Toys"},
		Options:    []model.ProductOption{{ID: "TOY-1234ABC-01", Name: "Red"}},
	}
	f.products.On("FindByID", mock.Anything, id).Return(existing, nil)
	f.products.On("SKUExists", mock.Anything, mock.Anything).Return(false, nil)
	f.products.On("Save", mock.Anything, mock.Anything).Return(nil)

	p, err := f.svc.Update(context.Background(), id, ProductInput{
		Categories: []string{"Toys"},
		Options: []OptionInput{
			{ID: "TOY-1234ABC-01", Name: "Red", SellingPrice: 10},
			{Name: "Green", SellingPrice: 10},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "TOY-1234ABC", p.SKU)
	assert.Equal(t, "https://cdn/main.jpg", p.Image)
	assert.Equal(t, "TOY-1234ABC-01", p.Options[0].ID)
	assert.NotEqual(t, "TOY-1234ABC-01", p.Options[1].ID)
	assert.Regexp(t, variantPattern, p.Options[1].ID)
	f.products.AssertNotCalled(t, "SKUExists", mock.Anything, mock.Anything)
}

func TestProductUpdate_NotFound(t *testing.T) {
	f := newProductFixture()
	id := uuid.New()
	f.products.On("FindByID", mock.Anything, id).Return(nil, store.ErrNotFound)

	_, err := f.svc.Update(context.Background(), id, ProductInput{Categories: []string{"Toys"}})

	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateOption_RecomputesProfit(t *testing.T) {
	f := newProductFixture()
	id := uuid.New()
	f.products.On("FindByID", mock.Anything, id).Return(&model.Product{
		ID:      id,
		Options: []model.ProductOption{{ID: "BAG-0001AAA-01", CostThb: 90, SellingPrice: 100, Profit: 999}},
	}, nil)
	f.products.On("Save", mock.Anything, mock.Anything).Return(nil)

	price := model.Number(150)
	p, err := f.svc.UpdateOption(context.Background(), id, "BAG-0001AAA-01", OptionPatch{SellingPrice: &price})
	require.NoError(t, err)

	assert.Equal(t, 150.0, p.Options[0].SellingPrice)
	assert.Equal(t, 60.0, p.Options[0].Profit)
	assert.Equal(t, "BAG-0001AAA-01", p.Options[0].ID)
}

func TestUpdateOption_Unknown(t *testing.T) {
	f := newProductFixture()
	id := uuid.New()
	f.products.On("FindByID", mock.Anything, id).Return(&model.Product{ID: id}, nil)

	_, err := f.svc.UpdateOption(context.Background(), id, "nope", OptionPatch{})

	assert.ErrorIs(t, err, ErrOptionNotFound)
}

func TestProductDelete_RemovesObjects(t *testing.T) {
	f := newProductFixture()
	id := uuid.New()
	f.images.On("FindByProduct", mock.Anything, id).Return([]model.ProductImage{
		{ID: uuid.New(), ImageURL: "https://cdn/p/1_a.jpg"},
	}, nil)
	f.products.On("Delete", mock.Anything, id).Return(nil)
	f.objects.On("KeyFromURL", "https://cdn/p/1_a.jpg").Return("p/1_a.jpg", true)
	f.objects.On("Remove", mock.Anything, "p/1_a.jpg").Return(errors.New("gone"))

	require.NoError(t, f.svc.Delete(context.Background(), id))
	f.objects.AssertExpectations(t)
	assert.Equal(t, []string{EventProductDeleted}, f.notify.Events())
}

func TestProductDelete_NotFound(t *testing.T) {
	f := newProductFixture()
	id := uuid.New()
	f.images.On("FindByProduct", mock.Anything, id).Return([]model.ProductImage{}, nil)
	f.products.On("Delete", mock.Anything, id).Return(store.ErrNotFound)

	assert.ErrorIs(t, f.svc.Delete(context.Background(), id), ErrProductNotFound)
}

func TestProductTypes(t *testing.T) {
	f := newProductFixture()
	f.products.On("FindAll", mock.Anything).Return([]model.Product{
		{ProductType: "Figure"}, {ProductType: " Bag "}, {ProductType: ""}, {ProductType: "Figure"},
	}, nil)

	types, err := f.svc.ProductTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Bag", "Figure"}, types)
}

func TestProductSave_InvalidatesCategoryAndTypeCaches(t *testing.T) {
	products := new(MockProductRepository)
	cache := &recordingCache{}
	svc := NewProductService(products, new(MockImageRepository), new(MockObjectStore), cache,
		sku.NewGenerator("PRD"), &recordingNotifier{}, quietLog())

	id := uuid.New()
	products.On("SKUExists", mock.Anything, mock.Anything).Return(false, nil)
	products.On("Save", mock.Anything, mock.Anything).Return(nil)
	products.On("FindByID", mock.Anything, id).Return(&model.Product{ID: id, SKU: "TOY-1234ABC", Categories: []string{"Toys"}}, nil)

	_, err := svc.Create(context.Background(), ProductInput{Categories: []string{"BrandNewCategory"}})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.categoryInvalidations)
	assert.Equal(t, 1, cache.typeInvalidations)

	_, err = svc.Update(context.Background(), id, ProductInput{Categories: []string{"AnotherNewOne"}})
	require.NoError(t, err)
	assert.Equal(t, 2, cache.categoryInvalidations)
	assert.Equal(t, 2, cache.typeInvalidations)
}

func TestProductUpdate_RepeatedOptionIDGetsFreshID(t *testing.T) {
	f := newProductFixture()
	id := uuid.New()
	existing := &model.Product{
		ID:         id,
		SKU:        "TOY-1234ABC",
		Categories: []string{"Toys"},
		Options:    []model.ProductOption{{ID: "TOY-1234ABC-01", Name: "Red"}},
	}
	f.products.On("FindByID", mock.Anything, id).Return(existing, nil)
	f.products.On("Save", mock.Anything, mock.Anything).Return(nil)

	p, err := f.svc.Update(context.Background(), id, ProductInput{
		Categories: []string{"Toys"},
		Options: []OptionInput{
			{ID: "TOY-1234ABC-01", Name: "Red"},
			{ID: "TOY-1234ABC-01", Name: "Blue"},
		},
	})
	require.NoError(t, err)

	require.Len(t, p.Options, 2)
	assert.Equal(t, "TOY-1234ABC-01", p.Options[0].ID)
	assert.NotEqual(t, p.Options[0].ID, p.Options[1].ID)
	assert.Regexp(t, variantPattern, p.Options[1].ID)

	blue, ok := p.Option(p.Options[1].ID)
	require.True(t, ok)
	assert.Equal(t, "Blue", blue.Name)
}

func TestProductCreate_QuantityIsOptionSum(t *testing.T) {
	f := newProductFixture()
	f.products.On("SKUExists", mock.Anything, mock.Anything).Return(false, nil)
	f.products.On("Save", mock.Anything, mock.Anything).Return(nil)

	p, err := f.svc.Create(context.Background(), ProductInput{
		Categories: []string{"Toys"},
		Quantity:   100,
		Options: []OptionInput{
			{Name: "Red", Quantity: 2},
			{Name: "Blue", Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, p.Quantity)

	saved := f.products.Calls[len(f.products.Calls)-1].Arguments.Get(1).(*model.Product)
	assert.Equal(t, 3, saved.Quantity)

	plain, err := f.svc.Create(context.Background(), ProductInput{Categories: []string{"Toys"}, Quantity: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, plain.Quantity)
}
