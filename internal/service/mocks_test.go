package service

import (
	"context"
	"io"
	"sync"
	"time"

	"go-inventory-orders/internal/cache"
	"go-inventory-orders/internal/model"
	"go-inventory-orders/internal/repository"
	"go-inventory-orders/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

type MockProductRepository struct {
	mock.Mock
}

var _ repository.ProductRepository = (*MockProductRepository)(nil)

func (m *MockProductRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) SKUExists(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	if args.Error(0) == nil && product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

var _ repository.OrderRepository = (*MockOrderRepository)(nil)

func (m *MockOrderRepository) FindAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	if args.Error(0) == nil {
		order.ID = uuid.New()
		order.CreatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, order *model.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockImageRepository struct {
	mock.Mock
}

var _ repository.ImageRepository = (*MockImageRepository)(nil)

func (m *MockImageRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]model.ProductImage, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]model.ProductImage), args.Error(1)
}

func (m *MockImageRepository) Create(ctx context.Context, img *model.ProductImage) error {
	args := m.Called(ctx, img)
	if args.Error(0) == nil {
		img.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockImageRepository) ReplaceMain(ctx context.Context, previous []uuid.UUID, img *model.ProductImage) error {
	args := m.Called(ctx, previous, img)
	if args.Error(0) == nil {
		img.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockImageRepository) UpdatePositions(ctx context.Context, images []model.ProductImage) error {
	return m.Called(ctx, images).Error(0)
}

func (m *MockImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockCategoryRepository struct {
	mock.Mock
}

var _ repository.CategoryRepository = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, name string) (*model.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, hashedPassword string) error {
	return m.Called(ctx, userID, hashedPassword).Error(0)
}

func (m *MockUserRepository) UpdateTokenVersion(ctx context.Context, userID uuid.UUID, version string) error {
	return m.Called(ctx, userID, version).Error(0)
}

type MockObjectStore struct {
	mock.Mock
}

var _ storage.ObjectStore = (*MockObjectStore)(nil)

func (m *MockObjectStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, key, r, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) Remove(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockObjectStore) KeyFromURL(url string) (string, bool) {
	args := m.Called(url)
	return args.String(0), args.Bool(1)
}

type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) ExportOrder(o model.Order) <-chan struct{} {
	m.Called(o)
	done := make(chan struct{})
	close(done)
	return done
}

// recordingNotifier keeps published event types in order.
type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Publish(eventType string, _ any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, eventType)
}

func (n *recordingNotifier) Events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

func quietLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func noCache() *cache.CatalogCache {
	return cache.NewCatalogCache("", time.Minute)
}

// recordingCache never hits and counts invalidations.
type recordingCache struct {
	mu                    sync.Mutex
	categoryInvalidations int
	typeInvalidations     int
}

var _ CatalogCache = (*recordingCache)(nil)

func (c *recordingCache) Categories(context.Context) ([]model.Category, bool, error) {
	return nil, false, nil
}

func (c *recordingCache) SetCategories(context.Context, []model.Category) error { return nil }

func (c *recordingCache) InvalidateCategories(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.categoryInvalidations++
	return nil
}

func (c *recordingCache) ProductTypes(context.Context) ([]string, bool, error) {
	return nil, false, nil
}

func (c *recordingCache) SetProductTypes(context.Context, []string) error { return nil }

func (c *recordingCache) InvalidateProductTypes(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.typeInvalidations++
	return nil
}
