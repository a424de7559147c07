package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-inventory-orders/internal/model"

	"github.com/redis/go-redis/v9"
)

const (
	keyCategories   = "catalog:categories"
	keyProductTypes = "catalog:product-types"
)

// CatalogCache keeps the category and product-type lists in Redis. A cache
// without a client misses on every read and ignores writes.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache connects to redisURL. An empty or unreachable URL yields a
// disabled cache rather than an error.
func NewCatalogCache(redisURL string, ttl time.Duration) *CatalogCache {
	c := &CatalogCache{ttl: ttl}
	if redisURL == "" {
		return c
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return c
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return c
	}
	c.client = client
	return c
}

func (c *CatalogCache) Categories(ctx context.Context) ([]model.Category, bool, error) {
	var out []model.Category
	ok, err := c.get(ctx, keyCategories, &out)
	return out, ok, err
}

func (c *CatalogCache) SetCategories(ctx context.Context, categories []model.Category) error {
	return c.set(ctx, keyCategories, categories)
}

func (c *CatalogCache) ProductTypes(ctx context.Context) ([]string, bool, error) {
	var out []string
	ok, err := c.get(ctx, keyProductTypes, &out)
	return out, ok, err
}

func (c *CatalogCache) SetProductTypes(ctx context.Context, types []string) error {
	return c.set(ctx, keyProductTypes, types)
}

// InvalidateCategories drops the category list.
func (c *CatalogCache) InvalidateCategories(ctx context.Context) error {
	return c.del(ctx, keyCategories)
}

// InvalidateProductTypes drops the product-type list. Any product write may
// change it.
func (c *CatalogCache) InvalidateProductTypes(ctx context.Context) error {
	return c.del(ctx, keyProductTypes)
}

func (c *CatalogCache) IsAvailable() bool {
	return c.client != nil
}

func (c *CatalogCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *CatalogCache) get(ctx context.Context, key string, dest any) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *CatalogCache) set(ctx context.Context, key string, v any) error {
	if c.client == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func (c *CatalogCache) del(ctx context.Context, key string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, key).Err()
}
