package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-inventory-orders/internal/model"
	"go-inventory-orders/internal/repository"
	"go-inventory-orders/internal/store"

	"github.com/sirupsen/logrus"
)

type CategoryInput struct {
	Name string `json:"name" validate:"notblank"`
}

type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, in CategoryInput) (*model.Category, error)
}

type categoryService struct {
	categories repository.CategoryRepository
	cache      CatalogCache
	notify     Notifier
	log        *logrus.Entry
}

func NewCategoryService(categories repository.CategoryRepository, cache CatalogCache, notify Notifier, log *logrus.Entry) CategoryService {
	return &categoryService{categories: categories, cache: cache, notify: notifierOrNop(notify), log: log}
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	if cached, ok, err := s.cache.Categories(ctx); err != nil {
		s.log.WithError(err).Warn("category cache read failed")
	} else if ok {
		return cached, nil
	}

	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if err := s.cache.SetCategories(ctx, categories); err != nil {
		s.log.WithError(err).Warn("category cache write failed")
	}
	return categories, nil
}

func (s *categoryService) Create(ctx context.Context, in CategoryInput) (*model.Category, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)

	_, err := s.categories.FindByName(ctx, name)
	if err == nil {
		return nil, invalid("name", "already exists")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check category: %w", err)
	}

	c, err := s.categories.Create(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	if err := s.cache.InvalidateCategories(ctx); err != nil {
		s.log.WithError(err).Warn("category cache invalidation failed")
	}
	s.notify.Publish(EventCategoryCreated, c)
	return c, nil
}
