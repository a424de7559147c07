package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go-inventory-orders/internal/gallery"
	"go-inventory-orders/internal/model"
	"go-inventory-orders/internal/repository"
	"go-inventory-orders/internal/storage"
	"go-inventory-orders/internal/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type UploadInput struct {
	ProductID   uuid.UUID
	Role        model.ImageRole
	VariantID   string
	VariantName string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type ImageService interface {
	List(ctx context.Context, productID uuid.UUID) (gallery.Gallery, error)
	Upload(ctx context.Context, in UploadInput) (*model.ProductImage, error)
	Move(ctx context.Context, productID, imageID uuid.UUID, dir gallery.Direction) ([]model.ProductImage, error)
	Delete(ctx context.Context, productID, imageID uuid.UUID) (gallery.Gallery, error)
}

type imageService struct {
	images   repository.ImageRepository
	products repository.ProductRepository
	objects  storage.ObjectStore
	notify   Notifier
	log      *logrus.Entry
	now      func() time.Time
}

func NewImageService(
	images repository.ImageRepository,
	products repository.ProductRepository,
	objects storage.ObjectStore,
	notify Notifier,
	log *logrus.Entry,
) ImageService {
	return &imageService{
		images:   images,
		products: products,
		objects:  objects,
		notify:   notifierOrNop(notify),
		log:      log,
		now:      time.Now,
	}
}

func (s *imageService) List(ctx context.Context, productID uuid.UUID) (gallery.Gallery, error) {
	images, err := s.images.FindByProduct(ctx, productID)
	if err != nil {
		return gallery.Gallery{}, fmt.Errorf("list images: %w", err)
	}
	return gallery.Partition(images), nil
}

// Upload stores the binary, then records it in the group named by in.Role. A
// new main image replaces the previous one and becomes the product image.
func (s *imageService) Upload(ctx context.Context, in UploadInput) (*model.ProductImage, error) {
	if in.Body == nil || in.Size <= 0 {
		return nil, invalid("file", "is required")
	}
	role := in.Role
	if role == "" {
		role = model.ImageAdditional
	}
	if role == model.ImageVariant && strings.TrimSpace(in.VariantID) == "" {
		return nil, invalid("variantId", "is required for variant images")
	}
	if role != model.ImageMain && role != model.ImageAdditional && role != model.ImageVariant {
		return nil, invalid("role", "must be main, additional or variant")
	}
	if s.objects == nil {
		return nil, errors.New("image storage is not configured")
	}

	product, err := s.products.FindByID(ctx, in.ProductID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	current, err := s.images.FindByProduct(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	key := storage.ObjectKey(in.ProductID, in.Filename, s.now())
	url, err := s.objects.Put(ctx, key, in.Body, in.Size, in.ContentType)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	img := model.ProductImage{ProductID: in.ProductID, ImageURL: url}
	var replaced []model.ProductImage
	switch role {
	case model.ImageMain:
		img.Order = model.MainImagePosition
		var ids []uuid.UUID
		for _, old := range current {
			if old.Role() == model.ImageMain {
				ids = append(ids, old.ID)
				replaced = append(replaced, old)
			}
		}
		err = s.images.ReplaceMain(ctx, ids, &img)
	case model.ImageVariant:
		img.VariantID = strings.TrimSpace(in.VariantID)
		img.VariantName = strings.TrimSpace(in.VariantName)
		if img.VariantName == "" {
			if opt, ok := product.Option(img.VariantID); ok {
				img.VariantName = opt.Name
			}
		}
		err = s.images.Create(ctx, &img)
	default:
		img.Order = gallery.NextPosition(gallery.Partition(current).Additional)
		err = s.images.Create(ctx, &img)
	}
	if err != nil {
		removeObject(ctx, s.objects, s.log, url)
		return nil, fmt.Errorf("record image: %w", err)
	}

	if role == model.ImageMain {
		product.Image = url
		if err := s.products.Save(ctx, product); err != nil {
			return nil, fmt.Errorf("set product image: %w", err)
		}
		for _, old := range replaced {
			removeObject(ctx, s.objects, s.log, old.ImageURL)
		}
	}
	s.notify.Publish(EventImagesChanged, map[string]string{"productId": in.ProductID.String()})
	return &img, nil
}

// Move swaps an additional image with its neighbour and persists the group.
func (s *imageService) Move(ctx context.Context, productID, imageID uuid.UUID, dir gallery.Direction) ([]model.ProductImage, error) {
	if dir != gallery.Up && dir != gallery.Down {
		return nil, invalid("direction", "must be up or down")
	}
	current, err := s.images.FindByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	img, ok := findImage(current, imageID)
	if !ok {
		return nil, ErrImageNotFound
	}
	if img.Role() != model.ImageAdditional {
		return nil, invalid("imageId", "only additional images can be reordered")
	}

	group, err := gallery.Move(gallery.Partition(current).Additional, imageID, dir)
	if errors.Is(err, gallery.ErrImageNotFound) {
		return nil, ErrImageNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.images.UpdatePositions(ctx, group); err != nil {
		return nil, fmt.Errorf("reorder images: %w", err)
	}
	s.notify.Publish(EventImagesChanged, map[string]string{"productId": productID.String()})
	return group, nil
}

// Delete removes one image and returns what is left of the gallery. Remaining
// positions are not renumbered.
func (s *imageService) Delete(ctx context.Context, productID, imageID uuid.UUID) (gallery.Gallery, error) {
	current, err := s.images.FindByProduct(ctx, productID)
	if err != nil {
		return gallery.Gallery{}, fmt.Errorf("list images: %w", err)
	}
	img, ok := findImage(current, imageID)
	if !ok {
		return gallery.Gallery{}, ErrImageNotFound
	}
	if err := s.images.Delete(ctx, imageID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return gallery.Gallery{}, ErrImageNotFound
		}
		return gallery.Gallery{}, fmt.Errorf("delete image: %w", err)
	}

	if img.Role() == model.ImageMain {
		product, err := s.products.FindByID(ctx, productID)
		if err == nil && product.Image == img.ImageURL {
			product.Image = ""
			if err := s.products.Save(ctx, product); err != nil {
				s.log.WithError(err).WithField("product_id", productID).Warn("clearing product image failed")
			}
		}
	}
	removeObject(ctx, s.objects, s.log, img.ImageURL)
	s.notify.Publish(EventImagesChanged, map[string]string{"productId": productID.String()})
	return gallery.Partition(gallery.Remove(current, imageID)), nil
}

func findImage(images []model.ProductImage, id uuid.UUID) (model.ProductImage, bool) {
	for _, img := range images {
		if img.ID == id {
			return img, true
		}
	}
	return model.ProductImage{}, false
}
