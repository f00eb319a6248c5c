// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/juggernaut03/kalakritBackend/internal/apperrors"
	"github.com/juggernaut03/kalakritBackend/internal/i18n"
	"github.com/juggernaut03/kalakritBackend/internal/metrics"
	"github.com/juggernaut03/kalakritBackend/internal/models"
	"github.com/juggernaut03/kalakritBackend/internal/storage"
)

type ProductService struct {
	products ProductRepository
	images   ImageStore
	now      Clock
}

type CreateProductRequest struct {
	Name        string         `json:"name" validate:"notblank"`
	Description string         `json:"description" validate:"notblank"`
	Price       *models.Number `json:"price" validate:"required,finite,min=0"`
	Category    string         `json:"category" validate:"notblank"`
	Stock       *models.Number `json:"stock" validate:"omitempty,whole,min=0,max=2147483647"`
	Images      []string       `json:"images"`
}

func NewProductService(products ProductRepository, images ImageStore, now Clock) *ProductService {
	return &ProductService{
		products: products,
		images:   images,
		now:      now,
	}
}

// CreateProduct uploads the images one by one, skipping any the store
// rejects, then saves the product. If the save fails the uploaded images
// are deleted again.
func (s *ProductService) CreateProduct(ctx context.Context, artisanID, role string, req *CreateProductRequest) (*models.Product, error) {
	if models.Role(role) != models.RoleArtisan {
		return nil, apperrors.New(apperrors.ErrForbidden, i18n.KeyAuthArtisanOnly)
	}

	artisan, err := parseID(artisanID, "user")
	if err != nil {
		return nil, err
	}

	if err := validate(req); err != nil {
		return nil, err
	}

	uploaded := s.uploadImages(ctx, req.Images)

	product := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price.Float(),
		Category:    strings.TrimSpace(req.Category),
		Stock:       int(req.Stock.Float()),
		Images:      make([]string, 0, len(uploaded)),
		Artisan:     artisan,
	}
	for _, obj := range uploaded {
		product.Images = append(product.Images, obj.URL)
	}
	product.BeforeInsert(s.now())

	if err := s.products.Create(ctx, product); err != nil {
		s.discardImages(ctx, uploaded)
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"product_id":  product.ID.Hex(),
		"artisan_id":  artisanID,
		"image_count": len(product.Images),
	}).Info("Product created")

	return product, nil
}

func (s *ProductService) uploadImages(ctx context.Context, images []string) []*storage.Object {
	uploaded := make([]*storage.Object, 0, len(images))
	for i, image := range images {
		obj, err := s.images.Store(ctx, image)
		if err != nil {
			logrus.WithError(err).WithField("index", i).Warn("Skipping image that failed to upload")
			continue
		}
		uploaded = append(uploaded, obj)
	}
	return uploaded
}

// discardImages is best effort. Failures are logged and counted.
func (s *ProductService) discardImages(ctx context.Context, uploaded []*storage.Object) {
	for _, obj := range uploaded {
		if err := s.images.Delete(ctx, obj.Key); err != nil {
			metrics.ImageCleanups.WithLabelValues("failed").Inc()
			logrus.WithError(err).WithField("key", obj.Key).Error("Failed to delete orphaned image")
			continue
		}
		metrics.ImageCleanups.WithLabelValues("ok").Inc()
	}
}

// GetProducts lists products, optionally narrowed to one category and to
// one artisan. An empty value leaves that filter unset.
func (s *ProductService) GetProducts(ctx context.Context, category, artisan string) ([]models.Product, error) {
	filter := models.ProductFilter{Category: strings.TrimSpace(category)}
	if artisan = strings.TrimSpace(artisan); artisan != "" {
		id, err := parseID(artisan, "artisan")
		if err != nil {
			return nil, err
		}
		filter.Artisan = id
	}
	return s.products.List(ctx, filter)
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	oid, err := parseID(id, "product")
	if err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound(i18n.KeyProductNotFound)
		}
		return nil, err
	}
	return product, nil
}

// GetCategories groups all products by category. Each group takes the
// description and first image of the first product the store returns.
func (s *ProductService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.products.Categories(ctx)
}
