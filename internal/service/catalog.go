package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/davoodepb/temucore-shop-hub/internal/domain"
	"github.com/davoodepb/temucore-shop-hub/internal/event"
	"github.com/davoodepb/temucore-shop-hub/internal/repository"
	apperrors "github.com/davoodepb/temucore-shop-hub/pkg/errors"
)

// CreateProductInput holds the parameters for creating a catalog product.
type CreateProductInput struct {
	Name          string `json:"name" validate:"required,max=200"`
	Price         int64  `json:"price" validate:"required,gt=0"`
	OriginalPrice *int64 `json:"original_price" validate:"omitempty,gt=0"`
	Image         string `json:"image" validate:"omitempty,url"`
	Category      string `json:"category" validate:"required,max=100"`
	Stock         int    `json:"stock" validate:"gte=0"`
	Description   string `json:"description" validate:"max=2000"`
	IsFeatured    bool   `json:"is_featured"`
	IsFlashDeal   bool   `json:"is_flash_deal"`
}

// UpdateProductInput holds the parameters for updating a catalog product.
// Nil fields are left unchanged.
type UpdateProductInput struct {
	Name          *string `json:"name" validate:"omitempty,max=200"`
	Price         *int64  `json:"price" validate:"omitempty,gt=0"`
	OriginalPrice *int64  `json:"original_price" validate:"omitempty,gt=0"`
	Image         *string `json:"image" validate:"omitempty,url"`
	Category      *string `json:"category" validate:"omitempty,max=100"`
	Stock         *int    `json:"stock" validate:"omitempty,gte=0"`
	Description   *string `json:"description" validate:"omitempty,max=2000"`
	IsFeatured    *bool   `json:"is_featured"`
	IsFlashDeal   *bool   `json:"is_flash_deal"`
}

// CatalogService implements the business logic for catalog operations.
type CatalogService struct {
	productRepo repository.ProductRepository
	producer    *event.Producer
	logger      *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(productRepo repository.ProductRepository, producer *event.Producer, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		producer:    producer,
		logger:      logger,
	}
}

// GetProduct retrieves a single product by ID.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return product, nil
}

// ListProducts returns products matching the filter with the total count.
func (s *CatalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > 100 {
		filter.PerPage = 20
	}

	return s.productRepo.List(ctx, filter)
}

// CreateProduct adds a new product to the catalog.
func (s *CatalogService) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	now := time.Now().UTC()
	product := &domain.Product{
		ID:            uuid.New().String(),
		Name:          input.Name,
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Image:         input.Image,
		Category:      input.Category,
		Stock:         input.Stock,
		Description:   input.Description,
		IsFeatured:    input.IsFeatured,
		IsFlashDeal:   input.IsFlashDeal,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("name", product.Name),
	)

	return product, nil
}

// UpdateProduct applies a partial update to an existing product. A stock
// change is published so downstream consumers see restocks as well as sales.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStock := product.Stock

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.OriginalPrice != nil {
		product.OriginalPrice = input.OriginalPrice
	}
	if input.Image != nil {
		product.Image = *input.Image
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	if input.IsFlashDeal != nil {
		product.IsFlashDeal = *input.IsFlashDeal
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	if product.Stock != oldStock && s.producer != nil {
		if err := s.producer.PublishStockChanged(ctx, product.ID, product.Stock-oldStock, product.Stock); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish product.stock_changed event",
				slog.String("product_id", product.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "product updated", slog.String("product_id", product.ID))

	return product, nil
}

// DeleteProduct removes a product from the catalog.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("product id is required")
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "product deleted", slog.String("product_id", id))

	return nil
}

// SeedFromFile loads a JSON product list into an empty catalog. A non-empty
// catalog is left untouched so restarts never duplicate the seed.
func (s *CatalogService) SeedFromFile(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}

	existing, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("check catalog: %w", err)
	}
	if len(existing) > 0 {
		s.logger.InfoContext(ctx, "catalog already seeded, skipping",
			slog.Int("product_count", len(existing)),
		)
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return fmt.Errorf("decode seed file: %w", err)
	}

	now := time.Now().UTC()
	for i := range products {
		if products[i].ID == "" {
			products[i].ID = uuid.New().String()
		}
		if products[i].CreatedAt.IsZero() {
			products[i].CreatedAt = now
		}
		products[i].UpdatedAt = now

		if err := s.productRepo.Create(ctx, &products[i]); err != nil {
			return fmt.Errorf("seed product %s: %w", products[i].ID, err)
		}
	}

	s.logger.InfoContext(ctx, "catalog seeded",
		slog.String("seed_file", path),
		slog.Int("product_count", len(products)),
	)

	return nil
}
