package localstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/davoodepb/temucore-shop-hub/internal/domain"
	"github.com/davoodepb/temucore-shop-hub/internal/repository"
	apperrors "github.com/davoodepb/temucore-shop-hub/pkg/errors"
)

// ProductRepository implements repository.ProductRepository over the local
// snapshot store.
type ProductRepository struct {
	store *Store
}

// NewProductRepository creates a new localstore product repository.
func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

// Create inserts a new product into the catalog.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	products, err := load[domain.Product](r.store.backend, keyProducts)
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == p.ID {
			return apperrors.AlreadyExists("product", "id", p.ID)
		}
	}
	products = append(products, *p)
	return save(r.store.backend, keyProducts, products)
}

// GetByID retrieves a product by its unique identifier.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	products, err := load[domain.Product](r.store.backend, keyProducts)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			p := products[i]
			return &p, nil
		}
	}
	return nil, apperrors.NotFound("product", id)
}

// List returns products matching the given filter with the total count.
func (r *ProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	products, err := load[domain.Product](r.store.backend, keyProducts)
	if err != nil {
		return nil, 0, err
	}

	matched := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if filter.Category != nil && p.Category != *filter.Category {
			continue
		}
		if filter.Featured != nil && p.IsFeatured != *filter.Featured {
			continue
		}
		if filter.FlashDeal != nil && p.IsFlashDeal != *filter.FlashDeal {
			continue
		}
		if filter.Search != nil {
			q := strings.ToLower(*filter.Search)
			if !strings.Contains(strings.ToLower(p.Name), q) &&
				!strings.Contains(strings.ToLower(p.Description), q) {
				continue
			}
		}
		matched = append(matched, p)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := (filter.Page - 1) * filter.PerPage
	if start >= total {
		return []domain.Product{}, total, nil
	}
	end := start + filter.PerPage
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

// ListAll returns the full catalog, newest first.
func (r *ProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	products, err := load[domain.Product](r.store.backend, keyProducts)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products, nil
}

// Update overwrites an existing product.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	products, err := load[domain.Product](r.store.backend, keyProducts)
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == p.ID {
			products[i] = *p
			return save(r.store.backend, keyProducts, products)
		}
	}
	return apperrors.NotFound("product", p.ID)
}

// Delete removes a product from the catalog.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	products, err := load[domain.Product](r.store.backend, keyProducts)
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == id {
			products = append(products[:i], products[i+1:]...)
			return save(r.store.backend, keyProducts, products)
		}
	}
	return apperrors.NotFound("product", id)
}

// DecrementStock applies all decrements or none of them. Every requested
// quantity is checked against current stock before anything is written, so a
// failure leaves the catalog untouched.
func (r *ProductRepository) DecrementStock(ctx context.Context, items []repository.StockDecrement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	products, err := load[domain.Product](r.store.backend, keyProducts)
	if err != nil {
		return err
	}

	index := make(map[string]int, len(products))
	for i := range products {
		index[products[i].ID] = i
	}

	for _, item := range items {
		i, ok := index[item.ProductID]
		if !ok {
			return apperrors.NotFound("product", item.ProductID)
		}
		if products[i].Stock < item.Quantity {
			return apperrors.InsufficientStock(products[i].Stock)
		}
	}

	now := time.Now().UTC()
	for _, item := range items {
		i := index[item.ProductID]
		products[i].Stock -= item.Quantity
		products[i].UpdatedAt = now
	}
	return save(r.store.backend, keyProducts, products)
}

// UpdateRating overwrites the denormalized rating aggregate on a product.
func (r *ProductRepository) UpdateRating(ctx context.Context, productID string, rating float64, reviewCount int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	products, err := load[domain.Product](r.store.backend, keyProducts)
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == productID {
			products[i].Rating = rating
			products[i].ReviewCount = reviewCount
			products[i].UpdatedAt = time.Now().UTC()
			return save(r.store.backend, keyProducts, products)
		}
	}
	return apperrors.NotFound("product", productID)
}
