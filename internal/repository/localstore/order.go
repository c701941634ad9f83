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

// OrderRepository implements repository.OrderRepository over the local
// snapshot store.
type OrderRepository struct {
	store *Store
}

// NewOrderRepository creates a new localstore order repository.
func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

// Create appends a new order.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	orders, err := load[domain.Order](r.store.backend, keyOrders)
	if err != nil {
		return err
	}
	orders = append(orders, *o)
	return save(r.store.backend, keyOrders, orders)
}

// GetByID retrieves an order by its unique identifier.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	orders, err := load[domain.Order](r.store.backend, keyOrders)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			o := orders[i]
			return &o, nil
		}
	}
	return nil, apperrors.NotFound("order", id)
}

// List returns orders matching the given filter with the total count, newest
// first.
func (r *OrderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	orders, err := load[domain.Order](r.store.backend, keyOrders)
	if err != nil {
		return nil, 0, err
	}

	matched := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		matched = append(matched, o)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := (filter.Page - 1) * filter.PerPage
	if start >= total {
		return []domain.Order{}, total, nil
	}
	end := start + filter.PerPage
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

// ListByEmail returns all orders placed with the given customer email, newest
// first. Email matching is case-insensitive.
func (r *OrderRepository) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	orders, err := load[domain.Order](r.store.backend, keyOrders)
	if err != nil {
		return nil, err
	}
	matched := make([]domain.Order, 0)
	for _, o := range orders {
		if strings.EqualFold(o.CustomerEmail, email) {
			matched = append(matched, o)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

// ListAll returns every order.
func (r *OrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return load[domain.Order](r.store.backend, keyOrders)
}

// UpdateStatus overwrites the status of an order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	orders, err := load[domain.Order](r.store.backend, keyOrders)
	if err != nil {
		return err
	}
	for i := range orders {
		if orders[i].ID == id {
			orders[i].Status = status
			orders[i].UpdatedAt = time.Now().UTC()
			return save(r.store.backend, keyOrders, orders)
		}
	}
	return apperrors.NotFound("order", id)
}
