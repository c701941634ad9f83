package localstore

import (
	"context"

	"github.com/davoodepb/temucore-shop-hub/internal/domain"
	apperrors "github.com/davoodepb/temucore-shop-hub/pkg/errors"
)

// CartRepository implements repository.CartRepository over the local snapshot
// store. All session carts live in one map collection.
type CartRepository struct {
	store *Store
}

// NewCartRepository creates a new localstore cart repository.
func NewCartRepository(store *Store) *CartRepository {
	return &CartRepository{store: store}
}

// Get retrieves a cart by its session ID.
func (r *CartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	carts, err := loadMap[domain.Cart](r.store.backend, keyCarts)
	if err != nil {
		return nil, err
	}
	cart, ok := carts[sessionID]
	if !ok {
		return nil, apperrors.NotFound("cart", sessionID)
	}
	return &cart, nil
}

// Save persists a cart, overwriting any existing cart for the session.
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	carts, err := loadMap[domain.Cart](r.store.backend, keyCarts)
	if err != nil {
		return err
	}
	carts[cart.SessionID] = *cart
	return saveMap(r.store.backend, keyCarts, carts)
}

// Delete removes a cart by session ID. Deleting an absent cart is a no-op.
func (r *CartRepository) Delete(ctx context.Context, sessionID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	carts, err := loadMap[domain.Cart](r.store.backend, keyCarts)
	if err != nil {
		return err
	}
	if _, ok := carts[sessionID]; !ok {
		return nil
	}
	delete(carts, sessionID)
	return saveMap(r.store.backend, keyCarts, carts)
}
