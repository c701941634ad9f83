// Package redis provides Redis-backed implementations of session-scoped
// repositories: shopping carts and admin session tokens. Both are throwaway
// state with natural TTLs, which is why they live here rather than in
// PostgreSQL.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/davoodepb/temucore-shop-hub/internal/domain"
	apperrors "github.com/davoodepb/temucore-shop-hub/pkg/errors"
)

const cartKeyPrefix = "cart:"

// CartRepository implements repository.CartRepository using Redis. Each cart
// is stored as a JSON blob keyed by session ID with a sliding TTL.
type CartRepository struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewCartRepository creates a new Redis-backed cart repository.
func NewCartRepository(client *goredis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{client: client, ttl: ttl}
}

// Get retrieves a cart by its session ID.
func (r *CartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, cartKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, apperrors.NotFound("cart", sessionID)
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}

	return &cart, nil
}

// Save persists a cart, overwriting any existing cart for the session and
// resetting its TTL.
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	if err := r.client.Set(ctx, cartKeyPrefix+cart.SessionID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}

	return nil
}

// Delete removes a cart by session ID. Deleting an absent cart is a no-op.
func (r *CartRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}

	return nil
}
