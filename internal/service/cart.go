package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/davoodepb/temucore-shop-hub/internal/domain"
	"github.com/davoodepb/temucore-shop-hub/internal/repository"
	apperrors "github.com/davoodepb/temucore-shop-hub/pkg/errors"
)

// MaxItemsPerCart is the maximum number of distinct items allowed in a cart.
const MaxItemsPerCart = 50

// CartService implements the business logic for cart operations. Every
// mutation checks the requested quantity against available stock before
// touching the cart, so a rejection leaves the cart exactly as it was.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, logger *slog.Logger) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// GetCart retrieves the cart for a session. If no cart exists, returns an
// empty cart.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.cartRepo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.newEmptyCart(sessionID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return cart, nil
}

// AddItem adds the requested quantity of a product to the session's cart,
// merging with an existing entry for the same product. A quantity below one
// defaults to a single unit. The product is looked up live: a product with
// zero stock is rejected outright, and an add that would push the combined
// cart quantity past the available stock is rejected with the amount still
// available. On success the cart entry carries a snapshot of the product as
// it was at add time.
func (s *CartService) AddItem(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if quantity < 1 {
		quantity = 1
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFoundMsg("Item not found")
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	if product.Stock == 0 {
		return nil, apperrors.OutOfStock()
	}

	cart, err := s.getOrCreateCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if idx := cart.FindItemIndex(productID); idx >= 0 {
		if cart.Items[idx].Quantity+quantity > product.Stock {
			return nil, apperrors.InsufficientStock(product.Stock)
		}
		cart.Items[idx].Quantity += quantity
	} else {
		if quantity > product.Stock {
			return nil, apperrors.InsufficientStock(product.Stock)
		}
		if len(cart.Items) >= MaxItemsPerCart {
			return nil, apperrors.InvalidInput(fmt.Sprintf("cart must not exceed %d distinct items", MaxItemsPerCart))
		}
		cart.Items = append(cart.Items, domain.CartItem{
			Product:  *product,
			Quantity: quantity,
		})
	}

	cart.UpdatedAt = time.Now().UTC()
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("session_id", sessionID),
		slog.String("product_id", productID),
		slog.Int("quantity", cart.Quantity(productID)),
	)

	return cart, nil
}

// UpdateQuantity sets the quantity for a cart item. A quantity below one
// removes the item. The quantity is validated against the stock captured in
// the item's snapshot, not a live lookup.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.getOrCreateCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItemIndex(productID)
	if idx < 0 {
		return nil, apperrors.NotFoundMsg("Item not found")
	}

	if quantity < 1 {
		return s.removeAt(ctx, cart, idx)
	}

	if quantity > cart.Items[idx].Product.Stock {
		return nil, apperrors.InsufficientStock(cart.Items[idx].Product.Stock)
	}

	cart.Items[idx].Quantity = quantity
	cart.UpdatedAt = time.Now().UTC()
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.logger.InfoContext(ctx, "cart quantity updated",
		slog.String("session_id", sessionID),
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// RemoveItem removes a cart item entirely.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, productID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.getOrCreateCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItemIndex(productID)
	if idx < 0 {
		return nil, apperrors.NotFoundMsg("Item not found")
	}

	return s.removeAt(ctx, cart, idx)
}

// ClearCart removes every item from the session's cart.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}

	if err := s.cartRepo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	s.logger.InfoContext(ctx, "cart cleared", slog.String("session_id", sessionID))

	return nil
}

func (s *CartService) removeAt(ctx context.Context, cart *domain.Cart, idx int) (*domain.Cart, error) {
	productID := cart.Items[idx].Product.ID
	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	cart.UpdatedAt = time.Now().UTC()

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("session_id", cart.SessionID),
		slog.String("product_id", productID),
	)

	return cart, nil
}

func (s *CartService) getOrCreateCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.cartRepo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.newEmptyCart(sessionID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

func (s *CartService) newEmptyCart(sessionID string) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		SessionID: sessionID,
		Items:     []domain.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
