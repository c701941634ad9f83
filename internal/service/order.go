package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/davoodepb/temucore-shop-hub/internal/domain"
	"github.com/davoodepb/temucore-shop-hub/internal/event"
	"github.com/davoodepb/temucore-shop-hub/internal/repository"
	apperrors "github.com/davoodepb/temucore-shop-hub/pkg/errors"
)

// CheckoutInput holds the customer details captured at checkout.
type CheckoutInput struct {
	CustomerName  string `json:"customer_name" validate:"required,max=200"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	Address       string `json:"address" validate:"required,max=500"`
}

// OrderService implements checkout and order management.
type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	producer    *event.Producer
	logger      *slog.Logger

	// paymentDelay simulates the payment provider round trip.
	paymentDelay time.Duration
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	producer *event.Producer,
	logger *slog.Logger,
	paymentDelay time.Duration,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		producer:     producer,
		logger:       logger,
		paymentDelay: paymentDelay,
	}
}

// PlaceOrder turns the session's cart into a paid order. Stock for every
// line is decremented in one atomic batch before the order is written: if any
// product no longer has enough stock, the whole checkout is rejected and both
// the cart and the catalog are left untouched. The cart is cleared only after
// the order is persisted.
func (s *OrderService) PlaceOrder(ctx context.Context, sessionID string, input CheckoutInput) (*domain.Order, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.cartRepo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.InvalidInput("cart is empty")
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	if err := s.simulatePayment(ctx); err != nil {
		return nil, err
	}

	decrements := make([]repository.StockDecrement, len(cart.Items))
	for i, item := range cart.Items {
		decrements[i] = repository.StockDecrement{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
		}
	}

	if err := s.productRepo.DecrementStock(ctx, decrements); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:            uuid.New().String(),
		Items:         cart.Items,
		Total:         cart.Subtotal(),
		Status:        domain.OrderStatusPaid,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		Address:       input.Address,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.cartRepo.Delete(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear cart after checkout",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	if s.producer != nil {
		if err := s.producer.PublishOrderPlaced(ctx, order); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish order.placed event",
				slog.String("order_id", order.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.String("session_id", sessionID),
		slog.Int64("total", order.Total),
		slog.Int("unit_count", order.UnitCount()),
	)

	return order, nil
}

// GetOrder retrieves an order by ID.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("order id is required")
	}

	return s.orderRepo.GetByID(ctx, id)
}

// ListOrders returns orders matching the filter with the total count.
func (s *OrderService) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int, error) {
	if filter.Status != nil && !domain.IsValidStatus(*filter.Status) {
		return nil, 0, apperrors.InvalidInput(fmt.Sprintf("invalid status %q", *filter.Status))
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > 100 {
		filter.PerPage = 20
	}

	return s.orderRepo.List(ctx, filter)
}

// ListOrdersByEmail returns the order history for a customer email.
func (s *OrderService) ListOrdersByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	if email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}

	return s.orderRepo.ListByEmail(ctx, email)
}

// UpdateStatus transitions an order to a new status. Only the transitions in
// domain.AllowedTransitions are accepted.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	if !domain.IsValidStatus(status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid status %q", status))
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.CanTransitionTo(status) {
		return nil, apperrors.Conflict(fmt.Sprintf("cannot transition order from %s to %s", order.Status, status))
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	oldStatus := order.Status
	order.Status = status
	order.UpdatedAt = time.Now().UTC()

	if s.producer != nil {
		if err := s.producer.PublishOrderStatusChanged(ctx, id, oldStatus, status); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish order.status_changed event",
				slog.String("order_id", id),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "order status updated",
		slog.String("order_id", id),
		slog.String("old_status", oldStatus),
		slog.String("new_status", status),
	)

	return order, nil
}

// simulatePayment stands in for a payment provider call. It respects
// cancellation so an abandoned checkout does not decrement stock.
func (s *OrderService) simulatePayment(ctx context.Context) error {
	if s.paymentDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(s.paymentDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("payment aborted: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
