package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davoodepb/temucore-shop-hub/internal/domain"
	"github.com/davoodepb/temucore-shop-hub/internal/repository"
	apperrors "github.com/davoodepb/temucore-shop-hub/pkg/errors"
)

// --- Test Helpers ---

func newTestOrderService(
	orderRepo *mockOrderRepository,
	cartRepo *mockCartRepository,
	productRepo *mockProductRepository,
) *OrderService {
	return NewOrderService(orderRepo, cartRepo, productRepo, nil, newTestLogger(), 0)
}

func checkoutInput() CheckoutInput {
	return CheckoutInput{
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Address:       "12 Analytical Way",
	}
}

// --- Tests ---

func TestPlaceOrder_Success(t *testing.T) {
	orderRepo := new(mockOrderRepository)
	cartRepo := new(mockCartRepository)
	productRepo := new(mockProductRepository)
	svc := newTestOrderService(orderRepo, cartRepo, productRepo)
	ctx := context.Background()

	product := productWithStock("prod-1", 10)
	cart := cartWithItem("sess-1", product, 2)
	cartRepo.On("Get", ctx, "sess-1").Return(cart, nil)
	productRepo.On("DecrementStock", ctx, []repository.StockDecrement{
		{ProductID: "prod-1", Quantity: 2},
	}).Return(nil)
	orderRepo.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)
	cartRepo.On("Delete", ctx, "sess-1").Return(nil)

	order, err := svc.PlaceOrder(ctx, "sess-1", checkoutInput())

	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, domain.OrderStatusPaid, order.Status)
	assert.Equal(t, int64(3998), order.Total)
	assert.Equal(t, "ada@example.com", order.CustomerEmail)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	orderRepo.AssertExpectations(t)
	cartRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	orderRepo := new(mockOrderRepository)
	cartRepo := new(mockCartRepository)
	productRepo := new(mockProductRepository)
	svc := newTestOrderService(orderRepo, cartRepo, productRepo)
	ctx := context.Background()

	cartRepo.On("Get", ctx, "sess-1").Return(&domain.Cart{SessionID: "sess-1", Items: []domain.CartItem{}}, nil)

	order, err := svc.PlaceOrder(ctx, "sess-1", checkoutInput())

	assert.Nil(t, order)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPlaceOrder_MissingCartRejectedAsEmpty(t *testing.T) {
	orderRepo := new(mockOrderRepository)
	cartRepo := new(mockCartRepository)
	productRepo := new(mockProductRepository)
	svc := newTestOrderService(orderRepo, cartRepo, productRepo)
	ctx := context.Background()

	cartRepo.On("Get", ctx, "sess-1").Return(nil, apperrors.NotFound("cart", "sess-1"))

	order, err := svc.PlaceOrder(ctx, "sess-1", checkoutInput())

	assert.Nil(t, order)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "cart is empty")
}

func TestPlaceOrder_CartStorageErrorIsNotEmptyCart(t *testing.T) {
	orderRepo := new(mockOrderRepository)
	cartRepo := new(mockCartRepository)
	productRepo := new(mockProductRepository)
	svc := newTestOrderService(orderRepo, cartRepo, productRepo)
	ctx := context.Background()

	cartRepo.On("Get", ctx, "sess-1").Return(nil, errors.New("dial tcp: connection refused"))

	order, err := svc.PlaceOrder(ctx, "sess-1", checkoutInput())

	assert.Nil(t, order)
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.NotContains(t, err.Error(), "cart is empty")
	orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPlaceOrder_InsufficientStockAbortsCheckout(t *testing.T) {
	orderRepo := new(mockOrderRepository)
	cartRepo := new(mockCartRepository)
	productRepo := new(mockProductRepository)
	svc := newTestOrderService(orderRepo, cartRepo, productRepo)
	ctx := context.Background()

	product := productWithStock("prod-1", 10)
	cartRepo.On("Get", ctx, "sess-1").Return(cartWithItem("sess-1", product, 2), nil)
	productRepo.On("DecrementStock", ctx, mock.Anything).Return(apperrors.InsufficientStock(1))

	order, err := svc.PlaceOrder(ctx, "sess-1", checkoutInput())

	assert.Nil(t, order)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)

	// No order was written and the cart survives for the customer to adjust.
	orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	cartRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPlaceOrder_CancelledContext(t *testing.T) {
	orderRepo := new(mockOrderRepository)
	cartRepo := new(mockCartRepository)
	productRepo := new(mockProductRepository)
	svc := NewOrderService(orderRepo, cartRepo, productRepo, nil, newTestLogger(), time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	product := productWithStock("prod-1", 10)
	cartRepo.On("Get", ctx, "sess-1").Return(cartWithItem("sess-1", product, 1), nil)

	cancel()
	order, err := svc.PlaceOrder(ctx, "sess-1", checkoutInput())

	assert.Nil(t, order)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	// Abandoned payment must not touch stock.
	productRepo.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything)
}

func TestUpdateStatus_ValidTransition(t *testing.T) {
	orderRepo := new(mockOrderRepository)
	cartRepo := new(mockCartRepository)
	productRepo := new(mockProductRepository)
	svc := newTestOrderService(orderRepo, cartRepo, productRepo)
	ctx := context.Background()

	orderRepo.On("GetByID", ctx, "order-1").Return(&domain.Order{
		ID:     "order-1",
		Status: domain.OrderStatusPaid,
	}, nil)
	orderRepo.On("UpdateStatus", ctx, "order-1", domain.OrderStatusShipped).Return(nil)

	order, err := svc.UpdateStatus(ctx, "order-1", domain.OrderStatusShipped)

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, order.Status)
	orderRepo.AssertExpectations(t)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	orderRepo := new(mockOrderRepository)
	cartRepo := new(mockCartRepository)
	productRepo := new(mockProductRepository)
	svc := newTestOrderService(orderRepo, cartRepo, productRepo)
	ctx := context.Background()

	orderRepo.On("GetByID", ctx, "order-1").Return(&domain.Order{
		ID:     "order-1",
		Status: domain.OrderStatusDelivered,
	}, nil)

	order, err := svc.UpdateStatus(ctx, "order-1", domain.OrderStatusPending)

	assert.Nil(t, order)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	orderRepo := new(mockOrderRepository)
	cartRepo := new(mockCartRepository)
	productRepo := new(mockProductRepository)
	svc := newTestOrderService(orderRepo, cartRepo, productRepo)

	order, err := svc.UpdateStatus(context.Background(), "order-1", "teleported")

	assert.Nil(t, order)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestListOrders_InvalidStatusFilter(t *testing.T) {
	orderRepo := new(mockOrderRepository)
	cartRepo := new(mockCartRepository)
	productRepo := new(mockProductRepository)
	svc := newTestOrderService(orderRepo, cartRepo, productRepo)

	bad := "teleported"
	orders, total, err := svc.ListOrders(context.Background(), repository.OrderFilter{Status: &bad})

	assert.Nil(t, orders)
	assert.Zero(t, total)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
