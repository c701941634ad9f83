package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davoodepb/temucore-shop-hub/internal/domain"
)

func TestOverview_AggregatesOrders(t *testing.T) {
	orderRepo := new(mockOrderRepository)
	productRepo := new(mockProductRepository)
	reviewRepo := new(mockReviewRepository)
	svc := NewAnalyticsService(orderRepo, productRepo, reviewRepo, newTestLogger())
	ctx := context.Background()

	earbuds := domain.Product{ID: "prod-1", Name: "Wireless Earbuds", Price: 1999}
	lamp := domain.Product{ID: "prod-2", Name: "Desk Lamp", Price: 3500}

	orderRepo.On("ListAll", ctx).Return([]domain.Order{
		{
			ID:     "order-1",
			Status: domain.OrderStatusPaid,
			Total:  3998,
			Items:  []domain.CartItem{{Product: earbuds, Quantity: 2}},
		},
		{
			ID:     "order-2",
			Status: domain.OrderStatusShipped,
			Total:  3500,
			Items:  []domain.CartItem{{Product: lamp, Quantity: 1}},
		},
		{
			ID:     "order-3",
			Status: domain.OrderStatusCancelled,
			Total:  9999,
			Items:  []domain.CartItem{{Product: lamp, Quantity: 3}},
		},
	}, nil)
	productRepo.On("ListAll", ctx).Return([]domain.Product{
		{ID: "prod-1", Stock: 3},
		{ID: "prod-2", Stock: 50},
	}, nil)
	reviewRepo.On("CountPending", ctx).Return(4, nil)

	overview, err := svc.Overview(ctx)

	require.NoError(t, err)

	// Cancelled orders count toward totals but not revenue or sales.
	assert.Equal(t, 3, overview.TotalOrders)
	assert.Equal(t, int64(7498), overview.TotalRevenue)
	assert.Equal(t, 1, overview.OrdersByStatus[domain.OrderStatusPaid])
	assert.Equal(t, 1, overview.OrdersByStatus[domain.OrderStatusCancelled])

	assert.Equal(t, 2, overview.TotalProducts)
	assert.Equal(t, 1, overview.LowStockCount)
	assert.Equal(t, 4, overview.PendingReviews)

	require.Len(t, overview.TopProducts, 2)
	assert.Equal(t, "prod-1", overview.TopProducts[0].ProductID)
	assert.Equal(t, 2, overview.TopProducts[0].UnitsSold)
	assert.Equal(t, int64(3998), overview.TopProducts[0].Revenue)
}

func TestOverview_EmptyStore(t *testing.T) {
	orderRepo := new(mockOrderRepository)
	productRepo := new(mockProductRepository)
	reviewRepo := new(mockReviewRepository)
	svc := NewAnalyticsService(orderRepo, productRepo, reviewRepo, newTestLogger())
	ctx := context.Background()

	orderRepo.On("ListAll", ctx).Return([]domain.Order{}, nil)
	productRepo.On("ListAll", ctx).Return([]domain.Product{}, nil)
	reviewRepo.On("CountPending", ctx).Return(0, nil)

	overview, err := svc.Overview(ctx)

	require.NoError(t, err)
	assert.Zero(t, overview.TotalRevenue)
	assert.Zero(t, overview.TotalOrders)
	assert.Empty(t, overview.TopProducts)
}
