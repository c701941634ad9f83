package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/davoodepb/temucore-shop-hub/internal/domain"
	"github.com/davoodepb/temucore-shop-hub/internal/repository"
)

// LowStockThreshold is the stock level at or below which a product counts as
// low stock on the dashboard.
const LowStockThreshold = 5

// topProductsLimit caps the best-seller list on the overview.
const topProductsLimit = 5

// AnalyticsService computes the admin dashboard overview from the current
// collections. Nothing is precomputed; the catalog and order book are small
// enough to aggregate on demand.
type AnalyticsService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
	logger      *slog.Logger
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	reviewRepo repository.ReviewRepository,
	logger *slog.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		logger:      logger,
	}
}

// Overview aggregates revenue, order, stock and moderation counters.
// Cancelled orders are excluded from revenue and sales figures but still
// counted in the per-status breakdown.
func (s *AnalyticsService) Overview(ctx context.Context) (*domain.Overview, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	pendingReviews, err := s.reviewRepo.CountPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("count pending reviews: %w", err)
	}

	overview := &domain.Overview{
		TotalOrders:    len(orders),
		OrdersByStatus: make(map[string]int, len(domain.ValidStatuses())),
		TotalProducts:  len(products),
		PendingReviews: pendingReviews,
	}

	sales := make(map[string]*domain.ProductSales)
	for _, o := range orders {
		overview.OrdersByStatus[o.Status]++
		if o.Status == domain.OrderStatusCancelled {
			continue
		}

		overview.TotalRevenue += o.Total
		for _, item := range o.Items {
			ps, ok := sales[item.Product.ID]
			if !ok {
				ps = &domain.ProductSales{
					ProductID: item.Product.ID,
					Name:      item.Product.Name,
				}
				sales[item.Product.ID] = ps
			}
			ps.UnitsSold += item.Quantity
			ps.Revenue += item.Product.Price * int64(item.Quantity)
		}
	}

	for _, p := range products {
		if p.Stock <= LowStockThreshold {
			overview.LowStockCount++
		}
	}

	top := make([]domain.ProductSales, 0, len(sales))
	for _, ps := range sales {
		top = append(top, *ps)
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].UnitsSold != top[j].UnitsSold {
			return top[i].UnitsSold > top[j].UnitsSold
		}
		return top[i].Revenue > top[j].Revenue
	})
	if len(top) > topProductsLimit {
		top = top[:topProductsLimit]
	}
	overview.TopProducts = top

	s.logger.DebugContext(ctx, "analytics overview computed",
		slog.Int("total_orders", overview.TotalOrders),
		slog.Int64("total_revenue", overview.TotalRevenue),
	)

	return overview, nil
}
