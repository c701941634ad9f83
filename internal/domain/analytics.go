package domain

// Overview is the admin dashboard summary computed from the current
// collections. Revenue excludes cancelled orders.
type Overview struct {
	TotalRevenue   int64          `json:"total_revenue"`
	TotalOrders    int            `json:"total_orders"`
	OrdersByStatus map[string]int `json:"orders_by_status"`
	TotalProducts  int            `json:"total_products"`
	LowStockCount  int            `json:"low_stock_count"`
	PendingReviews int            `json:"pending_reviews"`
	TopProducts    []ProductSales `json:"top_products"`
}

// ProductSales reports units sold and revenue for a single product across
// non-cancelled orders.
type ProductSales struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitsSold int    `json:"units_sold"`
	Revenue   int64  `json:"revenue"`
}
