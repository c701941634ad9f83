package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/davoodepb/temucore-shop-hub/internal/domain"
	"github.com/davoodepb/temucore-shop-hub/internal/repository"
	"github.com/davoodepb/temucore-shop-hub/pkg/database"
	apperrors "github.com/davoodepb/temucore-shop-hub/pkg/errors"
)

// OrderRepository implements repository.OrderRepository using PostgreSQL.
// Order items are stored as a JSONB snapshot taken at checkout.
type OrderRepository struct {
	db database.DBTX
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(db database.DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create appends a new order.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}

	query := `
		INSERT INTO orders (id, items, total, status, customer_name, customer_email, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.db.Exec(ctx, query,
		o.ID,
		itemsJSON,
		o.Total,
		o.Status,
		o.CustomerName,
		o.CustomerEmail,
		o.Address,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

// GetByID retrieves an order by its ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, items, total, status, customer_name, customer_email, address, created_at, updated_at
		FROM orders
		WHERE id = $1`

	var (
		o         domain.Order
		itemsJSON []byte
	)

	err := r.db.QueryRow(ctx, query, id).Scan(
		&o.ID,
		&itemsJSON,
		&o.Total,
		&o.Status,
		&o.CustomerName,
		&o.CustomerEmail,
		&o.Address,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("order", id)
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}

	return &o, nil
}

// List returns orders matching the given filter with the total count, newest
// first.
func (r *OrderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int, error) {
	var (
		args     []any
		argIndex = 1
	)

	whereClause := ""
	if filter.Status != nil {
		whereClause = fmt.Sprintf("WHERE status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}

	query := fmt.Sprintf(`
		SELECT id, items, total, status, customer_name, customer_email, address, created_at, updated_at,
			   count(*) OVER() AS total_count
		FROM orders
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIndex, argIndex+1,
	)

	limit := filter.PerPage
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var (
		orders     []domain.Order
		totalCount int
	)

	for rows.Next() {
		o, err := scanOrderRow(rows, &totalCount)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate order rows: %w", err)
	}

	if orders == nil {
		orders = []domain.Order{}
	}

	return orders, totalCount, nil
}

// ListByEmail returns all orders placed with the given customer email, newest
// first.
func (r *OrderRepository) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	query := `
		SELECT id, items, total, status, customer_name, customer_email, address, created_at, updated_at
		FROM orders
		WHERE lower(customer_email) = lower($1)
		ORDER BY created_at DESC`

	return r.queryOrders(ctx, query, email)
}

// ListAll returns every order.
func (r *OrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT id, items, total, status, customer_name, customer_email, address, created_at, updated_at
		FROM orders`

	return r.queryOrders(ctx, query)
}

// UpdateStatus overwrites the status of an order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE id = $3`

	ct, err := r.db.Exec(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("order", id)
	}

	return nil
}

func (r *OrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrderRow(rows, nil)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}

// scanOrderRow scans a single order row. When totalCount is non-nil the row
// is expected to carry a trailing count(*) OVER() column.
func scanOrderRow(rows pgx.Rows, totalCount *int) (*domain.Order, error) {
	var (
		o         domain.Order
		itemsJSON []byte
	)

	dest := []any{
		&o.ID,
		&itemsJSON,
		&o.Total,
		&o.Status,
		&o.CustomerName,
		&o.CustomerEmail,
		&o.Address,
		&o.CreatedAt,
		&o.UpdatedAt,
	}
	if totalCount != nil {
		dest = append(dest, totalCount)
	}

	if err := rows.Scan(dest...); err != nil {
		return nil, fmt.Errorf("scan order row: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}

	return &o, nil
}
