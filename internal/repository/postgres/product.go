package postgres

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/davoodepb/temucore-shop-hub/internal/domain"
	"github.com/davoodepb/temucore-shop-hub/internal/repository"
	"github.com/davoodepb/temucore-shop-hub/pkg/database"
	apperrors "github.com/davoodepb/temucore-shop-hub/pkg/errors"
)

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	db database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db database.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, name, price, original_price, image, category, stock, rating, review_count, description, is_featured, is_flash_deal, created_at, updated_at`

// Create inserts a new product into the database.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (id, name, price, original_price, image, category, stock, rating, review_count, description, is_featured, is_flash_deal, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Price,
		p.OriginalPrice,
		p.Image,
		p.Category,
		p.Stock,
		p.Rating,
		p.ReviewCount,
		p.Description,
		p.IsFeatured,
		p.IsFlashDeal,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "id", p.ID)
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1`

	var p domain.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&p.OriginalPrice,
		&p.Image,
		&p.Category,
		&p.Stock,
		&p.Rating,
		&p.ReviewCount,
		&p.Description,
		&p.IsFeatured,
		&p.IsFlashDeal,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	return &p, nil
}

// List returns products matching the given filter with the total count.
func (r *ProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.Category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIndex))
		args = append(args, *filter.Category)
		argIndex++
	}

	if filter.Featured != nil {
		conditions = append(conditions, fmt.Sprintf("is_featured = $%d", argIndex))
		args = append(args, *filter.Featured)
		argIndex++
	}

	if filter.FlashDeal != nil {
		conditions = append(conditions, fmt.Sprintf("is_flash_deal = $%d", argIndex))
		args = append(args, *filter.FlashDeal)
		argIndex++
	}

	if filter.Search != nil {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+*filter.Search+"%")
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Use count(*) OVER() for total count in a single query.
	query := fmt.Sprintf(`
		SELECT %s,
			   count(*) OVER() AS total_count
		FROM products
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		productColumns, whereClause, argIndex, argIndex+1,
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
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var (
		products   []domain.Product
		totalCount int
	)

	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Price,
			&p.OriginalPrice,
			&p.Image,
			&p.Category,
			&p.Stock,
			&p.Rating,
			&p.ReviewCount,
			&p.Description,
			&p.IsFeatured,
			&p.IsFlashDeal,
			&p.CreatedAt,
			&p.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, totalCount, nil
}

// ListAll returns the full catalog, newest first.
func (r *ProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Price,
			&p.OriginalPrice,
			&p.Image,
			&p.Category,
			&p.Stock,
			&p.Rating,
			&p.ReviewCount,
			&p.Description,
			&p.IsFeatured,
			&p.IsFlashDeal,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

// Update modifies an existing product in the database.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE products
		SET name = $1, price = $2, original_price = $3, image = $4, category = $5,
		    stock = $6, description = $7, is_featured = $8, is_flash_deal = $9, updated_at = $10
		WHERE id = $11`

	ct, err := r.db.Exec(ctx, query,
		p.Name,
		p.Price,
		p.OriginalPrice,
		p.Image,
		p.Category,
		p.Stock,
		p.Description,
		p.IsFeatured,
		p.IsFlashDeal,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", p.ID)
	}

	return nil
}

// Delete removes a product from the database by its ID.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM products WHERE id = $1`

	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", id)
	}

	return nil
}

// DecrementStock applies all decrements inside a single transaction. Each
// stock row is locked with SELECT FOR UPDATE and checked before any write, so
// concurrent checkouts can never oversell: the whole batch commits or none of
// it does. Rows are locked in product ID order so two overlapping checkouts
// cannot deadlock on each other.
func (r *ProductRepository) DecrementStock(ctx context.Context, items []repository.StockDecrement) error {
	sorted := make([]repository.StockDecrement, len(items))
	copy(sorted, items)
	slices.SortFunc(sorted, func(a, b repository.StockDecrement) int {
		return strings.Compare(a.ProductID, b.ProductID)
	})

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin stock transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now().UTC()

	for _, item := range sorted {
		var stock int
		lockQuery := `
			SELECT stock
			FROM products
			WHERE id = $1
			FOR UPDATE`

		err := tx.QueryRow(ctx, lockQuery, item.ProductID).Scan(&stock)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NotFound("product", item.ProductID)
			}
			return fmt.Errorf("lock stock row: %w", err)
		}

		if stock < item.Quantity {
			return apperrors.InsufficientStock(stock)
		}

		updateQuery := `
			UPDATE products
			SET stock = stock - $1, updated_at = $2
			WHERE id = $3`

		if _, err := tx.Exec(ctx, updateQuery, item.Quantity, now, item.ProductID); err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit stock transaction: %w", err)
	}

	return nil
}

// UpdateRating overwrites the denormalized rating aggregate on a product.
func (r *ProductRepository) UpdateRating(ctx context.Context, productID string, rating float64, reviewCount int) error {
	query := `
		UPDATE products
		SET rating = $1, review_count = $2, updated_at = $3
		WHERE id = $4`

	ct, err := r.db.Exec(ctx, query, rating, reviewCount, time.Now().UTC(), productID)
	if err != nil {
		return fmt.Errorf("update product rating: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", productID)
	}

	return nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
