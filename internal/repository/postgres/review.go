package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/davoodepb/temucore-shop-hub/internal/domain"
	"github.com/davoodepb/temucore-shop-hub/pkg/database"
	apperrors "github.com/davoodepb/temucore-shop-hub/pkg/errors"
)

// ReviewRepository implements repository.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	db database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(db database.DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create appends a new review.
func (r *ReviewRepository) Create(ctx context.Context, rev *domain.Review) error {
	query := `
		INSERT INTO reviews (id, product_id, user_name, rating, comment, is_approved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		rev.ID,
		rev.ProductID,
		rev.UserName,
		rev.Rating,
		rev.Comment,
		rev.IsApproved,
		rev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}

	return nil
}

// GetByID retrieves a review by its ID.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	query := `
		SELECT id, product_id, user_name, rating, comment, is_approved, created_at
		FROM reviews
		WHERE id = $1`

	var rev domain.Review
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rev.ID,
		&rev.ProductID,
		&rev.UserName,
		&rev.Rating,
		&rev.Comment,
		&rev.IsApproved,
		&rev.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("review", id)
		}
		return nil, fmt.Errorf("scan review: %w", err)
	}

	return &rev, nil
}

// ListByProduct returns reviews for a product, newest first.
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID string, approvedOnly bool) ([]domain.Review, error) {
	query := `
		SELECT id, product_id, user_name, rating, comment, is_approved, created_at
		FROM reviews
		WHERE product_id = $1`
	if approvedOnly {
		query += ` AND is_approved = true`
	}
	query += ` ORDER BY created_at DESC`

	return r.queryReviews(ctx, query, productID)
}

// ListAll returns every review, newest first.
func (r *ReviewRepository) ListAll(ctx context.Context) ([]domain.Review, error) {
	query := `
		SELECT id, product_id, user_name, rating, comment, is_approved, created_at
		FROM reviews
		ORDER BY created_at DESC`

	return r.queryReviews(ctx, query)
}

// SetApproved marks a review as approved.
func (r *ReviewRepository) SetApproved(ctx context.Context, id string) error {
	query := `UPDATE reviews SET is_approved = true WHERE id = $1`

	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("approve review: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("review", id)
	}

	return nil
}

// Delete removes a review.
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM reviews WHERE id = $1`

	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("review", id)
	}

	return nil
}

// CountPending returns the number of reviews awaiting approval.
func (r *ReviewRepository) CountPending(ctx context.Context) (int, error) {
	query := `SELECT count(*) FROM reviews WHERE is_approved = false`

	var n int
	if err := r.db.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count pending reviews: %w", err)
	}

	return n, nil
}

func (r *ReviewRepository) queryReviews(ctx context.Context, query string, args ...any) ([]domain.Review, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(
			&rev.ID,
			&rev.ProductID,
			&rev.UserName,
			&rev.Rating,
			&rev.Comment,
			&rev.IsApproved,
			&rev.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, rev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}
