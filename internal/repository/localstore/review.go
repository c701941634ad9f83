package localstore

import (
	"context"
	"sort"

	"github.com/davoodepb/temucore-shop-hub/internal/domain"
	apperrors "github.com/davoodepb/temucore-shop-hub/pkg/errors"
)

// ReviewRepository implements repository.ReviewRepository over the local
// snapshot store.
type ReviewRepository struct {
	store *Store
}

// NewReviewRepository creates a new localstore review repository.
func NewReviewRepository(store *Store) *ReviewRepository {
	return &ReviewRepository{store: store}
}

// Create appends a new review.
func (r *ReviewRepository) Create(ctx context.Context, rev *domain.Review) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	reviews, err := load[domain.Review](r.store.backend, keyReviews)
	if err != nil {
		return err
	}
	reviews = append(reviews, *rev)
	return save(r.store.backend, keyReviews, reviews)
}

// GetByID retrieves a review by its unique identifier.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	reviews, err := load[domain.Review](r.store.backend, keyReviews)
	if err != nil {
		return nil, err
	}
	for i := range reviews {
		if reviews[i].ID == id {
			rev := reviews[i]
			return &rev, nil
		}
	}
	return nil, apperrors.NotFound("review", id)
}

// ListByProduct returns reviews for a product, newest first.
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID string, approvedOnly bool) ([]domain.Review, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	reviews, err := load[domain.Review](r.store.backend, keyReviews)
	if err != nil {
		return nil, err
	}
	matched := make([]domain.Review, 0)
	for _, rev := range reviews {
		if rev.ProductID != productID {
			continue
		}
		if approvedOnly && !rev.IsApproved {
			continue
		}
		matched = append(matched, rev)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

// ListAll returns every review, newest first.
func (r *ReviewRepository) ListAll(ctx context.Context) ([]domain.Review, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	reviews, err := load[domain.Review](r.store.backend, keyReviews)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}

// SetApproved marks a review as approved.
func (r *ReviewRepository) SetApproved(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	reviews, err := load[domain.Review](r.store.backend, keyReviews)
	if err != nil {
		return err
	}
	for i := range reviews {
		if reviews[i].ID == id {
			reviews[i].IsApproved = true
			return save(r.store.backend, keyReviews, reviews)
		}
	}
	return apperrors.NotFound("review", id)
}

// Delete removes a review.
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	reviews, err := load[domain.Review](r.store.backend, keyReviews)
	if err != nil {
		return err
	}
	for i := range reviews {
		if reviews[i].ID == id {
			reviews = append(reviews[:i], reviews[i+1:]...)
			return save(r.store.backend, keyReviews, reviews)
		}
	}
	return apperrors.NotFound("review", id)
}

// CountPending returns the number of reviews awaiting approval.
func (r *ReviewRepository) CountPending(ctx context.Context) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	reviews, err := load[domain.Review](r.store.backend, keyReviews)
	if err != nil {
		return 0, err
	}
	var n int
	for _, rev := range reviews {
		if !rev.IsApproved {
			n++
		}
	}
	return n, nil
}
