package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/davoodepb/temucore-shop-hub/internal/domain"
	"github.com/davoodepb/temucore-shop-hub/internal/event"
	"github.com/davoodepb/temucore-shop-hub/internal/repository"
	apperrors "github.com/davoodepb/temucore-shop-hub/pkg/errors"
)

// SubmitReviewInput holds the parameters for submitting a product review.
type SubmitReviewInput struct {
	ProductID string `json:"product_id" validate:"required"`
	UserName  string `json:"user_name" validate:"required,max=100"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"max=2000"`
}

// ReviewService implements review submission and moderation. Reviews start
// unapproved; approving one recomputes the product's denormalized rating
// aggregate from the approved set.
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	producer    *event.Producer
	logger      *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		producer:    producer,
		logger:      logger,
	}
}

// SubmitReview records a new review awaiting approval. The product must
// exist; the review is not publicly visible until approved.
func (s *ReviewService) SubmitReview(ctx context.Context, input SubmitReviewInput) (*domain.Review, error) {
	if _, err := s.productRepo.GetByID(ctx, input.ProductID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		ID:         uuid.New().String(),
		ProductID:  input.ProductID,
		UserName:   input.UserName,
		Rating:     input.Rating,
		Comment:    input.Comment,
		IsApproved: false,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	if s.producer != nil {
		if err := s.producer.PublishReviewSubmitted(ctx, review); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish review.submitted event",
				slog.String("review_id", review.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "review submitted",
		slog.String("review_id", review.ID),
		slog.String("product_id", review.ProductID),
		slog.Int("rating", review.Rating),
	)

	return review, nil
}

// ListProductReviews returns the approved reviews for a product together
// with their aggregate summary.
func (s *ReviewService) ListProductReviews(ctx context.Context, productID string) ([]domain.Review, domain.ReviewSummary, error) {
	if productID == "" {
		return nil, domain.ReviewSummary{}, apperrors.InvalidInput("product id is required")
	}

	reviews, err := s.reviewRepo.ListByProduct(ctx, productID, true)
	if err != nil {
		return nil, domain.ReviewSummary{}, fmt.Errorf("list reviews: %w", err)
	}

	return reviews, domain.Summarize(reviews), nil
}

// ListAllReviews returns every review for the moderation queue.
func (s *ReviewService) ListAllReviews(ctx context.Context) ([]domain.Review, error) {
	return s.reviewRepo.ListAll(ctx)
}

// ApproveReview marks a review approved and refreshes the product's rating
// aggregate from the full approved set.
func (s *ReviewService) ApproveReview(ctx context.Context, id string) (*domain.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if review.IsApproved {
		return review, nil
	}

	if err := s.reviewRepo.SetApproved(ctx, id); err != nil {
		return nil, fmt.Errorf("approve review: %w", err)
	}
	review.IsApproved = true

	if err := s.refreshProductRating(ctx, review.ProductID); err != nil {
		return nil, err
	}

	if s.producer != nil {
		if err := s.producer.PublishReviewApproved(ctx, review.ID, review.ProductID); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish review.approved event",
				slog.String("review_id", review.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "review approved",
		slog.String("review_id", id),
		slog.String("product_id", review.ProductID),
	)

	return review, nil
}

// DeleteReview removes a review. If it was approved, the product's rating
// aggregate is recomputed without it.
func (s *ReviewService) DeleteReview(ctx context.Context, id string) error {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	if review.IsApproved {
		if err := s.refreshProductRating(ctx, review.ProductID); err != nil {
			return err
		}
	}

	s.logger.InfoContext(ctx, "review deleted",
		slog.String("review_id", id),
		slog.String("product_id", review.ProductID),
	)

	return nil
}

func (s *ReviewService) refreshProductRating(ctx context.Context, productID string) error {
	approved, err := s.reviewRepo.ListByProduct(ctx, productID, true)
	if err != nil {
		return fmt.Errorf("list approved reviews: %w", err)
	}

	summary := domain.Summarize(approved)
	rating := math.Round(summary.AverageRating*10) / 10

	if err := s.productRepo.UpdateRating(ctx, productID, rating, summary.TotalCount); err != nil {
		return fmt.Errorf("update product rating: %w", err)
	}

	return nil
}
