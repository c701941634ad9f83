package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davoodepb/temucore-shop-hub/internal/domain"
	apperrors "github.com/davoodepb/temucore-shop-hub/pkg/errors"
)

// --- Test Helpers ---

func newTestReviewService(reviewRepo *mockReviewRepository, productRepo *mockProductRepository) *ReviewService {
	return NewReviewService(reviewRepo, productRepo, nil, newTestLogger())
}

func approvedReview(id, productID string, rating int) domain.Review {
	return domain.Review{
		ID:         id,
		ProductID:  productID,
		UserName:   "Grace",
		Rating:     rating,
		IsApproved: true,
		CreatedAt:  time.Now().UTC(),
	}
}

// --- Tests ---

func TestSubmitReview_StartsUnapproved(t *testing.T) {
	reviewRepo := new(mockReviewRepository)
	productRepo := new(mockProductRepository)
	svc := newTestReviewService(reviewRepo, productRepo)
	ctx := context.Background()

	productRepo.On("GetByID", ctx, "prod-1").Return(productWithStock("prod-1", 5), nil)
	reviewRepo.On("Create", ctx, mock.AnythingOfType("*domain.Review")).Return(nil)

	review, err := svc.SubmitReview(ctx, SubmitReviewInput{
		ProductID: "prod-1",
		UserName:  "Grace",
		Rating:    5,
		Comment:   "Excellent",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, review.ID)
	assert.False(t, review.IsApproved)
	assert.Equal(t, 5, review.Rating)
	reviewRepo.AssertExpectations(t)
}

func TestSubmitReview_UnknownProduct(t *testing.T) {
	reviewRepo := new(mockReviewRepository)
	productRepo := new(mockProductRepository)
	svc := newTestReviewService(reviewRepo, productRepo)
	ctx := context.Background()

	productRepo.On("GetByID", ctx, "ghost").Return(nil, apperrors.NotFound("product", "ghost"))

	review, err := svc.SubmitReview(ctx, SubmitReviewInput{
		ProductID: "ghost",
		UserName:  "Grace",
		Rating:    4,
	})

	assert.Nil(t, review)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestApproveReview_RecomputesRating(t *testing.T) {
	reviewRepo := new(mockReviewRepository)
	productRepo := new(mockProductRepository)
	svc := newTestReviewService(reviewRepo, productRepo)
	ctx := context.Background()

	pending := &domain.Review{
		ID:        "rev-3",
		ProductID: "prod-1",
		Rating:    3,
	}
	reviewRepo.On("GetByID", ctx, "rev-3").Return(pending, nil)
	reviewRepo.On("SetApproved", ctx, "rev-3").Return(nil)
	reviewRepo.On("ListByProduct", ctx, "prod-1", true).Return([]domain.Review{
		approvedReview("rev-1", "prod-1", 5),
		approvedReview("rev-2", "prod-1", 4),
		approvedReview("rev-3", "prod-1", 3),
	}, nil)
	// (5+4+3)/3 = 4.0 over three approved reviews.
	productRepo.On("UpdateRating", ctx, "prod-1", 4.0, 3).Return(nil)

	review, err := svc.ApproveReview(ctx, "rev-3")

	require.NoError(t, err)
	assert.True(t, review.IsApproved)
	productRepo.AssertExpectations(t)
}

func TestApproveReview_AlreadyApprovedIsNoOp(t *testing.T) {
	reviewRepo := new(mockReviewRepository)
	productRepo := new(mockProductRepository)
	svc := newTestReviewService(reviewRepo, productRepo)
	ctx := context.Background()

	already := approvedReview("rev-1", "prod-1", 5)
	reviewRepo.On("GetByID", ctx, "rev-1").Return(&already, nil)

	review, err := svc.ApproveReview(ctx, "rev-1")

	require.NoError(t, err)
	assert.True(t, review.IsApproved)
	reviewRepo.AssertNotCalled(t, "SetApproved", mock.Anything, mock.Anything)
	productRepo.AssertNotCalled(t, "UpdateRating", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteReview_ApprovedRecomputesRating(t *testing.T) {
	reviewRepo := new(mockReviewRepository)
	productRepo := new(mockProductRepository)
	svc := newTestReviewService(reviewRepo, productRepo)
	ctx := context.Background()

	target := approvedReview("rev-2", "prod-1", 4)
	reviewRepo.On("GetByID", ctx, "rev-2").Return(&target, nil)
	reviewRepo.On("Delete", ctx, "rev-2").Return(nil)
	reviewRepo.On("ListByProduct", ctx, "prod-1", true).Return([]domain.Review{
		approvedReview("rev-1", "prod-1", 5),
	}, nil)
	productRepo.On("UpdateRating", ctx, "prod-1", 5.0, 1).Return(nil)

	err := svc.DeleteReview(ctx, "rev-2")

	require.NoError(t, err)
	productRepo.AssertExpectations(t)
}

func TestDeleteReview_UnapprovedSkipsRecompute(t *testing.T) {
	reviewRepo := new(mockReviewRepository)
	productRepo := new(mockProductRepository)
	svc := newTestReviewService(reviewRepo, productRepo)
	ctx := context.Background()

	pending := &domain.Review{ID: "rev-9", ProductID: "prod-1", Rating: 1}
	reviewRepo.On("GetByID", ctx, "rev-9").Return(pending, nil)
	reviewRepo.On("Delete", ctx, "rev-9").Return(nil)

	err := svc.DeleteReview(ctx, "rev-9")

	require.NoError(t, err)
	productRepo.AssertNotCalled(t, "UpdateRating", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListProductReviews_SummarizesApproved(t *testing.T) {
	reviewRepo := new(mockReviewRepository)
	productRepo := new(mockProductRepository)
	svc := newTestReviewService(reviewRepo, productRepo)
	ctx := context.Background()

	reviewRepo.On("ListByProduct", ctx, "prod-1", true).Return([]domain.Review{
		approvedReview("rev-1", "prod-1", 5),
		approvedReview("rev-2", "prod-1", 2),
	}, nil)

	reviews, summary, err := svc.ListProductReviews(ctx, "prod-1")

	require.NoError(t, err)
	assert.Len(t, reviews, 2)
	assert.InDelta(t, 3.5, summary.AverageRating, 0.001)
	assert.Equal(t, 2, summary.TotalCount)
}
