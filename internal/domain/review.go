package domain

import "time"

// Review represents a product review submitted by a customer. Reviews start
// unapproved and become publicly visible only after admin approval.
type Review struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	UserName   string    `json:"user_name"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewSummary contains aggregate statistics over the approved reviews of a
// product.
type ReviewSummary struct {
	AverageRating float64 `json:"average_rating"`
	TotalCount    int     `json:"total_count"`
}

// Summarize computes the average rating and count over the given reviews.
// Only approved reviews should be passed in.
func Summarize(reviews []Review) ReviewSummary {
	if len(reviews) == 0 {
		return ReviewSummary{}
	}
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	return ReviewSummary{
		AverageRating: float64(sum) / float64(len(reviews)),
		TotalCount:    len(reviews),
	}
}
