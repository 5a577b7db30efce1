package repository

import (
	"context"

	"github.com/utafrali/reviewcarousel/internal/domain"
)

// ReviewRepository defines review persistence operations.
type ReviewRepository interface {
	// Create stores a new review.
	Create(ctx context.Context, review *domain.Review) error

	// List returns every review in insertion order.
	List(ctx context.Context) ([]domain.Review, error)

	// Count returns the number of stored reviews.
	Count(ctx context.Context) (int, error)
}
