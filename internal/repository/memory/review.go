package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/utafrali/reviewcarousel/internal/domain"
)

// ReviewRepository keeps reviews in process memory. Contents are lost on
// restart.
type ReviewRepository struct {
	mu      sync.RWMutex
	reviews []domain.Review
	ids     map[string]struct{}
}

// NewReviewRepository creates a repository pre-filled with seed.
func NewReviewRepository(seed ...domain.Review) *ReviewRepository {
	r := &ReviewRepository{ids: make(map[string]struct{})}
	for _, s := range seed {
		r.reviews = append(r.reviews, s)
		if s.ID != "" {
			r.ids[s.ID] = struct{}{}
		}
	}
	return r
}

// Create appends review. IDs must be unique when set.
func (r *ReviewRepository) Create(_ context.Context, review *domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if review.ID != "" {
		if _, exists := r.ids[review.ID]; exists {
			return fmt.Errorf("review %s already exists", review.ID)
		}
		r.ids[review.ID] = struct{}{}
	}
	r.reviews = append(r.reviews, *review)
	return nil
}

// List returns a copy of all reviews, oldest first.
func (r *ReviewRepository) List(_ context.Context) ([]domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := slices.Clone(r.reviews)
	if out == nil {
		out = []domain.Review{}
	}
	return out, nil
}

// Count returns the number of stored reviews.
func (r *ReviewRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.reviews), nil
}
