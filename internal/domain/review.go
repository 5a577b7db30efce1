package domain

import (
	"fmt"
	"strings"
	"time"
)

// Rating bounds. A stored review may carry 0 (unrated); a submission needs 1..5.
const (
	MinRating       = 0
	MaxRating       = 5
	MinSubmitRating = 1
)

// Review is one reviewer's entry as exchanged with the review endpoint.
type Review struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Review    string    `json:"review"`
	Rating    int       `json:"rating"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// HasImage reports whether the review should be rendered with an image.
func (r Review) HasImage() bool {
	return strings.TrimSpace(r.ImageURL) != ""
}

// Validate checks the rating invariant.
func (r Review) Validate() error {
	if r.Rating < MinRating || r.Rating > MaxRating {
		return fmt.Errorf("rating %d out of range [%d,%d]", r.Rating, MinRating, MaxRating)
	}
	return nil
}

// Stars renders rating as a five-slot bar of filled and empty stars.
// Out-of-range ratings are clamped.
func Stars(rating int) string {
	rating = max(MinRating, min(rating, MaxRating))
	return strings.Repeat("★", rating) + strings.Repeat("☆", MaxRating-rating)
}
