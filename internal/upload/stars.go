package upload

import (
	"fmt"
	"sync"

	"github.com/utafrali/reviewcarousel/internal/domain"
)

// StarRating is the five-star rating input. Zero means nothing selected.
type StarRating struct {
	mu       sync.Mutex
	selected int
}

// Select lights stars 1..n.
func (s *StarRating) Select(n int) error {
	if n < domain.MinSubmitRating || n > domain.MaxRating {
		return fmt.Errorf("star %d out of range [%d,%d]", n, domain.MinSubmitRating, domain.MaxRating)
	}
	s.mu.Lock()
	s.selected = n
	s.mu.Unlock()
	return nil
}

// Filled reports whether star i is lit.
func (s *StarRating) Filled(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return i >= domain.MinSubmitRating && i <= s.selected
}

// Value returns the selected rating, or 0.
func (s *StarRating) Value() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Reset clears the selection.
func (s *StarRating) Reset() {
	s.mu.Lock()
	s.selected = 0
	s.mu.Unlock()
}

// String draws the input, e.g. "★★★☆☆".
func (s *StarRating) String() string {
	return domain.Stars(s.Value())
}
