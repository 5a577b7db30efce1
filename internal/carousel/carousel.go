// Package carousel cycles a fixed-size window over a list of reviews.
//
// A Controller owns the fetched reviews, the rotation index and the
// direction of the last move. It emits every window it computes to a
// RenderTarget and reports transitions to registered handlers. A Rotator
// drives the controller on a fixed period.
package carousel

import (
	"context"

	"github.com/utafrali/reviewcarousel/internal/domain"
)

// Direction hints which side new cards enter from.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// State is the controller's logical state.
type State int

const (
	Empty State = iota
	Populated
)

func (s State) String() string {
	if s == Populated {
		return "populated"
	}
	return "empty"
}

// Window is the ordered set of reviews currently shown.
type Window struct {
	Reviews   []domain.Review
	Direction Direction
	// Start is the index of the first review in the full list.
	Start int
	// Total is the length of the full list.
	Total int
}

// Empty reports whether the window is the placeholder window.
func (w Window) Empty() bool {
	return len(w.Reviews) == 0
}

// RenderTarget displays windows. Implementations own transitions and
// diffing; each call replaces everything previously shown. Render is called
// with the controller's lock held, so it must not call back into the
// controller.
type RenderTarget interface {
	Render(ctx context.Context, w Window) error
}

// Repository fetches the full review collection.
type Repository interface {
	List(ctx context.Context) ([]domain.Review, error)
}

// RenderFunc adapts a function to RenderTarget.
type RenderFunc func(ctx context.Context, w Window) error

// Render calls f(ctx, w).
func (f RenderFunc) Render(ctx context.Context, w Window) error {
	return f(ctx, w)
}
