package render

import (
	"context"
	"errors"

	"github.com/utafrali/reviewcarousel/internal/carousel"
)

// Multi fans each window out to every target in order. All targets are
// rendered even if one fails; the failures are joined.
type Multi []carousel.RenderTarget

func (m Multi) Render(ctx context.Context, w carousel.Window) error {
	var errs []error
	for _, t := range m {
		if err := t.Render(ctx, w); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
