// Package render provides carousel.RenderTarget implementations.
package render

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/utafrali/reviewcarousel/internal/carousel"
	"github.com/utafrali/reviewcarousel/internal/domain"
)

// Placeholder is written for the empty window.
const Placeholder = "No reviews yet. Be the first to leave one!"

// Text writes each window as plain-text cards.
type Text struct {
	mu sync.Mutex
	w  io.Writer
}

// NewText creates a text target writing to w.
func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

// Render writes w in full. Each call is a complete replacement of what was
// previously shown.
func (t *Text) Render(_ context.Context, w carousel.Window) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	bw := bufio.NewWriter(t.w)
	writeWindow(bw, w)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write window: %w", err)
	}
	return nil
}

func writeWindow(w io.Writer, win carousel.Window) {
	if win.Empty() {
		fmt.Fprintf(w, "%s\n\n", Placeholder)
		return
	}

	fmt.Fprintf(w, "%s %d/%d\n", arrow(win.Direction), win.Start+1, win.Total)
	for _, r := range win.Reviews {
		writeCard(w, r)
	}
	fmt.Fprintln(w)
}

func writeCard(w io.Writer, r domain.Review) {
	fmt.Fprintf(w, "  %q\n", strings.TrimSpace(r.Review))
	fmt.Fprintf(w, "    - %s  %s\n", r.Name, domain.Stars(r.Rating))
	if r.HasImage() {
		fmt.Fprintf(w, "    image: %s\n", strings.TrimSpace(r.ImageURL))
	}
}

func arrow(d carousel.Direction) string {
	if d == carousel.Backward {
		return "←"
	}
	return "→"
}
