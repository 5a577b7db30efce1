package carousel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/utafrali/reviewcarousel/internal/domain"
)

// ErrInvalidReview is returned by Load when the repository yields a review
// that breaks the rating invariant. The whole batch is rejected.
var ErrInvalidReview = errors.New("invalid review")

// Config holds the fixed settings of a controller.
type Config struct {
	// Name labels logs and metrics; it distinguishes carousels on one page.
	Name string
	// VisibleCount is the size of the window. Values below 1 are treated as 1.
	VisibleCount int
	// AllowRepeat fills the window to VisibleCount even when fewer reviews
	// exist, wrapping around and repeating entries. When false the window is
	// clamped to min(VisibleCount, len(reviews)).
	AllowRepeat bool
}

// DefaultConfig returns a three-card carousel.
func DefaultConfig() Config {
	return Config{Name: "reviews", VisibleCount: 3}
}

// Controller owns the carousel state. All methods are safe for concurrent
// use; state changes are serialized by an internal mutex.
type Controller struct {
	repo   Repository
	target RenderTarget
	cfg    Config
	logger *slog.Logger

	mu        sync.Mutex
	reviews   []domain.Review
	index     int
	direction Direction
	handlers  map[Event][]Handler
}

// NewController creates an empty controller. Nothing is fetched until Load.
func NewController(repo Repository, target RenderTarget, cfg Config, logger *slog.Logger) *Controller {
	if cfg.VisibleCount < 1 {
		cfg.VisibleCount = 1
	}
	if cfg.Name == "" {
		cfg.Name = DefaultConfig().Name
	}
	reviewsGauge.WithLabelValues(cfg.Name).Set(0)

	return &Controller{
		repo:     repo,
		target:   target,
		cfg:      cfg,
		logger:   logger.With(slog.String("carousel", cfg.Name)),
		handlers: make(map[Event][]Handler),
	}
}

// Load fetches the full collection and, on success, replaces the reviews,
// resets the index to 0 and renders forward. On any failure the previous
// state is kept and the error is logged and returned; nothing is retried.
//
// The fetch runs without holding the lock, so rotation continues against the
// previous reviews while a load is in flight.
func (c *Controller) Load(ctx context.Context) error {
	reviews, err := c.repo.List(ctx)
	if err == nil {
		err = validateAll(reviews)
	}
	if err != nil {
		loadsTotal.WithLabelValues(c.cfg.Name, "failure").Inc()
		c.logger.ErrorContext(ctx, "failed to load reviews", slog.String("error", err.Error()))

		c.mu.Lock()
		current := c.windowLocked(c.direction)
		handlers := c.handlersLocked(EventLoadFailed)
		c.mu.Unlock()

		notify(ctx, handlers, Notice{Event: EventLoadFailed, Window: current, Err: err})
		return fmt.Errorf("load reviews: %w", err)
	}

	c.mu.Lock()
	c.reviews = slices.Clone(reviews)
	c.index = 0
	w := c.renderLocked(ctx, Forward)
	handlers := c.handlersLocked(EventLoadComplete)
	c.mu.Unlock()

	loadsTotal.WithLabelValues(c.cfg.Name, "success").Inc()
	reviewsGauge.WithLabelValues(c.cfg.Name).Set(float64(len(reviews)))
	c.logger.InfoContext(ctx, "reviews loaded", slog.Int("count", len(reviews)))

	notify(ctx, handlers, Notice{Event: EventLoadComplete, Window: w})
	return nil
}

// Advance moves one review forward and renders. It is a no-op when empty.
func (c *Controller) Advance(ctx context.Context) Window {
	return c.rotate(ctx, 1, Forward, EventUserAdvance)
}

// Retreat moves one review backward and renders. It is a no-op when empty.
func (c *Controller) Retreat(ctx context.Context) Window {
	return c.rotate(ctx, -1, Backward, EventUserRetreat)
}

// Tick advances like Advance but is reported as a timer event. The Rotator
// calls it.
func (c *Controller) Tick(ctx context.Context) Window {
	return c.rotate(ctx, 1, Forward, EventTimerTick)
}

// Render emits the current window tagged with dir. With no reviews it emits
// the empty placeholder window. Repeated calls with unchanged state emit the
// same window.
func (c *Controller) Render(ctx context.Context, dir Direction) Window {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderLocked(ctx, dir)
}

// Window returns the current window without emitting it.
func (c *Controller) Window() Window {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.windowLocked(c.direction)
}

// Index returns the current rotation index.
func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Len returns the number of loaded reviews.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.reviews)
}

// State reports Empty or Populated.
func (c *Controller) State() State {
	if c.Len() == 0 {
		return Empty
	}
	return Populated
}

// Name returns the configured carousel name.
func (c *Controller) Name() string {
	return c.cfg.Name
}

func (c *Controller) rotate(ctx context.Context, step int, dir Direction, ev Event) Window {
	c.mu.Lock()
	n := len(c.reviews)
	if n == 0 {
		w := c.windowLocked(c.direction)
		c.mu.Unlock()
		return w
	}
	c.index = ((c.index+step)%n + n) % n
	w := c.renderLocked(ctx, dir)
	handlers := c.handlersLocked(ev)
	c.mu.Unlock()

	rotationsTotal.WithLabelValues(c.cfg.Name, string(ev)).Inc()
	notify(ctx, handlers, Notice{Event: ev, Window: w})
	return w
}

// renderLocked records dir and emits the window. Target errors are logged
// and never alter state.
func (c *Controller) renderLocked(ctx context.Context, dir Direction) Window {
	c.direction = dir
	w := c.windowLocked(dir)
	if c.target == nil {
		return w
	}
	if err := c.target.Render(ctx, w); err != nil {
		renderErrorsTotal.WithLabelValues(c.cfg.Name).Inc()
		c.logger.WarnContext(ctx, "render target failed",
			slog.String("error", err.Error()),
			slog.String("direction", dir.String()),
		)
	}
	return w
}

func (c *Controller) windowLocked(dir Direction) Window {
	return computeWindow(c.reviews, c.index, c.cfg.VisibleCount, c.cfg.AllowRepeat, dir)
}

// computeWindow takes size reviews starting at index, wrapping modulo the
// list length.
func computeWindow(reviews []domain.Review, index, visible int, repeat bool, dir Direction) Window {
	n := len(reviews)
	if n == 0 {
		return Window{Direction: dir}
	}

	size := visible
	if !repeat {
		size = min(visible, n)
	}

	items := make([]domain.Review, size)
	for i := range size {
		items[i] = reviews[(index+i)%n]
	}
	return Window{Reviews: items, Direction: dir, Start: index, Total: n}
}

func validateAll(reviews []domain.Review) error {
	for i, r := range reviews {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("%w at position %d: %v", ErrInvalidReview, i, err)
		}
	}
	return nil
}
