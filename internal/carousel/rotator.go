package carousel

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// DefaultRotationInterval is the autorotation period.
const DefaultRotationInterval = 4 * time.Second

// ErrRotatorRunning is returned by Start when the loop is already active.
var ErrRotatorRunning = errors.New("rotator already running")

// Ticker is the single operation a Rotator drives. *Controller implements it.
type Ticker interface {
	Tick(ctx context.Context) Window
}

// Rotator calls Tick on a fixed interval until stopped.
type Rotator struct {
	ticker   Ticker
	interval time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRotator creates a stopped rotator. A non-positive interval falls back to
// DefaultRotationInterval.
func NewRotator(t Ticker, interval time.Duration, logger *slog.Logger) *Rotator {
	if interval <= 0 {
		interval = DefaultRotationInterval
	}
	return &Rotator{ticker: t, interval: interval, logger: logger}
}

// Start launches the rotation loop. The loop ends on Stop or when ctx is
// cancelled.
func (r *Rotator) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done != nil {
		select {
		case <-r.done:
		default:
			return ErrRotatorRunning
		}
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done

	go r.loop(loopCtx, done)

	r.logger.Info("rotator started", slog.Duration("interval", r.interval))
	return nil
}

// Stop cancels the loop and waits for it to exit. It is safe to call more
// than once and on a rotator that was never started.
func (r *Rotator) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel = nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	r.logger.Info("rotator stopped")
}

// Running reports whether the loop is active.
func (r *Rotator) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done == nil {
		return false
	}
	select {
	case <-r.done:
		return false
	default:
		return true
	}
}

// Interval returns the rotation period.
func (r *Rotator) Interval() time.Duration {
	return r.interval
}

func (r *Rotator) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.ticker.Tick(ctx)
		}
	}
}
