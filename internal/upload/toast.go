package upload

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ToastDuration is how long a toast stays visible.
const ToastDuration = 3 * time.Second

// Kind classifies a toast.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Toast is a transient user notification.
type Toast struct {
	Message string
	Kind    Kind
}

// Notifier shows toasts to the user.
type Notifier interface {
	Notify(ctx context.Context, t Toast)
}

// LogNotifier writes toasts to a structured logger.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier that logs success toasts at info and
// error toasts at warn.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, t Toast) {
	level := slog.LevelInfo
	if t.Kind == KindError {
		level = slog.LevelWarn
	}
	n.logger.Log(ctx, level, "toast", slog.String("kind", string(t.Kind)), slog.String("message", t.Message))
}

// Toaster keeps the most recent toast visible for ToastDuration. A new toast
// replaces the current one and restarts its visibility.
type Toaster struct {
	mu      sync.Mutex
	current Toast
	shownAt time.Time
	visible time.Duration
	now     func() time.Time
	next    Notifier
}

// NewToaster creates a toaster. next, if non-nil, also receives every toast.
func NewToaster(next Notifier) *Toaster {
	return &Toaster{visible: ToastDuration, now: time.Now, next: next}
}

func (t *Toaster) Notify(ctx context.Context, toast Toast) {
	t.mu.Lock()
	t.current = toast
	t.shownAt = t.now()
	t.mu.Unlock()

	if t.next != nil {
		t.next.Notify(ctx, toast)
	}
}

// Current returns the visible toast, if any.
func (t *Toaster) Current() (Toast, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.shownAt.IsZero() || t.now().Sub(t.shownAt) >= t.visible {
		return Toast{}, false
	}
	return t.current, true
}
