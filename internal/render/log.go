package render

import (
	"context"
	"log/slog"

	"github.com/utafrali/reviewcarousel/internal/carousel"
	"github.com/utafrali/reviewcarousel/pkg/logger"
)

// Log records each window as a structured log entry.
type Log struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLog creates a log target emitting at level.
func NewLog(l *slog.Logger, level slog.Level) *Log {
	return &Log{logger: l, level: level}
}

func (t *Log) Render(ctx context.Context, w carousel.Window) error {
	names := make([]string, len(w.Reviews))
	for i, r := range w.Reviews {
		names[i] = r.Name
	}

	logger.WithContext(ctx, t.logger).LogAttrs(ctx, t.level, "carousel rendered",
		slog.String("direction", w.Direction.String()),
		slog.Int("start", w.Start),
		slog.Int("total", w.Total),
		slog.Any("reviewers", names),
		slog.Bool("empty", w.Empty()),
	)
	return nil
}
