package log

import (
	"context"
	"fmt"
	"log/slog"
)

// SlogAdapter writes extraction events to an slog.Logger.
// Failed events are logged at Warn level, everything else at Debug.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("run_id", event.RunID),
		slog.Int("record", event.Record),
		slog.String("category", event.Category.String()),
		slog.String("field", event.Field),
	}

	if event.Schema != "" {
		attrs = append(attrs, slog.String("schema", event.Schema))
	}
	if event.Path != "" {
		attrs = append(attrs, slog.String("path", event.Path))
	}
	if event.Type != "" {
		attrs = append(attrs, slog.String("type", event.Type))
	}
	if event.Value != nil {
		attrs = append(attrs, slog.String("value", fmt.Sprint(event.Value)))
	}

	level := slog.LevelDebug
	if event.Category == CategoryFailed {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error", event.Error))
	}

	a.logger.LogAttrs(context.Background(), level, "field", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
