package db

import (
	"context"
	"log/slog"
)

// FailureSink receives structured records about storage operations that
// failed after exhausting their retry budget. Sinks are best-effort: a
// sink error must never mask the storage error that triggered the record.
type FailureSink interface {
	Log(ctx context.Context, category string, message string, cause error, details map[string]any) error
}

type slogFailureSink struct {
	logger *slog.Logger
}

// NewSlogFailureSink returns a FailureSink that writes error-level slog
// records. A nil logger falls back to slog.Default.
func NewSlogFailureSink(logger *slog.Logger) FailureSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogFailureSink{logger: logger}
}

func (sink *slogFailureSink) Log(ctx context.Context, category string, message string, cause error, details map[string]any) error {
	attrs := make([]any, 0, 2*len(details)+4)
	attrs = append(attrs, "category", category, "error", cause)
	for key, value := range details {
		attrs = append(attrs, key, value)
	}
	sink.logger.ErrorContext(ctx, message, attrs...)
	return nil
}
