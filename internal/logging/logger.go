package logging

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// NewWithWriter creates the application logger writing to w.
// It standardizes common keys (e.g., "error" -> "err").
func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WithRequestID tags every record with a fresh request_id, for server-side runs
// where several conversions interleave in one log.
func WithRequestID(logger *slog.Logger) (*slog.Logger, string) {
	id := uuid.NewString()
	return logger.With("request_id", id), id
}
