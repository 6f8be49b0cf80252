package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/riggen/pkg/domain"
	"github.com/aretw0/riggen/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.ResultStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every store call at debug level, with its duration.
// Failures are logged at warn level.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.ResultStore) ports.ResultStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) log(op, name string, start time.Time, err error, attrs ...any) {
	attrs = append(attrs, "op", op, "name", name, "duration", time.Since(start))
	if err != nil {
		m.logger.Warn("Store call failed", append(attrs, "error", err)...)
		return
	}
	m.logger.Debug("Store call", attrs...)
}

func (m *loggingMiddleware) Save(ctx context.Context, name string, seq domain.OutputSequence) error {
	start := time.Now()
	err := m.next.Save(ctx, name, seq)
	m.log("save", name, start, err, "frames", len(seq))
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, name string) (domain.OutputSequence, error) {
	start := time.Now()
	seq, err := m.next.Load(ctx, name)
	m.log("load", name, start, err, "frames", len(seq))
	return seq, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := m.next.Delete(ctx, name)
	m.log("delete", name, start, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	names, err := m.next.List(ctx)
	m.log("list", "", start, err, "count", len(names))
	return names, err
}
