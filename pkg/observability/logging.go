package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/riggen/pkg/domain"
)

// LogHooks returns lifecycle hooks that trace frames at debug level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnFrameStart: func(ctx context.Context, e *domain.FrameEvent) {
			logger.Debug("Frame Start", "run_id", e.RunID, "frame", e.Index, "total", e.Total)
		},
		OnFrameEnd: func(ctx context.Context, e *domain.FrameEvent) {
			if e.Err != nil {
				logger.Debug("Frame Failed", "run_id", e.RunID, "frame", e.Index, "err", e.Err)
				return
			}
			logger.Debug("Frame Solved", "run_id", e.RunID, "frame", e.Index, "duration", e.Duration)
		},
	}
}
