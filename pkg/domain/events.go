package domain

import (
	"context"
	"time"
)

// FrameEvent describes the processing of one frame.
type FrameEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	RunID     string        `json:"run_id,omitempty"`
	Index     int           `json:"index"`
	Total     int           `json:"total"`
	Duration  time.Duration `json:"duration,omitempty"`
	Err       error         `json:"-"`
}

// RunEvent describes a whole conversion run.
type RunEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	RunID     string        `json:"run_id,omitempty"`
	Frames    int           `json:"frames"`
	Duration  time.Duration `json:"duration,omitempty"`
	Err       error         `json:"-"`
}

// LifecycleHooks defines callbacks for converter observability.
// Any nil hook is skipped. Hooks may be called from several goroutines when
// frames are solved in parallel.
type LifecycleHooks struct {
	OnRunStart   func(context.Context, *RunEvent)
	OnRunEnd     func(context.Context, *RunEvent)
	OnFrameStart func(context.Context, *FrameEvent)
	OnFrameEnd   func(context.Context, *FrameEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRunStart:   chainRun(h.OnRunStart, other.OnRunStart),
		OnRunEnd:     chainRun(h.OnRunEnd, other.OnRunEnd),
		OnFrameStart: chainFrame(h.OnFrameStart, other.OnFrameStart),
		OnFrameEnd:   chainFrame(h.OnFrameEnd, other.OnFrameEnd),
	}
}

func chainRun(a, b func(context.Context, *RunEvent)) func(context.Context, *RunEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *RunEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainFrame(a, b func(context.Context, *FrameEvent)) func(context.Context, *FrameEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *FrameEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
