package tui

import (
	"context"
	"io"
	"sync"

	"github.com/aretw0/riggen/pkg/domain"
	"github.com/cheggaaa/pb/v3"
)

const progressTemplate = `{{ string . "prefix" }} {{counters . "%s/%s" "%s/?"}} {{bar . }} {{percent . "%.01f%%" "?"}} {{etime . "%s elapsed"}} {{rtime . "%s remain" "%s total" "???"}}`

// Progress renders a frame counter bar while a conversion runs.
type Progress struct {
	w   io.Writer
	mu  sync.Mutex
	bar *pb.ProgressBar
}

// NewProgress creates a progress bar writing to w.
func NewProgress(w io.Writer) *Progress {
	return &Progress{w: w}
}

// Hooks returns lifecycle hooks that drive the bar.
func (p *Progress) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			p.mu.Lock()
			defer p.mu.Unlock()
			p.bar = pb.ProgressBarTemplate(progressTemplate).New(e.Frames)
			p.bar.SetWriter(p.w)
			p.bar.Set("prefix", "Solving")
			p.bar.Start()
		},
		OnFrameEnd: func(ctx context.Context, e *domain.FrameEvent) {
			if bar := p.current(); bar != nil && e.Err == nil {
				bar.Increment()
			}
		},
		OnRunEnd: func(ctx context.Context, e *domain.RunEvent) {
			if bar := p.current(); bar != nil {
				bar.Finish()
			}
		},
	}
}

// Done returns how many frames the bar has counted.
func (p *Progress) Done() int64 {
	if bar := p.current(); bar != nil {
		return bar.Current()
	}
	return 0
}

func (p *Progress) current() *pb.ProgressBar {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bar
}
