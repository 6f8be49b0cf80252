package solver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/riggen/pkg/domain"
)

// Landmark counts required by each solve.
const (
	PoseLandmarks = 33
	HandLandmarks = 21
)

// ErrUnsupportedRuntime is returned for a pose runtime other than mediapipe or tfjs.
var ErrUnsupportedRuntime = errors.New("unsupported runtime")

// Solver implements ports.Solver with native rig math.
// It holds no per-frame state and is safe for concurrent use.
type Solver struct {
	logger *slog.Logger
}

// Option defines a functional option for configuring the Solver.
type Option func(*Solver)

// WithLogger sets a structured logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Solver) {
		s.logger = logger
	}
}

// New creates a Solver.
func New(opts ...Option) *Solver {
	s := &Solver{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// SolvePose computes the body rig of one frame.
func (s *Solver) SolvePose(ctx context.Context, frame domain.Frame, screen domain.Frame, opts domain.PoseOptions) (domain.RigResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Runtime == "" {
		opts.Runtime = domain.RuntimeMediapipe
	}
	if opts.Runtime != domain.RuntimeMediapipe && opts.Runtime != domain.RuntimeTFJS {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedRuntime, opts.Runtime)
	}
	if !frame.Detected() {
		s.logger.Debug("pose not detected, skipping frame")
		return nil, nil
	}
	if err := checkCount("pose", frame, PoseLandmarks); err != nil {
		return nil, err
	}
	if screen != nil {
		if err := checkCount("screen pose", screen, PoseLandmarks); err != nil {
			return nil, err
		}
	}

	rig := solvePose(frame, screen, opts)
	return rig.Result()
}

// SolveHand computes the hand rig of one frame.
func (s *Solver) SolveHand(ctx context.Context, frame domain.Frame, side domain.Side) (domain.RigResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := side.Validate(); err != nil {
		return nil, err
	}
	if !frame.Detected() {
		s.logger.Debug("hand not detected, skipping frame", "side", side)
		return nil, nil
	}
	if err := checkCount("hand", frame, HandLandmarks); err != nil {
		return nil, err
	}

	return solveHand(frame, side).Result(), nil
}

func checkCount(part string, frame domain.Frame, want int) error {
	if len(frame) < want {
		return fmt.Errorf("%w: %s has %d landmarks, need %d", domain.ErrIncompleteFrame, part, len(frame), want)
	}
	return nil
}
