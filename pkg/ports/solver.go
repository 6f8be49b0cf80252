package ports

import (
	"context"

	"github.com/aretw0/riggen/pkg/domain"
)

// Solver derives bone rotations from landmarks.
// Implementations must be safe for concurrent use and must not retain the frames.
type Solver interface {
	// SolvePose computes the body rig for one frame of world landmarks.
	// screen holds the matching screen-space landmarks; nil means derive them from frame.
	SolvePose(ctx context.Context, frame domain.Frame, screen domain.Frame, opts domain.PoseOptions) (domain.RigResult, error)

	// SolveHand computes the hand rig for one frame of hand landmarks.
	SolveHand(ctx context.Context, frame domain.Frame, side domain.Side) (domain.RigResult, error)
}

// SolverFuncs adapts plain functions to the Solver interface.
// A nil function returns an empty result.
type SolverFuncs struct {
	Pose func(ctx context.Context, frame domain.Frame, screen domain.Frame, opts domain.PoseOptions) (domain.RigResult, error)
	Hand func(ctx context.Context, frame domain.Frame, side domain.Side) (domain.RigResult, error)
}

// SolvePose implements Solver.
func (s SolverFuncs) SolvePose(ctx context.Context, frame domain.Frame, screen domain.Frame, opts domain.PoseOptions) (domain.RigResult, error) {
	if s.Pose == nil {
		return domain.RigResult{}, nil
	}
	return s.Pose(ctx, frame, screen, opts)
}

// SolveHand implements Solver.
func (s SolverFuncs) SolveHand(ctx context.Context, frame domain.Frame, side domain.Side) (domain.RigResult, error) {
	if s.Hand == nil {
		return domain.RigResult{}, nil
	}
	return s.Hand(ctx, frame, side)
}
