package cli

import (
	"context"

	"github.com/aretw0/riggen"
	"github.com/aretw0/riggen/internal/presentation/tui"
	"github.com/aretw0/riggen/pkg/domain"
	"github.com/aretw0/riggen/pkg/solver"
)

// Report summarizes the inputs of a job without solving them.
type Report struct {
	Frames int
	// Detected counts the non-empty frames per part.
	Detected map[string]int
	// Short counts the non-empty frames with fewer landmarks than the solver needs.
	Short map[string]int
}

// Inspect loads the job inputs, checks their alignment and counts frames.
func Inspect(ctx context.Context, job riggen.Job) (Report, error) {
	in, err := riggen.New().Load(ctx, job)
	if err != nil {
		return Report{}, err
	}

	r := Report{
		Frames:   in.Len(),
		Detected: map[string]int{},
		Short:    map[string]int{},
	}
	count := func(part string, seq domain.Sequence, want int) {
		for _, f := range seq {
			if !f.Detected() {
				continue
			}
			r.Detected[part]++
			if len(f) < want {
				r.Short[part]++
			}
		}
	}
	count(domain.KeyPose, in.Pose, solver.PoseLandmarks)
	count(domain.KeyHandLeft, in.LeftHand, solver.HandLandmarks)
	count(domain.KeyHandRight, in.RightHand, solver.HandLandmarks)
	return r, nil
}

// RunValidate prints the report of Inspect. Frames with too few landmarks are
// reported as a warning; the converter would reject them.
func RunValidate(ctx context.Context, opts Options) error {
	r, err := Inspect(ctx, opts.Config.Job())
	if err != nil {
		return err
	}

	p := tui.NewPrinter(opts.Stdout)
	p.Success("Inputs are aligned: %d frames (pose %d, hand_left %d, hand_right %d detected)",
		r.Frames, r.Detected[domain.KeyPose], r.Detected[domain.KeyHandLeft], r.Detected[domain.KeyHandRight])
	for _, part := range []string{domain.KeyPose, domain.KeyHandLeft, domain.KeyHandRight} {
		if n := r.Short[part]; n > 0 {
			p.Warn("%s: %d frames have too few landmarks", part, n)
		}
	}
	return nil
}
