package riggen

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/riggen/internal/adapters"
	"github.com/aretw0/riggen/pkg/domain"
	"github.com/aretw0/riggen/pkg/ports"
	"github.com/aretw0/riggen/pkg/solver"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Default file names used by the original extraction pipeline.
const (
	DefaultPosePath      = "pose3d.json"
	DefaultLeftHandPath  = "hand_left3d.json"
	DefaultRightHandPath = "hand_right3d.json"
	DefaultOutputPath    = "holistic_rigged_output.json"
)

const defaultLockTTL = 5 * time.Minute

// Converter turns frame-aligned landmark sequences into rig results.
// It is the high-level entry point of the library.
type Converter struct {
	solver      ports.Solver
	loader      ports.SequenceLoader
	store       ports.ResultStore
	locker      ports.DistributedLocker
	lockTTL     time.Duration
	poseOpts    domain.PoseOptions
	concurrency int
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
}

// Option defines a functional option for configuring the Converter.
type Option func(*Converter)

// WithSolver injects the solver. Defaults to the native solver.
func WithSolver(s ports.Solver) Option {
	return func(c *Converter) {
		c.solver = s
	}
}

// WithLoader injects the landmark source. Defaults to reading JSON files.
func WithLoader(l ports.SequenceLoader) Option {
	return func(c *Converter) {
		c.loader = l
	}
}

// WithStore injects the result destination. Defaults to writing JSON files.
func WithStore(s ports.ResultStore) Option {
	return func(c *Converter) {
		c.store = s
	}
}

// WithLocker makes Run hold a lock on the output name for the whole run,
// so concurrent runs targeting the same output are serialized.
func WithLocker(l ports.DistributedLocker, ttl time.Duration) Option {
	return func(c *Converter) {
		c.locker = l
		c.lockTTL = ttl
	}
}

// WithPoseOptions overrides the pose solve options (default: mediapipe, legs disabled).
func WithPoseOptions(opts domain.PoseOptions) Option {
	return func(c *Converter) {
		c.poseOpts = opts
	}
}

// WithConcurrency sets how many frames may be solved at once.
// Values below 2 keep the strictly sequential, in-order behavior.
func WithConcurrency(n int) Option {
	return func(c *Converter) {
		c.concurrency = n
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Converter) {
		c.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// New creates a Converter. Unset collaborators fall back to the native solver
// and the file adapters rooted at the working directory.
func New(opts ...Option) *Converter {
	c := &Converter{
		poseOpts:    domain.DefaultPoseOptions(),
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.solver == nil {
		c.solver = solver.New(solver.WithLogger(c.logger))
	}
	if c.loader == nil {
		c.loader = adapters.NewFileLoader("")
	}
	if c.store == nil {
		c.store = adapters.NewFileStore("")
	}
	if c.concurrency < 1 {
		c.concurrency = 1
	}
	if c.lockTTL <= 0 {
		c.lockTTL = defaultLockTTL
	}
	return c
}

// Job names the three landmark inputs and the output of a run.
type Job struct {
	PosePath      string `json:"pose" yaml:"pose"`
	LeftHandPath  string `json:"hand_left" yaml:"hand_left"`
	RightHandPath string `json:"hand_right" yaml:"hand_right"`
	Output        string `json:"output" yaml:"output"`
}

// DefaultJob returns the job using the original pipeline's file names.
func DefaultJob() Job {
	return Job{
		PosePath:      DefaultPosePath,
		LeftHandPath:  DefaultLeftHandPath,
		RightHandPath: DefaultRightHandPath,
		Output:        DefaultOutputPath,
	}
}

// CheckAlignment returns ErrLengthMismatch unless all three sequences have the same frame count.
func CheckAlignment(in domain.Input) error {
	n := len(in.Pose)
	if len(in.LeftHand) != n || len(in.RightHand) != n {
		return fmt.Errorf("%w: pose has %d frames, left hand %d, right hand %d",
			domain.ErrLengthMismatch, n, len(in.LeftHand), len(in.RightHand))
	}
	return nil
}

// Load reads the three landmark sequences of a job and checks they are aligned.
// Nothing is solved.
func (c *Converter) Load(ctx context.Context, job Job) (domain.Input, error) {
	var in domain.Input
	parts := []struct {
		name string
		path string
		dst  *domain.Sequence
	}{
		{domain.KeyPose, job.PosePath, &in.Pose},
		{domain.KeyHandLeft, job.LeftHandPath, &in.LeftHand},
		{domain.KeyHandRight, job.RightHandPath, &in.RightHand},
	}

	for _, p := range parts {
		seq, err := c.loader.Load(ctx, p.path)
		if err != nil {
			return domain.Input{}, fmt.Errorf("failed to load %s landmarks: %w", p.name, err)
		}
		*p.dst = seq
	}

	if err := CheckAlignment(in); err != nil {
		return domain.Input{}, err
	}
	return in, nil
}

// Run loads the job inputs, converts every frame and saves the result once at the end.
// Any failure aborts the run before anything is written.
func (c *Converter) Run(ctx context.Context, job Job) (domain.OutputSequence, error) {
	if c.locker != nil {
		unlock, err := c.locker.Lock(ctx, job.Output, c.lockTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to lock output %s: %w", job.Output, err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				c.logger.Warn("Failed to release output lock", "output", job.Output, "error", err)
			}
		}()
	}

	in, err := c.Load(ctx, job)
	if err != nil {
		return nil, err
	}

	out, err := c.Convert(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := c.store.Save(ctx, job.Output, out); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", job.Output, err)
	}
	c.logger.Info("Output saved", "output", job.Output, "frames", len(out))
	return out, nil
}

// Convert solves every frame of the input. Record i of the result is derived
// from frame i of the three sequences only.
func (c *Converter) Convert(ctx context.Context, in domain.Input) (domain.OutputSequence, error) {
	if err := CheckAlignment(in); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	total := in.Len()
	logger := c.logger.With("run_id", runID)
	start := time.Now()

	if c.hooks.OnRunStart != nil {
		c.hooks.OnRunStart(ctx, &domain.RunEvent{Timestamp: start, RunID: runID, Frames: total})
	}
	logger.Info("Conversion started", "frames", total, "workers", c.concurrency)

	out := make(domain.OutputSequence, total)
	var err error
	if c.concurrency <= 1 {
		err = c.convertSequential(ctx, runID, in, out)
	} else {
		err = c.convertParallel(ctx, runID, in, out)
	}

	if c.hooks.OnRunEnd != nil {
		c.hooks.OnRunEnd(ctx, &domain.RunEvent{
			Timestamp: time.Now(),
			RunID:     runID,
			Frames:    total,
			Duration:  time.Since(start),
			Err:       err,
		})
	}

	if err != nil {
		logger.Error("Conversion failed", "error", err)
		return nil, err
	}
	logger.Info("Conversion finished", "frames", total, "duration", time.Since(start))
	return out, nil
}

func (c *Converter) convertSequential(ctx context.Context, runID string, in domain.Input, out domain.OutputSequence) error {
	for i := range out {
		rec, err := c.convertFrame(ctx, runID, in, i)
		if err != nil {
			return err
		}
		out[i] = rec
	}
	return nil
}

// convertParallel solves frames on a bounded worker group. Each worker writes
// only its own slot, so the output keeps frame order.
func (c *Converter) convertParallel(ctx context.Context, runID string, in domain.Input, out domain.OutputSequence) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i := range out {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			rec, err := c.convertFrame(gctx, runID, in, i)
			if err != nil {
				return err
			}
			out[i] = rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (c *Converter) convertFrame(ctx context.Context, runID string, in domain.Input, i int) (domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return domain.Record{}, err
	}

	total := in.Len()
	start := time.Now()
	if c.hooks.OnFrameStart != nil {
		c.hooks.OnFrameStart(ctx, &domain.FrameEvent{Timestamp: start, RunID: runID, Index: i, Total: total})
	}

	rec, err := c.solveFrame(ctx, i, in.Pose[i].Clone(), in.LeftHand[i].Clone(), in.RightHand[i].Clone())

	if c.hooks.OnFrameEnd != nil {
		c.hooks.OnFrameEnd(ctx, &domain.FrameEvent{
			Timestamp: time.Now(),
			RunID:     runID,
			Index:     i,
			Total:     total,
			Duration:  time.Since(start),
			Err:       err,
		})
	}
	return rec, err
}

func (c *Converter) solveFrame(ctx context.Context, i int, pose, left, right domain.Frame) (domain.Record, error) {
	poseRig, err := c.solver.SolvePose(ctx, pose, nil, c.poseOpts)
	if err != nil {
		return domain.Record{}, frameError(i, domain.KeyPose, err)
	}

	leftRig, err := c.solver.SolveHand(ctx, left, domain.SideLeft)
	if err != nil {
		return domain.Record{}, frameError(i, domain.KeyHandLeft, err)
	}

	rightRig, err := c.solver.SolveHand(ctx, right, domain.SideRight)
	if err != nil {
		return domain.Record{}, frameError(i, domain.KeyHandRight, err)
	}

	return domain.Record{Pose: poseRig, HandLeft: leftRig, HandRight: rightRig}, nil
}

func frameError(i int, part string, err error) error {
	return fmt.Errorf("%w: frame %d (%s): %w", domain.ErrSolverFailed, i, part, err)
}
