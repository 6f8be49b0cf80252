package riggen_test

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/riggen"
	"github.com/aretw0/riggen/internal/adapters"
	"github.com/aretw0/riggen/pkg/adapters/memory"
	"github.com/aretw0/riggen/pkg/domain"
	"github.com/aretw0/riggen/pkg/ports"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// taggedFrame returns a frame whose first landmark carries tag in X.
func taggedFrame(n int, tag float64) domain.Frame {
	frame := make(domain.Frame, n)
	frame[0].X = tag
	return frame
}

// taggedInput builds n aligned frames tagged with their index (pose), index+1000
// (left hand) and index+2000 (right hand).
func taggedInput(n int) domain.Input {
	in := domain.Input{
		Pose:      make(domain.Sequence, n),
		LeftHand:  make(domain.Sequence, n),
		RightHand: make(domain.Sequence, n),
	}
	for i := 0; i < n; i++ {
		in.Pose[i] = taggedFrame(33, float64(i))
		in.LeftHand[i] = taggedFrame(21, float64(i+1000))
		in.RightHand[i] = taggedFrame(21, float64(i+2000))
	}
	return in
}

// echoSolver returns the tag of the frame it was given, and nil for an
// undetected (empty) frame like the native solver does.
func echoSolver(jitter bool) ports.Solver {
	sleep := func() {
		if jitter {
			time.Sleep(time.Duration(rand.Intn(3)) * time.Millisecond)
		}
	}
	return ports.SolverFuncs{
		Pose: func(_ context.Context, frame, _ domain.Frame, _ domain.PoseOptions) (domain.RigResult, error) {
			sleep()
			if !frame.Detected() {
				return nil, nil
			}
			return domain.RigResult{"tag": frame[0].X}, nil
		},
		Hand: func(_ context.Context, frame domain.Frame, side domain.Side) (domain.RigResult, error) {
			sleep()
			if !frame.Detected() {
				return nil, nil
			}
			return domain.RigResult{"tag": frame[0].X, "side": string(side)}, nil
		},
	}
}

func TestConvert_LengthPreservation(t *testing.T) {
	for _, n := range []int{0, 1, 7} {
		conv := riggen.New(riggen.WithSolver(echoSolver(false)))

		out, err := conv.Convert(context.Background(), taggedInput(n))
		require.NoError(t, err)
		assert.Len(t, out, n)
	}
}

func TestConvert_OrderPreservation(t *testing.T) {
	const n = 40

	for _, workers := range []int{1, 4} {
		conv := riggen.New(
			riggen.WithSolver(echoSolver(workers > 1)),
			riggen.WithConcurrency(workers),
		)

		out, err := conv.Convert(context.Background(), taggedInput(n))
		require.NoError(t, err)
		require.Len(t, out, n)

		for i, rec := range out {
			assert.Equal(t, float64(i), rec.Pose["tag"], "pose tag at %d (workers=%d)", i, workers)
			assert.Equal(t, float64(i+1000), rec.HandLeft["tag"], "left tag at %d (workers=%d)", i, workers)
			assert.Equal(t, float64(i+2000), rec.HandRight["tag"], "right tag at %d (workers=%d)", i, workers)
			assert.Equal(t, "Left", rec.HandLeft["side"])
			assert.Equal(t, "Right", rec.HandRight["side"])
		}
	}
}

func TestConvert_ParallelMatchesSequential(t *testing.T) {
	in := taggedInput(25)

	seq, err := riggen.New(riggen.WithSolver(echoSolver(false))).Convert(context.Background(), in)
	require.NoError(t, err)
	par, err := riggen.New(riggen.WithSolver(echoSolver(true)), riggen.WithConcurrency(8)).Convert(context.Background(), in)
	require.NoError(t, err)

	if diff := cmp.Diff(seq, par); diff != "" {
		t.Errorf("parallel output differs (-seq +par):\n%s", diff)
	}
}

func TestConvert_StructuralShape(t *testing.T) {
	out, err := riggen.New(riggen.WithSolver(echoSolver(false))).Convert(context.Background(), taggedInput(3))
	require.NoError(t, err)

	data, err := json.Marshal(out)
	require.NoError(t, err)

	var records [][]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 3)

	keys := []string{"pose", "hand_left", "hand_right"}
	for i, rec := range records {
		require.Len(t, rec, 3, "record %d", i)
		for j, entry := range rec {
			assert.Len(t, entry, 1, "record %d entry %d", i, j)
			assert.Contains(t, entry, keys[j], "record %d entry %d", i, j)
		}
	}
}

func TestRun_ByteIdenticalReruns(t *testing.T) {
	dir := t.TempDir()
	loader, err := memory.NewLoaderFromJSON(map[string]string{
		"pose":  `[[{"x":0.1,"y":0.2,"z":0.3}],[{"x":1,"y":2,"z":3}]]`,
		"left":  `[[{"x":4,"y":0,"z":0}],[]]`,
		"right": `[[],[{"x":5,"y":0,"z":0}]]`,
	})
	require.NoError(t, err)

	conv := riggen.New(
		riggen.WithSolver(echoSolver(false)),
		riggen.WithLoader(loader),
		riggen.WithStore(adapters.NewFileStore(dir)),
	)
	job := riggen.Job{PosePath: "pose", LeftHandPath: "left", RightHandPath: "right", Output: "out.json"}
	outPath := filepath.Join(dir, "out.json")

	_, err = conv.Run(context.Background(), job)
	require.NoError(t, err)
	first, err := os.ReadFile(outPath)
	require.NoError(t, err)

	_, err = conv.Run(context.Background(), job)
	require.NoError(t, err)
	second, err := os.ReadFile(outPath)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, string(first), `"hand_right": null`)
	assert.Contains(t, string(first), `"hand_left": null`)
}

func TestConvert_LengthMismatch(t *testing.T) {
	in := taggedInput(5)
	in.LeftHand = in.LeftHand[:3]

	var calls atomic.Int32
	solver := ports.SolverFuncs{
		Pose: func(context.Context, domain.Frame, domain.Frame, domain.PoseOptions) (domain.RigResult, error) {
			calls.Add(1)
			return domain.RigResult{}, nil
		},
	}

	out, err := riggen.New(riggen.WithSolver(solver)).Convert(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrLengthMismatch)
	assert.Nil(t, out)
	assert.Zero(t, calls.Load(), "no frame may be solved before the alignment check")

	t.Run("Longer hands", func(t *testing.T) {
		in := taggedInput(2)
		in.RightHand = append(in.RightHand, taggedFrame(21, 9))
		_, err := riggen.New(riggen.WithSolver(solver)).Convert(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrLengthMismatch)
	})

	t.Run("Run writes nothing", func(t *testing.T) {
		loader := memory.NewLoader(map[string]domain.Sequence{
			"pose":  in.Pose,
			"left":  in.LeftHand,
			"right": in.RightHand,
		})
		store := memory.NewStore()
		conv := riggen.New(riggen.WithSolver(solver), riggen.WithLoader(loader), riggen.WithStore(store))

		_, err := conv.Run(context.Background(), riggen.Job{PosePath: "pose", LeftHandPath: "left", RightHandPath: "right", Output: "out"})
		assert.ErrorIs(t, err, domain.ErrLengthMismatch)

		names, err := store.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, names)
	})
}

func TestConvert_EndToEndExample(t *testing.T) {
	zero := map[string]any{"x": 0, "y": 0, "z": 0}
	wrist := map[string]any{"x": 1, "y": 0, "z": 0}
	solver := ports.SolverFuncs{
		Pose: func(context.Context, domain.Frame, domain.Frame, domain.PoseOptions) (domain.RigResult, error) {
			return domain.RigResult{"spine": zero}, nil
		},
		Hand: func(context.Context, domain.Frame, domain.Side) (domain.RigResult, error) {
			return domain.RigResult{"RightWrist": wrist}, nil
		},
	}

	in := domain.Input{
		Pose:      domain.Sequence{make(domain.Frame, 33)},
		LeftHand:  domain.Sequence{make(domain.Frame, 21)},
		RightHand: domain.Sequence{make(domain.Frame, 21)},
	}

	out, err := riggen.New(riggen.WithSolver(solver)).Convert(context.Background(), in)
	require.NoError(t, err)

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Equal(t,
		`[[{"pose":{"spine":{"x":0,"y":0,"z":0}}},{"hand_left":{"RightWrist":{"x":1,"y":0,"z":0}}},{"hand_right":{"RightWrist":{"x":1,"y":0,"z":0}}}]]`,
		string(data))
}

func TestConvert_SolverFailure(t *testing.T) {
	boom := errors.New("boom")
	solver := ports.SolverFuncs{
		Hand: func(_ context.Context, frame domain.Frame, side domain.Side) (domain.RigResult, error) {
			if side == domain.SideLeft && frame[0].X == 1002 {
				return nil, boom
			}
			return domain.RigResult{}, nil
		},
	}

	for _, workers := range []int{1, 3} {
		out, err := riggen.New(riggen.WithSolver(solver), riggen.WithConcurrency(workers)).
			Convert(context.Background(), taggedInput(6))

		require.Error(t, err)
		assert.Nil(t, out)
		assert.ErrorIs(t, err, domain.ErrSolverFailed)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "frame 2")
		assert.Contains(t, err.Error(), "hand_left")
	}
}

func TestConvert_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var solved atomic.Int32
	solver := ports.SolverFuncs{
		Pose: func(context.Context, domain.Frame, domain.Frame, domain.PoseOptions) (domain.RigResult, error) {
			if solved.Add(1) == 3 {
				cancel()
			}
			return domain.RigResult{}, nil
		},
	}

	out, err := riggen.New(riggen.WithSolver(solver)).Convert(ctx, taggedInput(10))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, out)
	assert.Equal(t, int32(3), solved.Load())
}

func TestConvert_SolverArguments(t *testing.T) {
	var mu sync.Mutex
	var gotOpts []domain.PoseOptions
	var screens []domain.Frame
	solver := ports.SolverFuncs{
		Pose: func(_ context.Context, frame, screen domain.Frame, opts domain.PoseOptions) (domain.RigResult, error) {
			mu.Lock()
			defer mu.Unlock()
			gotOpts = append(gotOpts, opts)
			screens = append(screens, screen)
			// Mutating the frame must not leak back into the input.
			frame[0].X = -1
			return domain.RigResult{}, nil
		},
	}

	in := taggedInput(2)

	t.Run("Defaults", func(t *testing.T) {
		_, err := riggen.New(riggen.WithSolver(solver)).Convert(context.Background(), in)
		require.NoError(t, err)

		for i, opts := range gotOpts {
			assert.Equal(t, domain.RuntimeMediapipe, opts.Runtime)
			assert.False(t, opts.EnableLegs)
			assert.Nil(t, screens[i])
		}
		assert.Equal(t, 0.0, in.Pose[0][0].X)
		assert.Equal(t, 1.0, in.Pose[1][0].X)
	})

	t.Run("Override", func(t *testing.T) {
		gotOpts = nil
		opts := domain.PoseOptions{Runtime: domain.RuntimeMediapipe, EnableLegs: true}
		_, err := riggen.New(riggen.WithSolver(solver), riggen.WithPoseOptions(opts)).Convert(context.Background(), in)
		require.NoError(t, err)

		require.Len(t, gotOpts, 2)
		assert.True(t, gotOpts[0].EnableLegs)
	})
}

func TestConvert_LifecycleHooks(t *testing.T) {
	var mu sync.Mutex
	var runIDs []string
	var frameStarts, frameEnds int
	var runEnd *domain.RunEvent

	hooks := domain.LifecycleHooks{
		OnRunStart: func(_ context.Context, e *domain.RunEvent) {
			runIDs = append(runIDs, e.RunID)
		},
		OnRunEnd: func(_ context.Context, e *domain.RunEvent) {
			runEnd = e
		},
		OnFrameStart: func(_ context.Context, e *domain.FrameEvent) {
			mu.Lock()
			defer mu.Unlock()
			frameStarts++
			runIDs = append(runIDs, e.RunID)
		},
		OnFrameEnd: func(_ context.Context, e *domain.FrameEvent) {
			mu.Lock()
			defer mu.Unlock()
			frameEnds++
			assert.Equal(t, 4, e.Total)
		},
	}

	conv := riggen.New(riggen.WithSolver(echoSolver(false)), riggen.WithLifecycleHooks(hooks), riggen.WithConcurrency(2))
	_, err := conv.Convert(context.Background(), taggedInput(4))
	require.NoError(t, err)

	assert.Equal(t, 4, frameStarts)
	assert.Equal(t, 4, frameEnds)
	require.NotNil(t, runEnd)
	assert.Equal(t, 4, runEnd.Frames)
	assert.NoError(t, runEnd.Err)
	require.NotEmpty(t, runIDs)
	for _, id := range runIDs {
		assert.Equal(t, runIDs[0], id)
	}
}

func TestRun_LoadErrors(t *testing.T) {
	loader := memory.NewLoader(map[string]domain.Sequence{"pose": taggedInput(1).Pose})
	conv := riggen.New(riggen.WithSolver(echoSolver(false)), riggen.WithLoader(loader), riggen.WithStore(memory.NewStore()))

	_, err := conv.Run(context.Background(), riggen.Job{PosePath: "pose", LeftHandPath: "missing", RightHandPath: "pose", Output: "out"})
	assert.ErrorIs(t, err, domain.ErrInputNotFound)
	assert.Contains(t, err.Error(), "hand_left")
}

func TestRun_OutputLock(t *testing.T) {
	ctx := context.Background()
	in := taggedInput(1)
	loader := memory.NewLoader(map[string]domain.Sequence{"p": in.Pose, "l": in.LeftHand, "r": in.RightHand})
	locker := memory.NewLocker()
	store := memory.NewStore()
	conv := riggen.New(
		riggen.WithSolver(echoSolver(false)),
		riggen.WithLoader(loader),
		riggen.WithStore(store),
		riggen.WithLocker(locker, time.Minute),
	)
	job := riggen.Job{PosePath: "p", LeftHandPath: "l", RightHandPath: "r", Output: "out"}

	unlock, err := locker.Lock(ctx, "out", time.Minute)
	require.NoError(t, err)

	short, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	_, err = conv.Run(short, job)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(ctx))

	out, err := conv.Run(ctx, job)
	require.NoError(t, err)
	assert.Len(t, out, 1)

	// The run released its lock.
	again, err := locker.Lock(ctx, "out", time.Minute)
	require.NoError(t, err)
	require.NoError(t, again(ctx))
}

func TestNew_NativeSolver(t *testing.T) {
	in := domain.Input{
		Pose:      domain.Sequence{make(domain.Frame, 33), {}},
		LeftHand:  domain.Sequence{{}, {}},
		RightHand: domain.Sequence{{}, {}},
	}

	out, err := riggen.New().Convert(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Contains(t, out[0].Pose, "RightUpperArm")
	assert.Contains(t, out[0].Pose, "Hips")
	assert.Nil(t, out[0].HandLeft, "undetected hand yields null")
	assert.Nil(t, out[1].Pose, "undetected pose yields null")

	_, err = json.Marshal(out)
	assert.NoError(t, err)
}

func TestDefaultJob(t *testing.T) {
	job := riggen.DefaultJob()
	assert.Equal(t, "pose3d.json", job.PosePath)
	assert.Equal(t, "hand_left3d.json", job.LeftHandPath)
	assert.Equal(t, "hand_right3d.json", job.RightHandPath)
	assert.Equal(t, "holistic_rigged_output.json", job.Output)
}
