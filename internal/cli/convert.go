package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/riggen"
	"github.com/aretw0/riggen/internal/adapters"
	"github.com/aretw0/riggen/internal/adapters/redis"
	"github.com/aretw0/riggen/internal/config"
	"github.com/aretw0/riggen/internal/presentation/tui"
	"github.com/aretw0/riggen/pkg/domain"
	"github.com/aretw0/riggen/pkg/observability"
	"github.com/aretw0/riggen/pkg/persistence/middleware"
	"github.com/aretw0/riggen/pkg/ports"
)

// lockTTL bounds how long a crashed run can keep an output locked.
const lockTTL = 10 * time.Minute

// Options carries the resolved settings and the command's output streams.
type Options struct {
	Config config.Config
	Stdout io.Writer
	Stderr io.Writer
}

// RunConvert converts the configured inputs and writes the output once,
// then prints "Conversion complete: <out>".
func RunConvert(ctx context.Context, opts Options) error {
	cfg := opts.Config
	logger := createLogger(cfg.Debug, opts.Stderr)

	backend, err := openBackend(cfg, logger)
	if err != nil {
		return err
	}
	defer backend.close()
	if cfg.Debug {
		backend.store = middleware.Chain(backend.store, middleware.NewLoggingMiddleware(logger))
	}

	hooks := domain.LifecycleHooks{}
	if cfg.Debug {
		hooks = hooks.Merge(observability.LogHooks(logger))
	}
	if cfg.Progress {
		hooks = hooks.Merge(tui.NewProgress(opts.Stderr).Hooks())
	}

	conv := riggen.New(append(backend.options(),
		riggen.WithLogger(logger),
		riggen.WithPoseOptions(cfg.PoseOptions()),
		riggen.WithConcurrency(cfg.Workers),
		riggen.WithLifecycleHooks(hooks),
	)...)

	if _, err := conv.Run(ctx, cfg.Job()); err != nil {
		return err
	}

	tui.NewPrinter(opts.Stdout).Success("Conversion complete: %s", backend.target(cfg.Output))
	return nil
}

// backend is the result store selected by the settings, plus its locker.
type backend struct {
	store  ports.ResultStore
	locker ports.DistributedLocker
	close  func()
	// target names where an output ends up.
	target func(name string) string
}

func (b backend) options() []riggen.Option {
	opts := []riggen.Option{riggen.WithStore(b.store)}
	if b.locker != nil {
		opts = append(opts, riggen.WithLocker(b.locker, lockTTL))
	}
	return opts
}

// openBackend returns the Redis store when a URL is configured, else the file store.
func openBackend(cfg config.Config, logger *slog.Logger) (backend, error) {
	if cfg.RedisURL == "" {
		store := adapters.NewFileStore("")
		return backend{store: store, close: func() {}, target: store.Path}, nil
	}

	ttl, err := cfg.TTL()
	if err != nil {
		return backend{}, err
	}
	store, err := redis.New(cfg.RedisURL, redis.WithTTL(ttl))
	if err != nil {
		return backend{}, fmt.Errorf("failed to open redis store: %w", err)
	}
	logger.Debug("Using redis result store", "ttl", ttl)

	return backend{
		store:  store,
		locker: redis.NewLocker(store.Client(), "riggen:"),
		target: func(name string) string { return name },
		close: func() {
			if err := store.Close(); err != nil {
				logger.Warn("Failed to close redis client", "error", err)
			}
		},
	}, nil
}
