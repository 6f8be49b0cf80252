package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/riggen"
	httpAdapter "github.com/aretw0/riggen/internal/adapters/http"
	"github.com/aretw0/riggen/internal/adapters/redis"
	"github.com/aretw0/riggen/internal/presentation/tui"
	"github.com/aretw0/riggen/pkg/adapters/memory"
	"github.com/aretw0/riggen/pkg/observability"
	"github.com/aretw0/riggen/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 5 * time.Second

// NewServer builds the HTTP handler for the settings: metrics on a private
// registry and a Redis result store when configured, else an in-memory one.
func NewServer(opts Options) (http.Handler, func(), error) {
	cfg := opts.Config
	logger := createLogger(cfg.Debug, opts.Stderr)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	var store ports.ResultStore = memory.NewStore()
	closeFn := func() {}
	if cfg.RedisURL != "" {
		ttl, err := cfg.TTL()
		if err != nil {
			return nil, nil, err
		}
		rs, err := redis.New(cfg.RedisURL, redis.WithTTL(ttl))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open redis store: %w", err)
		}
		store = rs
		closeFn = func() { _ = rs.Close() }
	}

	hooks := metrics.Hooks()
	if cfg.Debug {
		hooks = hooks.Merge(observability.LogHooks(logger))
	}
	conv := riggen.New(
		riggen.WithLogger(logger),
		riggen.WithPoseOptions(cfg.PoseOptions()),
		riggen.WithConcurrency(cfg.Workers),
		riggen.WithLifecycleHooks(hooks),
	)

	handler := httpAdapter.NewHandler(&httpAdapter.Server{
		Converter: conv,
		Store:     store,
		Metrics:   metrics.Handler(),
		Logger:    logger,
	})
	return handler, closeFn, nil
}

// RunServe serves until ctx is cancelled, then shuts down gracefully.
func RunServe(ctx context.Context, opts Options) error {
	handler, closeFn, err := NewServer(opts)
	if err != nil {
		return err
	}
	defer closeFn()

	srv := &http.Server{
		Addr:              opts.Config.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	tui.PrintBanner(opts.Stdout, tui.ProfileFor(opts.Stdout))
	fmt.Fprintf(opts.Stdout, "Starting riggen server on %s\n", srv.Addr)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		fmt.Fprintln(opts.Stdout, "Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
		}
		return nil
	}
}
