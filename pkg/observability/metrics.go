package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/riggen/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

// Metrics holds the converter collectors.
type Metrics struct {
	gatherer prometheus.Gatherer

	Frames        *prometheus.CounterVec
	FrameDuration prometheus.Histogram
	Runs          *prometheus.CounterVec
	RunDuration   prometheus.Histogram
	InFlight      prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		Frames: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riggen_frames_total",
				Help: "Total number of solved frames",
			},
			[]string{"status"},
		),
		FrameDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "riggen_frame_duration_seconds",
				Help:    "Time spent solving one frame (pose and both hands)",
				Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
			},
		),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riggen_runs_total",
				Help: "Total number of conversion runs",
			},
			[]string{"status"},
		),
		RunDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name: "riggen_run_duration_seconds",
				Help: "Duration of whole conversion runs",
			},
		),
		InFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "riggen_runs_in_flight",
				Help: "Conversion runs currently executing",
			},
		),
	}
	reg.MustRegister(m.Frames, m.FrameDuration, m.Runs, m.RunDuration, m.InFlight)
	return m
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			m.InFlight.Inc()
		},
		OnRunEnd: func(ctx context.Context, e *domain.RunEvent) {
			m.InFlight.Dec()
			m.Runs.WithLabelValues(status(e.Err)).Inc()
			m.RunDuration.Observe(e.Duration.Seconds())
		},
		OnFrameEnd: func(ctx context.Context, e *domain.FrameEvent) {
			m.Frames.WithLabelValues(status(e.Err)).Inc()
			m.FrameDuration.Observe(e.Duration.Seconds())
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func status(err error) string {
	if err != nil {
		return statusError
	}
	return statusOK
}
