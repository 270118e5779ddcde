package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/hackterm/pkg/domain"
)

const namespace = "hackterm"

// Metrics holds the console collectors.
type Metrics struct {
	RunsStarted       *prometheus.CounterVec
	RunsCompleted     *prometheus.CounterVec
	RunDuration       *prometheus.HistogramVec
	CharactersWritten prometheus.Counter
	CharactersRemoved prometheus.Counter
	StepsSkipped      prometheus.Counter
	QueueDepth        prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RunsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_started_total",
			Help:      "Animation runs started, by request kind.",
		}, []string{"kind"}),
		RunsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_completed_total",
			Help:      "Animation runs completed, by request kind.",
		}, []string{"kind"}),
		RunDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of completed animation runs.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"kind"}),
		CharactersWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "characters_written_total",
			Help:      "Characters revealed on the console.",
		}),
		CharactersRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "characters_removed_total",
			Help:      "Characters removed from the console.",
		}),
		StepsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_skipped_total",
			Help:      "Out-of-range deletions that were skipped.",
		}),
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queue_depth",
			Help:      "Requests waiting behind the active run.",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.RunsStarted, m.RunsCompleted, m.RunDuration,
			m.CharactersWritten, m.CharactersRemoved, m.StepsSkipped,
			m.QueueDepth,
		)
	}
	return m
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStarted: func(ctx context.Context, e *domain.RunEvent) {
			m.RunsStarted.WithLabelValues(string(e.Kind)).Inc()
		},
		OnRunCompleted: func(ctx context.Context, e *domain.RunEvent) {
			m.RunsCompleted.WithLabelValues(string(e.Kind)).Inc()
			m.RunDuration.WithLabelValues(string(e.Kind)).Observe(e.Duration.Seconds())
		},
		OnCharacterWritten: func(ctx context.Context, e *domain.StepEvent) {
			m.CharactersWritten.Inc()
		},
		OnCharacterRemoved: func(ctx context.Context, e *domain.StepEvent) {
			m.CharactersRemoved.Inc()
		},
		OnStepSkipped: func(ctx context.Context, e *domain.StepEvent) {
			m.StepsSkipped.Inc()
		},
		OnQueueChanged: func(ctx context.Context, e *domain.QueueEvent) {
			m.QueueDepth.Set(float64(e.Depth))
		},
	}
}
