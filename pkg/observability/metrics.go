package observability

import (
	"context"
	"strconv"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine collectors.
type Metrics struct {
	Runs               *prometheus.CounterVec
	RunSteps           prometheus.Histogram
	Enumerations       *prometheus.CounterVec
	EnumerationRounds  prometheus.Histogram
	CandidatesResolved *prometheus.CounterVec
	PoolSize           prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_runs_total",
				Help: "Total number of single-input runs by verdict",
			},
			[]string{"verdict"},
		),
		RunSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "turing_run_steps",
			Help:    "Steps taken per single-input run",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		Enumerations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_enumerations_total",
				Help: "Total number of enumerations, split by whether a cached listing answered them",
			},
			[]string{"cached"},
		),
		EnumerationRounds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "turing_enumeration_rounds",
			Help:    "Dovetailing rounds per enumeration",
			Buckets: prometheus.ExponentialBuckets(1, 4, 12),
		}),
		CandidatesResolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_candidates_resolved_total",
				Help: "Enumeration candidates resolved by verdict; step_limit_exceeded means discarded at the ceiling",
			},
			[]string{"verdict"},
		),
		PoolSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "turing_enumeration_pool_size",
			Help: "Unreleased candidates in the pool after the latest round",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Runs, m.RunSteps, m.Enumerations, m.EnumerationRounds, m.CandidatesResolved, m.PoolSize)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunEnd: func(_ context.Context, e *domain.RunEvent) {
			m.Runs.WithLabelValues(string(e.Verdict)).Inc()
			m.RunSteps.Observe(float64(e.Steps))
		},
		OnRound: func(_ context.Context, e *domain.RoundEvent) {
			m.PoolSize.Set(float64(e.PoolSize))
		},
		OnCandidateResolved: func(_ context.Context, e *domain.CandidateEvent) {
			m.CandidatesResolved.WithLabelValues(string(e.Verdict)).Inc()
		},
		OnEnumerationEnd: func(_ context.Context, e *domain.EnumerationEvent) {
			m.Enumerations.WithLabelValues(strconv.FormatBool(e.Cached)).Inc()
			if !e.Cached {
				m.EnumerationRounds.Observe(float64(e.Rounds))
			}
		},
	}
}
