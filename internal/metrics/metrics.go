// Package metrics exposes Prometheus instrumentation for the allocator.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all allocator metrics. A nil *Registry is valid and records nothing.
type Registry struct {
	reg *prometheus.Registry

	Recommendations    *prometheus.CounterVec
	OptimizerFallbacks *prometheus.CounterVec
	OptimizerIters     *prometheus.HistogramVec
	RecommendDuration  prometheus.Histogram
	MalformedAnswers   prometheus.Counter
}

// NewRegistry creates a registry with all allocator metrics plus the Go runtime and
// process collectors.
func NewRegistry() *Registry {
	m := &Registry{
		reg: prometheus.NewRegistry(),

		Recommendations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "allocator_recommendations_total",
				Help: "Total number of recommendations produced by risk aversion bucket",
			},
			[]string{"aversion"},
		),

		OptimizerFallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "allocator_optimizer_fallbacks_total",
				Help: "Total number of optimizations that fell back to equal weights by reason",
			},
			[]string{"reason"},
		),

		OptimizerIters: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "allocator_optimizer_iterations",
				Help:    "Solver iterations per optimization",
				Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 250, 500},
			},
			[]string{"solver"},
		),

		RecommendDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "allocator_recommendation_duration_seconds",
				Help:    "Time to score answers, optimize and compute statistics",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),

		MalformedAnswers: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "allocator_malformed_answers_total",
				Help: "Total number of rejected questionnaire payloads",
			},
		),
	}

	m.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Recommendations,
		m.OptimizerFallbacks,
		m.OptimizerIters,
		m.RecommendDuration,
		m.MalformedAnswers,
	)

	return m
}

// Handler serves the Prometheus exposition format for this registry.
func (m *Registry) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// RecordRecommendation counts a produced recommendation and its latency.
func (m *Registry) RecordRecommendation(aversion string, duration time.Duration) {
	if m == nil {
		return
	}
	m.Recommendations.WithLabelValues(aversion).Inc()
	m.RecommendDuration.Observe(duration.Seconds())
}

// RecordOptimization records solver iterations and, when reason is non-empty, a fallback.
func (m *Registry) RecordOptimization(solver, reason string, iterations int) {
	if m == nil {
		return
	}
	m.OptimizerIters.WithLabelValues(solver).Observe(float64(iterations))
	if reason != "" {
		m.OptimizerFallbacks.WithLabelValues(reason).Inc()
	}
}

// RecordMalformedAnswers counts a rejected questionnaire payload.
func (m *Registry) RecordMalformedAnswers() {
	if m == nil {
		return
	}
	m.MalformedAnswers.Inc()
}
