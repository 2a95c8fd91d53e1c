// Package metrics exposes Prometheus instrumentation for AI generation
// traffic.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobtrack_generations_total",
			Help: "Total number of AI generation requests by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	generationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobtrack_generation_duration_seconds",
			Help:    "Latency of AI generation calls, retries included.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	generationTokens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobtrack_generation_tokens_total",
			Help: "Provider-reported token usage by kind and direction.",
		},
		[]string{"kind", "direction"},
	)
)

// ObserveGeneration records one generation call.
func ObserveGeneration(kind, outcome string, seconds float64) {
	generationsTotal.WithLabelValues(kind, outcome).Inc()
	generationDuration.WithLabelValues(kind).Observe(seconds)
}

// AddTokens records provider token usage for a generation kind.
func AddTokens(kind string, promptTokens, completionTokens int) {
	if promptTokens > 0 {
		generationTokens.WithLabelValues(kind, "prompt").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		generationTokens.WithLabelValues(kind, "completion").Add(float64(completionTokens))
	}
}
