// Package metrics registers the engine's Prometheus collectors.
// Importing the package is enough to register them with the default
// registry; main exposes them over promhttp when configured.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Summary pipeline metrics
	SummariesStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summarizer_summaries_started_total",
			Help: "Total number of summary requests started",
		},
		[]string{"mode"},
	)

	SummariesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summarizer_summaries_completed_total",
			Help: "Total number of summary requests completed",
		},
		[]string{"mode", "status"},
	)

	SummaryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "summarizer_summary_duration_seconds",
			Help:    "End to end summary duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	// Provider metrics
	ProviderAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summarizer_provider_attempts_total",
			Help: "Completion attempts per provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	ProviderFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "summarizer_provider_fallbacks_total",
			Help: "Times the engine advanced past an exhausted provider",
		},
	)

	ProviderLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "summarizer_provider_latency_seconds",
			Help:    "Latency of individual provider invocations",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"provider"},
	)

	// Content metrics
	FragmentsRetained = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "summarizer_fragments_retained",
			Help:    "Fragments retained per request after normalization",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
	)

	CitationsExtracted = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "summarizer_citations_extracted",
			Help:    "Citations extracted per comprehensive summary",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 10},
		},
	)
)

// Attempt outcomes for ProviderAttempts.
const (
	OutcomeAccepted    = "accepted"
	OutcomeError       = "error"
	OutcomeTooShort    = "too_short"
	OutcomeBreakerOpen = "breaker_open"
)
