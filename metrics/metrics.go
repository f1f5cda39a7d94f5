// Package metrics provides Prometheus metrics collection for HTTP server
// and pipeline monitoring.
//
// All metrics are automatically registered with the Prometheus default
// registry during package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	SearchesPerformed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "websearch_queries_total",
			Help: "Completed web search queries (all pages merged)",
		},
	)

	SynthesizerCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "synthesizer_calls_total",
			Help: "LLM synthesizer calls by outcome",
		},
		[]string{"outcome"},
	)

	PipelineRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_runs_total",
			Help: "Pipeline orchestrator runs by flow and outcome",
		},
		[]string{"flow", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(SearchesPerformed)
	prometheus.MustRegister(SynthesizerCalls)
	prometheus.MustRegister(PipelineRuns)
}
