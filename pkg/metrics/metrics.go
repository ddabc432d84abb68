// Package metrics defines the Prometheus metric collectors used by the
// retrieval engine and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the engine.
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	SearchesTotal        *prometheus.CounterVec
	SearchLatency        *prometheus.HistogramVec
	SearchResultsCount   prometheus.Histogram
	TranslationsTotal    *prometheus.CounterVec
	TranslationCacheHits prometheus.Counter
	DocsIndexedTotal     prometheus.Counter
	IndexBuildDuration   prometheus.Histogram
	VocabularySize       prometheus.Gauge
	EvaluationsTotal     prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed.",
			},
		),
		SearchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clir_searches_total",
				Help: "Total searches by retrieval method and outcome (hit, zero_result, error).",
			},
			[]string{"method", "outcome"},
		),
		SearchLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "clir_search_latency_seconds",
				Help:    "Search latency in seconds by retrieval method.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"method"},
		),
		SearchResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "clir_search_results_count",
				Help:    "Number of results returned per search.",
				Buckets: []float64{0, 1, 3, 5, 10, 25, 50, 100},
			},
		),
		TranslationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clir_translations_total",
				Help: "Query translations by outcome (ok, failed, skipped).",
			},
			[]string{"outcome"},
		),
		TranslationCacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "clir_translation_cache_hits_total",
				Help: "Translated queries served from the Redis cache.",
			},
		),
		DocsIndexedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "clir_docs_indexed_total",
				Help: "Documents included in the built index.",
			},
		),
		IndexBuildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "clir_index_build_duration_seconds",
				Help:    "Wall-clock time of the one-shot index build.",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
			},
		),
		VocabularySize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "clir_vocabulary_size",
				Help: "Number of distinct terms in the built index.",
			},
		),
		EvaluationsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "clir_evaluations_total",
				Help: "Evaluation-harness runs.",
			},
		),
	}

	prometheus.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.SearchesTotal,
		m.SearchLatency,
		m.SearchResultsCount,
		m.TranslationsTotal,
		m.TranslationCacheHits,
		m.DocsIndexedTotal,
		m.IndexBuildDuration,
		m.VocabularySize,
		m.EvaluationsTotal,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
