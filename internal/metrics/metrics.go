// Package metrics provides the centralized Prometheus registry for the
// predictions pipeline.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PipelineRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "diamond_edge",
		Name:      "pipeline_runs_total",
		Help:      "Total number of pipeline runs by outcome",
	}, []string{"status"})
	GamesEvaluatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "diamond_edge",
		Name:      "games_evaluated_total",
		Help:      "Total number of slate games evaluated",
	})
	GamesSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "diamond_edge",
		Name:      "games_skipped_total",
		Help:      "Total number of games skipped, by reason",
	}, []string{"reason"})
	RecommendationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "diamond_edge",
		Name:      "recommendations_total",
		Help:      "Total number of recommendations produced",
	})
	SearchConfigurationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "diamond_edge",
		Name:      "search_configurations_total",
		Help:      "Total number of hyperparameter configurations evaluated",
	})
	OddsAPIRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "diamond_edge",
		Name:      "odds_api_requests_total",
		Help:      "Total number of odds API requests, by outcome",
	}, []string{"status"})
)

// Histogram metrics
var (
	TrainingDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "diamond_edge",
		Name:      "training_duration_seconds",
		Help:      "Duration of model training including hyperparameter search",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600, 1800},
	})
	SlateFetchDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "diamond_edge",
		Name:      "slate_fetch_duration_seconds",
		Help:      "Duration of odds slate fetches in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PipelineRunsTotal)
		registry.MustRegister(GamesEvaluatedTotal)
		registry.MustRegister(GamesSkippedTotal)
		registry.MustRegister(RecommendationsTotal)
		registry.MustRegister(SearchConfigurationsTotal)
		registry.MustRegister(OddsAPIRequestsTotal)

		registry.MustRegister(TrainingDurationSeconds)
		registry.MustRegister(SlateFetchDurationSeconds)
	})
	return registry
}

// Handler returns an HTTP handler for the metrics endpoint.
func Handler() http.Handler {
	return promhttp.HandlerFor(InitRegistry(), promhttp.HandlerOpts{})
}
