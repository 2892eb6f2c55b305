// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ovumcy_predictions_generated_total",
			Help: "Total number of cycle predictions stored",
		},
	)

	PredictionsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ovumcy_predictions_insufficient_data_total",
			Help: "Total number of prediction requests skipped for insufficient cycle history",
		},
	)

	StatisticsCalculations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ovumcy_statistics_calculations_total",
			Help: "Total number of cycle statistics recalculations",
		},
	)

	InsightsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ovumcy_insights_generated_total",
			Help: "Total number of insights generated",
		},
		[]string{"category"},
	)

	RecalculationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ovumcy_recalculation_runs_total",
			Help: "Total number of batch recalculation runs",
		},
		[]string{"trigger"}, // "schedule", "cli"
	)

	RecalculationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ovumcy_recalculation_user_failures_total",
			Help: "Total number of per-user failures during batch recalculation",
		},
	)

	RecalculationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ovumcy_recalculation_duration_seconds",
			Help:    "Duration of batch recalculation runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ovumcy_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ovumcy_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "route"},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ovumcy_login_attempts_total",
			Help: "Total number of login attempts by outcome",
		},
		[]string{"outcome"}, // success, invalid, throttled, error
	)
)

func RecordInsight(category string) {
	InsightsGenerated.WithLabelValues(category).Inc()
}

func RecordRecalculation(trigger string, duration time.Duration, failures int) {
	RecalculationRuns.WithLabelValues(trigger).Inc()
	RecalculationDuration.Observe(duration.Seconds())
	if failures > 0 {
		RecalculationFailures.Add(float64(failures))
	}
}

func RecordAPIRequest(method, route string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordLogin(outcome string) {
	LoginAttempts.WithLabelValues(outcome).Inc()
}
