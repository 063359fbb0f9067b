// Pulseboard - Community Posts with Sentiment Analysis
// Copyright 2026 Pulseboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseboard/pulseboard

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Analysis worker lifecycle metrics

	WorkerUp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "analysis_worker_up",
			Help: "Whether the analysis worker process is currently running (1) or not (0)",
		},
	)

	WorkerRestartsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analysis_worker_restarts_total",
			Help: "Total number of analysis worker restart attempts",
		},
	)

	WorkerSpawnFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analysis_worker_spawn_failures_total",
			Help: "Total number of failed attempts to spawn the analysis worker process",
		},
	)

	WorkerRestartBudgetRemaining = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "analysis_worker_restart_budget_remaining",
			Help: "Restart attempts left before the supervisor gives up permanently",
		},
	)

	// Health probe metrics

	HealthCheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_worker_health_check_duration_seconds",
			Help:    "Duration of analysis worker health probes in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	HealthCheckFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analysis_worker_health_check_failures_total",
			Help: "Total number of failed analysis worker health probes",
		},
	)

	// Diagnostics API metrics

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// ObserveHealthCheck records the outcome of a single health probe.
func ObserveHealthCheck(duration time.Duration, err error) {
	HealthCheckDuration.Observe(duration.Seconds())
	if err != nil {
		HealthCheckFailuresTotal.Inc()
	}
}
