// Pulseboard - Community Posts with Sentiment Analysis
// Copyright 2026 Pulseboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseboard/pulseboard

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pulseboard/pulseboard/internal/logging"
	"github.com/pulseboard/pulseboard/internal/metrics"
)

// diagnosticsRateLimit allows frequent monitoring probes while preventing
// abuse of the uncached readiness check.
const diagnosticsRateLimit = 1000

// WorkerStatus is the view of the analysis worker supervisor the diagnostics
// endpoints need.
//
// Satisfied by *worker.Supervisor.
type WorkerStatus interface {
	IsHealthy(ctx context.Context) bool
	Running() bool
	RestartCount() int
}

// Router serves the supervisor-facing diagnostics endpoints: process
// liveness, analysis-worker readiness, and Prometheus metrics.
type Router struct {
	worker WorkerStatus
	logger zerolog.Logger
}

// NewRouter creates the diagnostics router.
func NewRouter(worker WorkerStatus) *Router {
	return &Router{
		worker: worker,
		logger: logging.With().Str("component", "diagnostics-api").Logger(),
	}
}

// Handler builds the chi handler with the full middleware stack.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(rt.requestLogger)
	r.Use(httprate.LimitByIP(diagnosticsRateLimit, time.Minute))

	r.Get("/healthz", rt.handleLiveness)
	r.Get("/readyz", rt.handleReadiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// healthResponse is the JSON body for the liveness and readiness endpoints.
type healthResponse struct {
	Status        string `json:"status"`
	WorkerRunning bool   `json:"worker_running,omitempty"`
	RestartCount  int    `json:"restart_count"`
}

// handleLiveness reports host process liveness. It says nothing about the
// analysis worker; a host that can answer is alive.
func (rt *Router) handleLiveness(w http.ResponseWriter, r *http.Request) {
	rt.writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// handleReadiness performs an ad-hoc probe of the analysis worker. Every
// request hits the worker's health endpoint; nothing is cached, so the answer
// reflects the worker's state at call time.
func (rt *Router) handleReadiness(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		WorkerRunning: rt.worker.Running(),
		RestartCount:  rt.worker.RestartCount(),
	}

	if rt.worker.IsHealthy(r.Context()) {
		resp.Status = "ready"
		rt.writeJSON(w, http.StatusOK, resp)
		return
	}

	resp.Status = "not_ready"
	rt.writeJSON(w, http.StatusServiceUnavailable, resp)
}

func (rt *Router) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		rt.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// requestLogger records one zerolog line and the request metrics per call.
func (rt *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		metrics.RecordAPIRequest(r.Method, r.URL.Path, ww.Status(), duration)
		rt.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", duration).
			Str("remote", r.RemoteAddr).
			Msg("Request handled")
	})
}
