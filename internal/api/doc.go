// Pulseboard - Community Posts with Sentiment Analysis
// Copyright 2026 Pulseboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseboard/pulseboard

// Package api serves the diagnostics HTTP surface for the analysis-worker
// supervisor.
//
// Endpoints:
//
//	GET /healthz   host process liveness
//	GET /readyz    ad-hoc probe of the analysis worker (503 when not ready)
//	GET /metrics   Prometheus exposition
//
// The readiness endpoint is intentionally uncached: each request triggers a
// fresh probe of the worker's health endpoint, so the reported state is never
// stale. The application's posts/comments/votes API lives in a separate
// service and is not routed here.
package api
