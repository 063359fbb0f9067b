// Pulseboard - Community Posts with Sentiment Analysis
// Copyright 2026 Pulseboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseboard/pulseboard

// Package supervisor provides the Suture-based supervision tree that hosts
// Pulseboard's long-running components.
//
// The tree wraps two layers under a single root:
//
//	pulseboard (root)
//	├── worker-layer: analysis worker lifecycle (services.AnalysisWorkerService)
//	└── api-layer:    diagnostics HTTP server (services.HTTPServerService)
//
// Suture restarts a service whose Serve method returns an error, with
// failure-threshold backoff; a service that returns the context's error on
// cancellation is treated as stopping cleanly. Supervision events are logged
// through sutureslog, which is fed by the zerolog-backed slog adapter in
// internal/logging.
//
// Note the division of labor: suture supervises in-process services, while
// the analysis worker's OS process is supervised by internal/worker with its
// own restart budget. The wrapper in services/worker_service.go bridges the
// two lifecycles.
package supervisor
