// Pulseboard - Community Posts with Sentiment Analysis
// Copyright 2026 Pulseboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseboard/pulseboard

// Package services provides suture.Service wrappers for the application's
// long-running components.
//
// Each wrapper translates a component's native lifecycle into suture's
// context-aware Serve pattern:
//
//	┌────────────────────────┬──────────────────────────────────────────┐
//	│ Wrapper                │ Wraps                                    │
//	├────────────────────────┼──────────────────────────────────────────┤
//	│ AnalysisWorkerService  │ worker.Supervisor (external analysis     │
//	│                        │ process: spawn, health gate, restarts)   │
//	│ HTTPServerService      │ *http.Server (diagnostics endpoints:     │
//	│                        │ healthz, readyz, metrics)                │
//	└────────────────────────┴──────────────────────────────────────────┘
//
// Wrappers follow a common contract:
//
//   - Serve(ctx) blocks until the component stops or ctx is canceled.
//   - Context cancellation triggers an orderly stop of the component
//     (graceful drain for the HTTP server, forced kill for the worker).
//   - Serve returns ctx.Err() after a cancellation-driven stop so suture
//     treats it as a normal termination, and a descriptive error when the
//     component itself fails.
//   - String() names the service for suture's event log.
//
// The AnalysisWorkerService is deliberately thin: crash detection and the
// restart budget live inside worker.Supervisor's own monitor loop, so the
// tree never restarts the worker process itself. The wrapper only ties the
// supervisor's shutdown to tree shutdown.
package services
