// Pulseboard - Community Posts with Sentiment Analysis
// Copyright 2026 Pulseboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseboard/pulseboard

// Package worker supervises the out-of-process sentiment/toxicity analysis
// worker.
//
// Pulseboard delegates sentiment analysis to a separate process (a Python
// script by default). This package owns that process's OS-level lifecycle
// and nothing else: it does not know what the worker computes and does not
// speak the worker's request protocol beyond a liveness probe. Components
// that need analysis results call the worker over their own HTTP clients
// with independent timeouts and retries.
//
// # Lifecycle
//
// The Supervisor moves through these states:
//
//	NotStarted -> Spawning -> AwaitingHealth -> Running
//	Running    -> (exit detected) -> Restarting -> Spawning   [budget left]
//	Running    -> (exit detected) -> Failed                   [budget spent]
//	any        -> ShuttingDown -> Terminated                  [Shutdown()]
//
// Start spawns the worker, wires its stdout/stderr into the structured log
// (stdout at info, stderr at warn), launches the monitor loop, and blocks
// until a health probe succeeds or HealthCheckMaxRetries probes have failed.
// A worker that never comes up is fatal to application startup.
//
// After a crash the monitor loop waits InitialRestartDelay × 2^(n−1) before
// restart attempt n. The restart counter is cumulative for the supervisor's
// lifetime; once MaxRestarts attempts are spent the loop exits permanently
// and the worker stays dead until the host application is restarted.
// Steady-state failures are logged and drive the state machine; they are
// never propagated to request-handling code.
//
// Shutdown kills the worker outright (no termination grace) and is bounded
// by kill/reap time: any poll or backoff sleep in progress is woken
// immediately. After Shutdown returns no further spawn can occur.
//
// # Concurrency
//
// One monitor goroutine runs per Supervisor, plus two log-forwarding
// goroutines and one reaper goroutine per spawn. The child handle, restart
// counter, and shutdown flag are the only shared mutable state, all guarded
// by one mutex. Only the monitor loop (and terminal Shutdown) may replace or
// clear the child handle. IsHealthy probes are independent network calls
// that touch no supervisor state.
package worker
