// Pulseboard - Community Posts with Sentiment Analysis
// Copyright 2026 Pulseboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseboard/pulseboard

package worker

import (
	"errors"
	"fmt"
)

// Errors returned by the worker supervisor.
var (
	// ErrAlreadyStarted is returned by Start when the supervisor has
	// already been started. A supervisor instance starts at most once.
	ErrAlreadyStarted = errors.New("worker: supervisor already started")

	// ErrShuttingDown is returned by Start when shutdown has been requested.
	// Shutdown is terminal; the supervisor cannot be reused afterwards.
	ErrShuttingDown = errors.New("worker: supervisor is shutting down")

	// ErrHealthCheckTimeout is returned by Start when the worker never
	// reported ready within the configured probe budget.
	ErrHealthCheckTimeout = errors.New("worker: health check budget exhausted before worker became ready")
)

// SpawnError indicates the OS could not create the worker process.
// It is fatal to Start; the initial spawn is never retried.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("worker: failed to spawn %q: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}
