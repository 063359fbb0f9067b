// Pulseboard - Community Posts with Sentiment Analysis
// Copyright 2026 Pulseboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseboard/pulseboard

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/thejerf/suture/v4"

	"github.com/pulseboard/pulseboard/internal/worker"
)

// WorkerSupervisor matches the lifecycle surface of worker.Supervisor.
// The interface keeps this wrapper testable with mocks.
type WorkerSupervisor interface {
	Start(ctx context.Context) error
	Shutdown() error
}

// AnalysisWorkerService adapts the analysis worker's process supervisor to
// suture's Serve pattern.
//
// The worker supervisor is a start-at-most-once aggregate: main performs the
// blocking initial Start so that a worker that never comes up is fatal to
// application startup. This wrapper then binds the supervisor's lifetime to
// the tree: it blocks until the tree shuts down and force-kills the worker
// via Shutdown on the way out. Steady-state crash recovery happens inside
// the worker supervisor's own monitor loop, not through suture.
type AnalysisWorkerService struct {
	sup  WorkerSupervisor
	name string
}

// NewAnalysisWorkerService creates the suture wrapper for a worker supervisor.
func NewAnalysisWorkerService(sup WorkerSupervisor) *AnalysisWorkerService {
	return &AnalysisWorkerService{
		sup:  sup,
		name: "analysis-worker",
	}
}

// Serve implements suture.Service.
//
// Start is invoked defensively: when main has already started the supervisor
// it reports ErrAlreadyStarted, which is the expected steady state here. A
// supervisor that has been shut down can never be started again, so that
// case (and any other start failure of the one-shot aggregate) tells suture
// not to bother restarting the wrapper.
func (a *AnalysisWorkerService) Serve(ctx context.Context) error {
	if err := a.sup.Start(ctx); err != nil && !errors.Is(err, worker.ErrAlreadyStarted) {
		return fmt.Errorf("analysis worker unavailable: %w: %w", err, suture.ErrDoNotRestart)
	}

	<-ctx.Done()

	if err := a.sup.Shutdown(); err != nil {
		return fmt.Errorf("analysis worker shutdown failed: %w", err)
	}
	return ctx.Err()
}

// String implements fmt.Stringer for suture's event log.
func (a *AnalysisWorkerService) String() string {
	return a.name
}
