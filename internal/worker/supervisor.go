// Pulseboard - Community Posts with Sentiment Analysis
// Copyright 2026 Pulseboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseboard/pulseboard

package worker

import (
	"context"
	"errors"
	"os/exec"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pulseboard/pulseboard/internal/logging"
	"github.com/pulseboard/pulseboard/internal/metrics"
)

// child owns exactly one live worker process. The supervisor holds at most
// one child at a time and nothing else ever holds a reference to it.
type child struct {
	cmd *exec.Cmd

	// id identifies this spawn in logs. A fresh one is minted per spawn so
	// restarts are distinguishable.
	id string

	// exited is closed by the reaper goroutine once Wait returns.
	exited chan struct{}

	// waitErr is the result of Wait. Valid only after exited is closed.
	waitErr error
}

// hasExited is the monitor loop's non-blocking liveness check.
func (c *child) hasExited() bool {
	select {
	case <-c.exited:
		return true
	default:
		return false
	}
}

// terminate force-kills the process and waits for the reaper. The worker
// gets no termination grace, so it cannot flush state; see Config.Command.
func (c *child) terminate() {
	if c.cmd.Process != nil {
		// Kill fails if the process already exited; nothing to do then.
		_ = c.cmd.Process.Kill()
	}
	<-c.exited
}

// Supervisor manages the OS-level lifecycle of the analysis worker process:
// it spawns the worker, forwards its output, gates startup on a readiness
// probe, restarts it with bounded exponential backoff when it crashes, and
// kills it on shutdown.
//
// A Supervisor is created once, started at most once, and torn down exactly
// once via Shutdown. The restart counter is never reset, so the budget is a
// hard ceiling on cumulative instability for the host's lifetime.
//
// Everything the rest of the application may call is Start, Shutdown, and
// IsHealthy (plus the read-only diagnostics accessors). Components that talk
// to the worker do so over their own HTTP clients with their own retries,
// independent of this type.
type Supervisor struct {
	cfg    Config
	health *HealthChecker
	logger zerolog.Logger

	mu           sync.Mutex
	child        *child
	restartCount int
	started      bool
	shuttingDown bool

	// shutdownCh is closed exactly once by Shutdown to wake any sleep in
	// the monitor loop or the startup health wait.
	shutdownCh chan struct{}

	// monitorDone is closed when the monitor loop exits.
	monitorDone chan struct{}
}

// New creates a supervisor for the given config. Unset launch and probe
// fields fall back to DefaultConfig; MaxRestarts is taken as given, with
// zero meaning crashes are never restarted.
func New(cfg Config) *Supervisor {
	cfg = cfg.withDefaults()
	logger := logging.With().Str("component", "worker-supervisor").Logger()
	return &Supervisor{
		cfg:         cfg,
		health:      NewHealthChecker(cfg, logger),
		logger:      logger,
		shutdownCh:  make(chan struct{}),
		monitorDone: make(chan struct{}),
	}
}

// Start spawns the worker, starts log forwarding and the monitor loop, then
// blocks until the worker reports ready or the health-check budget runs out.
//
// On success the monitor loop keeps running independently of the caller.
// A *SpawnError or ErrHealthCheckTimeout is fatal: the caller is expected to
// treat an unavailable worker as fatal to application startup. On a health
// timeout the supervisor shuts itself down before returning, so the spawned
// process is not leaked.
func (s *Supervisor) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.shuttingDown {
		s.mu.Unlock()
		return ErrShuttingDown
	}
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}

	if err := s.spawnLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.started = true
	s.mu.Unlock()

	metrics.WorkerRestartBudgetRemaining.Set(float64(s.cfg.MaxRestarts))
	go s.monitor()

	// The readiness wait must abort promptly if shutdown arrives mid-wait.
	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.shutdownCh:
			cancel()
		case <-waitCtx.Done():
		}
	}()

	diag, err := s.health.WaitUntilReady(waitCtx)
	if err != nil {
		if errors.Is(err, context.Canceled) && s.isShuttingDown() {
			return ErrShuttingDown
		}
		s.logger.Error().Err(err).Msg("Worker never became ready, shutting down")
		if shutdownErr := s.Shutdown(); shutdownErr != nil {
			s.logger.Warn().Err(shutdownErr).Msg("Cleanup shutdown failed")
		}
		return err
	}

	s.logger.Info().
		Str("status", diag.Status()).
		Interface("diagnostics", diag).
		Msg("Worker is ready")
	return nil
}

// IsHealthy performs one ad-hoc liveness probe and reports whether it
// succeeded. Results are not cached. Once shutdown has begun the worker is
// dead by construction and no probe is issued.
func (s *Supervisor) IsHealthy(ctx context.Context) bool {
	s.mu.Lock()
	down := s.shuttingDown || !s.started
	s.mu.Unlock()
	if down {
		return false
	}
	_, err := s.health.Probe(ctx)
	return err == nil
}

// RestartCount returns how much of the restart budget has been consumed.
// It is monotonically non-decreasing for the life of the supervisor.
func (s *Supervisor) RestartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restartCount
}

// Running reports whether a worker process is currently alive.
func (s *Supervisor) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.child != nil && !s.child.hasExited()
}

// Shutdown terminates the worker and stops the monitor loop. The kill is
// unconditional; there is no SIGTERM grace period. Shutdown returns once the
// process is reaped and the monitor loop has exited, which is bounded by
// kill/reap time regardless of any backoff sleep in progress. It is
// idempotent: subsequent calls are no-ops.
func (s *Supervisor) Shutdown() error {
	s.mu.Lock()
	if s.shuttingDown {
		s.mu.Unlock()
		return nil
	}
	s.shuttingDown = true
	close(s.shutdownCh)
	c := s.child
	s.child = nil
	started := s.started
	s.mu.Unlock()

	if c != nil {
		s.logger.Info().Str("instance_id", c.id).Msg("Killing worker process")
		c.terminate()
	}
	if started {
		<-s.monitorDone
	}

	metrics.WorkerUp.Set(0)
	s.logger.Info().Msg("Worker supervisor shut down")
	return nil
}

func (s *Supervisor) isShuttingDown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shuttingDown
}

// spawnLocked creates a new worker process and installs it as the current
// child. Caller must hold s.mu and have verified shuttingDown is false.
func (s *Supervisor) spawnLocked() error {
	cmd := exec.Command(s.cfg.Command, s.cfg.Args...)
	// Environment is inherited from the host; stdin stays disconnected.

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return &SpawnError{Command: s.cfg.Command, Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return &SpawnError{Command: s.cfg.Command, Err: err}
	}

	if err := cmd.Start(); err != nil {
		return &SpawnError{Command: s.cfg.Command, Err: err}
	}

	c := &child{
		cmd:    cmd,
		id:     uuid.NewString(),
		exited: make(chan struct{}),
	}
	s.child = c

	streamLogger := s.logger.With().Str("instance_id", c.id).Logger()
	var forwarders sync.WaitGroup
	forwarders.Add(2)
	go func() {
		defer forwarders.Done()
		forwardLogs(stdout, "stdout", streamLogger)
	}()
	go func() {
		defer forwarders.Done()
		forwardLogs(stderr, "stderr", streamLogger)
	}()

	// Reaper: Wait closes the pipes, so both forwarders must drain to EOF
	// first or a crashing worker's final lines are lost. The forwarders
	// return at process exit, so exit detection is not delayed.
	go func() {
		forwarders.Wait()
		c.waitErr = cmd.Wait()
		close(c.exited)
	}()

	metrics.WorkerUp.Set(1)
	s.logger.Info().
		Str("instance_id", c.id).
		Int("pid", cmd.Process.Pid).
		Str("command", s.cfg.Command).
		Strs("args", s.cfg.Args).
		Msg("Worker process spawned")
	return nil
}

// monitor is the supervisor's single long-lived background task. It polls
// process liveness, drives the restart/backoff state machine on crashes, and
// exits on shutdown or when the restart budget is exhausted.
func (s *Supervisor) monitor() {
	defer close(s.monitorDone)

	for {
		select {
		case <-s.shutdownCh:
			return
		default:
		}

		s.mu.Lock()
		c := s.child
		s.mu.Unlock()

		if c != nil && !c.hasExited() {
			select {
			case <-time.After(s.cfg.PollInterval):
			case <-s.shutdownCh:
				return
			}
			continue
		}

		if c != nil {
			s.logger.Warn().
				Str("instance_id", c.id).
				AnErr("exit_error", c.waitErr).
				Msg("Worker process exited")
			metrics.WorkerUp.Set(0)
			s.mu.Lock()
			if s.child == c {
				s.child = nil
			}
			s.mu.Unlock()
		}

		s.mu.Lock()
		if s.shuttingDown {
			s.mu.Unlock()
			return
		}
		if !MayRestart(s.restartCount, s.cfg.MaxRestarts) {
			s.mu.Unlock()
			s.logger.Error().
				Int("max_restarts", s.cfg.MaxRestarts).
				Msg("Worker restart budget exhausted, giving up permanently")
			return
		}
		s.restartCount++
		attempt := s.restartCount
		s.mu.Unlock()

		metrics.WorkerRestartsTotal.Inc()
		metrics.WorkerRestartBudgetRemaining.Set(float64(s.cfg.MaxRestarts - attempt))

		delay := RestartDelay(attempt, s.cfg.InitialRestartDelay)
		s.logger.Warn().
			Int("attempt", attempt).
			Int("max_restarts", s.cfg.MaxRestarts).
			Dur("delay", delay).
			Msg("Restarting worker after backoff")

		select {
		case <-time.After(delay):
		case <-s.shutdownCh:
			return
		}

		// Re-check under the lock: a shutdown that raced the backoff sleep
		// must win, and no spawn may happen after it.
		s.mu.Lock()
		if s.shuttingDown {
			s.mu.Unlock()
			return
		}
		err := s.spawnLocked()
		s.mu.Unlock()

		if err != nil {
			metrics.WorkerSpawnFailuresTotal.Inc()
			s.logger.Error().Err(err).Int("attempt", attempt).Msg("Worker respawn failed")
			// The next loop iteration sees the empty child slot and, budget
			// permitting, tries again with a longer delay.
		}
	}
}
