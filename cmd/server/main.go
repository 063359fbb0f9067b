// Pulseboard - Community Posts with Sentiment Analysis
// Copyright 2026 Pulseboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseboard/pulseboard

// Package main is the entry point for the Pulseboard server application.
//
// Pulseboard delegates sentiment and toxicity analysis of posts and comments
// to an external worker process. This binary supervises that worker: it
// spawns the process, forwards its output into structured logs, gates startup
// on the worker's health endpoint, restarts it with exponential backoff when
// it crashes, and serves diagnostics endpoints so operators can see what the
// worker is doing.
//
// # Startup order
//
//  1. Configuration: Koanf v2 layered sources (defaults, config file, env)
//  2. Logging: zerolog initialized from the logging section
//  3. Analysis worker: spawned and health-gated; startup is fatal if the
//     worker never becomes ready
//  4. Supervisor tree: worker lifecycle and diagnostics HTTP services
//
// # Configuration
//
// Highest priority wins:
//   - Environment variables (WORKER_COMMAND, WORKER_MAX_RESTARTS,
//     WORKER_HEALTH_CHECK_URL, HTTP_PORT, LOG_LEVEL, ...)
//   - Config file (CONFIG_PATH or ./config.yaml)
//   - Built-in defaults
//
// # Signal handling
//
// SIGINT and SIGTERM trigger a graceful stop: the diagnostics server drains
// connections, the analysis worker is killed and reaped, and services that
// fail to stop within the tree timeout are reported before exit.
//
// # Example usage
//
//	export WORKER_COMMAND=python3
//	export WORKER_ARGS=./analysis/worker.py
//	export WORKER_HEALTH_CHECK_URL=http://127.0.0.1:5001/health
//	./pulseboard
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pulseboard/pulseboard/internal/api"
	"github.com/pulseboard/pulseboard/internal/config"
	"github.com/pulseboard/pulseboard/internal/logging"
	"github.com/pulseboard/pulseboard/internal/supervisor"
	"github.com/pulseboard/pulseboard/internal/supervisor/services"
	"github.com/pulseboard/pulseboard/internal/worker"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting Pulseboard analysis-worker supervisor")
	logging.Info().
		Str("worker_command", cfg.Worker.Command).
		Strs("worker_args", cfg.Worker.Args).
		Int("max_restarts", cfg.Worker.MaxRestarts).
		Str("health_check_url", cfg.Worker.HealthCheckURL).
		Msg("Configuration loaded")

	// Build the analysis worker supervisor from config.
	sup := worker.New(worker.Config{
		Command:               cfg.Worker.Command,
		Args:                  cfg.Worker.Args,
		MaxRestarts:           cfg.Worker.MaxRestarts,
		InitialRestartDelay:   cfg.Worker.InitialRestartDelay,
		PollInterval:          cfg.Worker.PollInterval,
		HealthCheckURL:        cfg.Worker.HealthCheckURL,
		HealthCheckTimeout:    cfg.Worker.HealthCheckTimeout,
		HealthCheckMaxRetries: cfg.Worker.HealthCheckMaxRetries,
		HealthCheckRetryDelay: cfg.Worker.HealthCheckRetryDelay,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initial start is blocking: the application must not come up without a
	// healthy analysis worker. Spawn failures and health-gate timeouts here
	// are fatal to the process.
	logging.Info().Msg("Starting analysis worker...")
	if err := sup.Start(ctx); err != nil {
		logging.Fatal().Err(err).Msg("Analysis worker failed to start")
	}
	logging.Info().Msg("Analysis worker is healthy")

	// Build the supervisor tree. sutureslog events flow through the zerolog
	// backend via the slog adapter.
	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddWorkerService(services.NewAnalysisWorkerService(sup))
	logging.Info().Msg("Analysis worker service added to supervisor tree")

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(sup).Handler(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("Diagnostics HTTP service added")

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
