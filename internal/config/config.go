// Pulseboard - Community Posts with Sentiment Analysis
// Copyright 2026 Pulseboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseboard/pulseboard

package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config is the root configuration for the Pulseboard server.
type Config struct {
	Worker  WorkerConfig  `koanf:"worker"`
	Server  ServerConfig  `koanf:"server"`
	Logging LoggingConfig `koanf:"logging"`
}

// WorkerConfig configures the analysis worker process and its supervision.
type WorkerConfig struct {
	// Command is the interpreter or executable used to launch the worker.
	Command string `koanf:"command"`

	// Args are passed to Command, typically the worker script path.
	Args []string `koanf:"args"`

	// MaxRestarts is the cumulative restart budget for the supervisor's
	// lifetime. It is never replenished, even after long healthy runs.
	MaxRestarts int `koanf:"max_restarts"`

	// InitialRestartDelay seeds the exponential backoff between restarts.
	InitialRestartDelay time.Duration `koanf:"initial_restart_delay"`

	// PollInterval is how often the monitor loop checks process liveness.
	PollInterval time.Duration `koanf:"poll_interval"`

	// HealthCheckURL is the worker's readiness endpoint.
	HealthCheckURL string `koanf:"health_check_url"`

	// HealthCheckTimeout bounds a single readiness probe.
	HealthCheckTimeout time.Duration `koanf:"health_check_timeout"`

	// HealthCheckMaxRetries is the number of probes attempted during startup.
	HealthCheckMaxRetries int `koanf:"health_check_max_retries"`

	// HealthCheckRetryDelay is the fixed pause between startup probes.
	HealthCheckRetryDelay time.Duration `koanf:"health_check_retry_delay"`
}

// ServerConfig configures the diagnostics HTTP server.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// LoggingConfig configures the zerolog logging layer.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Worker: WorkerConfig{
			Command:               "python3",
			Args:                  []string{"./analysis/worker.py"},
			MaxRestarts:           5,
			InitialRestartDelay:   1 * time.Second,
			PollInterval:          5 * time.Second,
			HealthCheckURL:        "http://127.0.0.1:5001/health",
			HealthCheckTimeout:    2 * time.Second,
			HealthCheckMaxRetries: 10,
			HealthCheckRetryDelay: 1 * time.Second,
		},
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8080,
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the configuration for values that cannot work at runtime.
func (c *Config) Validate() error {
	if c.Worker.Command == "" {
		return fmt.Errorf("worker.command must not be empty")
	}
	if c.Worker.MaxRestarts < 0 {
		return fmt.Errorf("worker.max_restarts must be non-negative, got %d", c.Worker.MaxRestarts)
	}
	if c.Worker.InitialRestartDelay <= 0 {
		return fmt.Errorf("worker.initial_restart_delay must be positive, got %s", c.Worker.InitialRestartDelay)
	}
	if c.Worker.PollInterval <= 0 {
		return fmt.Errorf("worker.poll_interval must be positive, got %s", c.Worker.PollInterval)
	}
	if c.Worker.HealthCheckMaxRetries < 1 {
		return fmt.Errorf("worker.health_check_max_retries must be at least 1, got %d", c.Worker.HealthCheckMaxRetries)
	}
	if c.Worker.HealthCheckTimeout <= 0 {
		return fmt.Errorf("worker.health_check_timeout must be positive, got %s", c.Worker.HealthCheckTimeout)
	}
	if c.Worker.HealthCheckRetryDelay <= 0 {
		return fmt.Errorf("worker.health_check_retry_delay must be positive, got %s", c.Worker.HealthCheckRetryDelay)
	}
	u, err := url.Parse(c.Worker.HealthCheckURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("worker.health_check_url %q is not a valid URL", c.Worker.HealthCheckURL)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	return nil
}
