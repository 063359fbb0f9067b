// Pulseboard - Community Posts with Sentiment Analysis
// Copyright 2026 Pulseboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseboard/pulseboard

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "python3", cfg.Worker.Command)
	assert.Equal(t, []string{"./analysis/worker.py"}, cfg.Worker.Args)
	assert.Equal(t, 5, cfg.Worker.MaxRestarts)
	assert.Equal(t, time.Second, cfg.Worker.InitialRestartDelay)
	assert.Equal(t, 5*time.Second, cfg.Worker.PollInterval)
	assert.Equal(t, "http://127.0.0.1:5001/health", cfg.Worker.HealthCheckURL)
	assert.Equal(t, 10, cfg.Worker.HealthCheckMaxRetries)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("WORKER_MAX_RESTARTS", "3")
	t.Setenv("WORKER_HEALTH_CHECK_URL", "http://127.0.0.1:9100/health")
	t.Setenv("WORKER_INITIAL_RESTART_DELAY", "250ms")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Worker.MaxRestarts)
	assert.Equal(t, "http://127.0.0.1:9100/health", cfg.Worker.HealthCheckURL)
	assert.Equal(t, 250*time.Millisecond, cfg.Worker.InitialRestartDelay)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadEnvArgsCommaSplit(t *testing.T) {
	t.Setenv("WORKER_COMMAND", "python3")
	t.Setenv("WORKER_ARGS", "-u, ./scripts/analyzer.py")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"-u", "./scripts/analyzer.py"}, cfg.Worker.Args)
}

func TestLoadIgnoresUnrelatedEnv(t *testing.T) {
	t.Setenv("PATH_INFO", "garbage")
	t.Setenv("WORKER", "garbage")

	_, err := Load()
	assert.NoError(t, err)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlBody := []byte(`
worker:
  command: python3
  args:
    - ./analysis/worker.py
  max_restarts: 2
  health_check_retry_delay: 500ms
server:
  port: 8181
`)
	require.NoError(t, os.WriteFile(path, yamlBody, 0o600))
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Worker.MaxRestarts)
	assert.Equal(t, 500*time.Millisecond, cfg.Worker.HealthCheckRetryDelay)
	assert.Equal(t, 8181, cfg.Server.Port)
	// Untouched fields keep their defaults.
	assert.Equal(t, 5*time.Second, cfg.Worker.PollInterval)
}

func TestEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 8181\n"), 0o600))
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "9999")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"zero max restarts is allowed", func(c *Config) { c.Worker.MaxRestarts = 0 }, ""},
		{"empty command", func(c *Config) { c.Worker.Command = "" }, "worker.command"},
		{"negative max restarts", func(c *Config) { c.Worker.MaxRestarts = -1 }, "worker.max_restarts"},
		{"zero restart delay", func(c *Config) { c.Worker.InitialRestartDelay = 0 }, "worker.initial_restart_delay"},
		{"zero poll interval", func(c *Config) { c.Worker.PollInterval = 0 }, "worker.poll_interval"},
		{"zero probe retries", func(c *Config) { c.Worker.HealthCheckMaxRetries = 0 }, "worker.health_check_max_retries"},
		{"zero probe timeout", func(c *Config) { c.Worker.HealthCheckTimeout = 0 }, "worker.health_check_timeout"},
		{"zero retry delay", func(c *Config) { c.Worker.HealthCheckRetryDelay = 0 }, "worker.health_check_retry_delay"},
		{"bad health URL", func(c *Config) { c.Worker.HealthCheckURL = "not a url" }, "health_check_url"},
		{"port too small", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"zero server timeout", func(c *Config) { c.Server.Timeout = 0 }, "server.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
