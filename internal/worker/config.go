// Pulseboard - Community Posts with Sentiment Analysis
// Copyright 2026 Pulseboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseboard/pulseboard

package worker

import "time"

// Config holds the immutable parameters for a worker supervisor.
// It is set once at construction and never mutated.
type Config struct {
	// Command is the interpreter or executable used to launch the worker.
	// The worker is killed without warning on shutdown and restart, so it
	// must not rely on flushing state at exit.
	Command string

	// Args are passed to Command, typically the worker script path.
	Args []string

	// MaxRestarts is the cumulative restart budget for this supervisor's
	// lifetime. It is never replenished: a worker that crashes occasionally
	// over a long host run will eventually exhaust it permanently.
	MaxRestarts int

	// InitialRestartDelay seeds the exponential backoff between restarts.
	InitialRestartDelay time.Duration

	// PollInterval is how often the monitor loop checks process liveness.
	PollInterval time.Duration

	// HealthCheckURL is the worker's readiness endpoint. The contract is
	// "2xx with a JSON body"; body fields are opaque diagnostics.
	HealthCheckURL string

	// HealthCheckTimeout bounds a single probe.
	HealthCheckTimeout time.Duration

	// HealthCheckMaxRetries is the number of probes attempted while waiting
	// for the worker to become ready during Start.
	HealthCheckMaxRetries int

	// HealthCheckRetryDelay is the fixed pause between readiness probes.
	HealthCheckRetryDelay time.Duration
}

// DefaultConfig returns a Config that supervises the stock analysis worker.
func DefaultConfig() Config {
	return Config{
		Command:               "python3",
		Args:                  []string{"./analysis/worker.py"},
		MaxRestarts:           5,
		InitialRestartDelay:   1 * time.Second,
		PollInterval:          5 * time.Second,
		HealthCheckURL:        "http://127.0.0.1:5001/health",
		HealthCheckTimeout:    2 * time.Second,
		HealthCheckMaxRetries: 10,
		HealthCheckRetryDelay: 1 * time.Second,
	}
}

// withDefaults fills unset launch and health-probe fields with defaults,
// mirroring how the suture tree config treats partially populated specs.
// MaxRestarts is deliberately left alone: zero is a meaningful budget
// (never restart), not an absent value. Args only default together with
// Command, so a custom command is never handed the stock script.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Command == "" {
		c.Command = def.Command
		if c.Args == nil {
			c.Args = def.Args
		}
	}
	if c.InitialRestartDelay <= 0 {
		c.InitialRestartDelay = def.InitialRestartDelay
	}
	if c.PollInterval <= 0 {
		c.PollInterval = def.PollInterval
	}
	if c.HealthCheckURL == "" {
		c.HealthCheckURL = def.HealthCheckURL
	}
	if c.HealthCheckTimeout <= 0 {
		c.HealthCheckTimeout = def.HealthCheckTimeout
	}
	if c.HealthCheckMaxRetries < 1 {
		c.HealthCheckMaxRetries = def.HealthCheckMaxRetries
	}
	if c.HealthCheckRetryDelay <= 0 {
		c.HealthCheckRetryDelay = def.HealthCheckRetryDelay
	}
	return c
}
