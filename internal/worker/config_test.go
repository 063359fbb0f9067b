// Pulseboard - Community Posts with Sentiment Analysis
// Copyright 2026 Pulseboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseboard/pulseboard

package worker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigWithDefaults(t *testing.T) {
	def := DefaultConfig()

	t.Run("zero config gets the stock worker", func(t *testing.T) {
		cfg := Config{}.withDefaults()
		assert.Equal(t, def.Command, cfg.Command)
		assert.Equal(t, def.Args, cfg.Args)
		assert.Equal(t, def.InitialRestartDelay, cfg.InitialRestartDelay)
		assert.Equal(t, def.PollInterval, cfg.PollInterval)
		assert.Equal(t, def.HealthCheckURL, cfg.HealthCheckURL)
		assert.Equal(t, def.HealthCheckTimeout, cfg.HealthCheckTimeout)
		assert.Equal(t, def.HealthCheckMaxRetries, cfg.HealthCheckMaxRetries)
		assert.Equal(t, def.HealthCheckRetryDelay, cfg.HealthCheckRetryDelay)
	})

	t.Run("max restarts is taken as given", func(t *testing.T) {
		// Zero is a real budget (never restart), not an absent value.
		cfg := Config{MaxRestarts: 0}.withDefaults()
		assert.Equal(t, 0, cfg.MaxRestarts)

		cfg = Config{MaxRestarts: 7}.withDefaults()
		assert.Equal(t, 7, cfg.MaxRestarts)
	})

	t.Run("custom command keeps its own args", func(t *testing.T) {
		cfg := Config{Command: "/opt/analysis/worker"}.withDefaults()
		assert.Equal(t, "/opt/analysis/worker", cfg.Command)
		assert.Nil(t, cfg.Args, "stock script must not be handed to a custom command")
	})

	t.Run("set fields survive", func(t *testing.T) {
		cfg := Config{PollInterval: 250 * time.Millisecond}.withDefaults()
		assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	})
}
