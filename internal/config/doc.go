// Pulseboard - Community Posts with Sentiment Analysis
// Copyright 2026 Pulseboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseboard/pulseboard

// Package config loads and validates Pulseboard server configuration.
//
// Configuration is layered with Koanf v2: built-in defaults, then an
// optional YAML config file, then environment variables, with later layers
// winning. Every knob has a working default, so a bare
//
//	cfg, err := config.Load()
//
// produces a usable configuration that launches the analysis worker with
// the stock command and supervises it against http://127.0.0.1:5001/health.
package config
