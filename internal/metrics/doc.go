// Pulseboard - Community Posts with Sentiment Analysis
// Copyright 2026 Pulseboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseboard/pulseboard

// Package metrics provides Prometheus instrumentation for Pulseboard.
//
// Metrics are registered with the default registry via promauto at package
// load and exposed through the /metrics endpoint on the diagnostics server.
// The worker supervisor records process lifecycle events (spawns, restarts,
// budget consumption) and health probe outcomes here.
package metrics
