// Pulseboard - Community Posts with Sentiment Analysis
// Copyright 2026 Pulseboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseboard/pulseboard

package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSlogHandlerLevels(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	logger := NewSlogLogger()
	logger.Debug("d")
	logger.Info("i")
	logger.Warn("w")
	logger.Error("e")

	out := buf.String()
	for _, level := range []string{"debug", "info", "warn", "error"} {
		if !strings.Contains(out, `"level":"`+level+`"`) {
			t.Errorf("missing %s record in output: %q", level, out)
		}
	}
}

func TestSlogHandlerAttrs(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	logger := NewSlogLogger().With("service", "analysis-worker")
	logger.Info("restarting", slog.Int("attempt", 3))

	out := buf.String()
	if !strings.Contains(out, `"service":"analysis-worker"`) {
		t.Errorf("missing pre-configured attr: %q", out)
	}
	if !strings.Contains(out, `"attempt":3`) {
		t.Errorf("missing record attr: %q", out)
	}
}

func TestSlogHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	logger := NewSlogLogger().WithGroup("worker")
	logger.Info("probe", slog.String("url", "http://localhost:5001/health"))

	if !strings.Contains(buf.String(), `"worker.url"`) {
		t.Errorf("group prefix missing: %q", buf.String())
	}
}
