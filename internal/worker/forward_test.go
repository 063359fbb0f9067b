// Pulseboard - Community Posts with Sentiment Analysis
// Copyright 2026 Pulseboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseboard/pulseboard

package worker

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseboard/pulseboard/internal/logging"
)

func TestForwardLogsStdoutAtInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewTestLogger(&buf)

	forwardLogs(strings.NewReader("loading model\nmodel ready\n"), "stdout", logger)

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"level":"info"`)
	assert.Contains(t, lines[0], `"stream":"stdout"`)
	assert.Contains(t, lines[0], "loading model")
	assert.Contains(t, lines[1], "model ready")
}

func TestForwardLogsStderrAtWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewTestLogger(&buf)

	forwardLogs(strings.NewReader("deprecation warning\n"), "stderr", logger)

	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"stream":"stderr"`)
	assert.Contains(t, out, "deprecation warning")
}

func TestForwardLogsTerminatesOnPipeClose(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewTestLogger(&buf)

	pr, pw := io.Pipe()
	done := make(chan struct{})
	go func() {
		forwardLogs(pr, "stdout", logger)
		close(done)
	}()

	_, err := pw.Write([]byte("one line\n"))
	require.NoError(t, err)
	require.NoError(t, pw.Close())

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("forwardLogs did not return after pipe close")
	}
	assert.Contains(t, buf.String(), "one line")
}

func TestForwardLogsEmptyStream(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewTestLogger(&buf)

	forwardLogs(strings.NewReader(""), "stdout", logger)

	assert.Empty(t, buf.String())
}
