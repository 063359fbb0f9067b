// Pulseboard - Community Posts with Sentiment Analysis
// Copyright 2026 Pulseboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseboard/pulseboard

package worker

import (
	"bufio"
	"io"

	"github.com/rs/zerolog"
)

// maxLogLine bounds a single forwarded line. Longer lines are split by the
// scanner rather than dropped.
const maxLogLine = 256 * 1024

// forwardLogs drains r line by line into logger, tagging each line with the
// originating stream. Worker stdout is forwarded at info level, stderr at
// warn level.
//
// The function returns when the pipe closes, which happens when the worker
// exits or is killed. It never signals the supervisor; exit detection is the
// monitor loop's job.
func forwardLogs(r io.Reader, stream string, logger zerolog.Logger) {
	level := zerolog.InfoLevel
	if stream == "stderr" {
		level = zerolog.WarnLevel
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLogLine)
	for scanner.Scan() {
		logger.WithLevel(level).Str("stream", stream).Msg(scanner.Text())
	}
	// Scan errors here are almost always the pipe being torn down by a kill
	// or by Wait reaping the process; there is nothing useful to do with them.
}
