// Pulseboard - Community Posts with Sentiment Analysis
// Copyright 2026 Pulseboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseboard/pulseboard

package worker

import (
	"math"
	"time"
)

// RestartDelay computes the backoff delay before restart attempt n.
// Attempts are numbered from 1: the first restart waits initial, the second
// 2×initial, doubling each attempt.
//
// The delay is uncapped. The growth bound is initial × 2^(MaxRestarts−1),
// which stays small because MaxRestarts is small by configuration; anyone
// raising MaxRestarts past ~30 should revisit this.
func RestartDelay(attempt int, initial time.Duration) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return time.Duration(float64(initial) * math.Pow(2, float64(attempt-1)))
}

// MayRestart reports whether another restart attempt fits within the budget.
func MayRestart(restartCount, maxRestarts int) bool {
	return restartCount < maxRestarts
}
