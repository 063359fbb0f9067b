// Pulseboard - Community Posts with Sentiment Analysis
// Copyright 2026 Pulseboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseboard/pulseboard

package worker

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/pulseboard/pulseboard/internal/metrics"
)

// maxDiagnosticsBody bounds how much of a health response body is read.
const maxDiagnosticsBody = 64 * 1024

// Diagnostics is the free-form JSON payload returned by the worker's health
// endpoint. Fields are logged but never validated against a schema; a worker
// that returns an empty object is still healthy.
type Diagnostics map[string]interface{}

// Status returns the conventional "status" field if the worker sent one.
func (d Diagnostics) Status() string {
	if s, ok := d["status"].(string); ok {
		return s
	}
	return ""
}

// HealthChecker probes the worker's HTTP readiness endpoint.
type HealthChecker struct {
	url        string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	client     *http.Client
	logger     zerolog.Logger
}

// NewHealthChecker creates a checker for the given supervisor config.
func NewHealthChecker(cfg Config, logger zerolog.Logger) *HealthChecker {
	return &HealthChecker{
		url:        cfg.HealthCheckURL,
		timeout:    cfg.HealthCheckTimeout,
		maxRetries: cfg.HealthCheckMaxRetries,
		retryDelay: cfg.HealthCheckRetryDelay,
		client:     &http.Client{},
		logger:     logger,
	}
}

// Probe issues a single liveness probe. It succeeds only on a 2xx response
// carrying a parseable JSON body.
func (h *HealthChecker) Probe(ctx context.Context) (Diagnostics, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	diag, err := h.probe(ctx)
	metrics.ObserveHealthCheck(time.Since(start), err)
	return diag, err
}

func (h *HealthChecker) probe(ctx context.Context) (Diagnostics, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("health probe: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("health probe: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("health probe: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDiagnosticsBody))
	if err != nil {
		return nil, fmt.Errorf("health probe: read body: %w", err)
	}

	var diag Diagnostics
	if err := json.Unmarshal(body, &diag); err != nil {
		return nil, fmt.Errorf("health probe: invalid JSON body: %w", err)
	}

	return diag, nil
}

// WaitUntilReady probes at a fixed interval until a probe succeeds or the
// retry budget runs out. Cancelling ctx aborts the wait promptly rather than
// letting it run out the remaining budget.
//
// Returns the diagnostics from the first successful probe, or
// ErrHealthCheckTimeout once maxRetries probes have failed.
func (h *HealthChecker) WaitUntilReady(ctx context.Context) (Diagnostics, error) {
	var diag Diagnostics
	attempt := 0

	operation := func() error {
		attempt++
		d, err := h.Probe(ctx)
		if err != nil {
			h.logger.Debug().
				Int("attempt", attempt).
				Int("max_retries", h.maxRetries).
				Err(err).
				Msg("Worker not ready yet")
			return err
		}
		diag = d
		return nil
	}

	// WithMaxRetries counts retries after the first attempt, so maxRetries
	// probes total.
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(h.retryDelay), uint64(h.maxRetries-1)),
		ctx,
	)

	if err := backoff.Retry(operation, policy); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: last probe error: %v", ErrHealthCheckTimeout, err)
	}

	return diag, nil
}
