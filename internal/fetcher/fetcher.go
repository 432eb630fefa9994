// Package fetcher wraps the renderer with bounded retry for single-page
// fetches. Detail pages are flaky enough that one navigation timeout should
// not cost the record its biography.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/go-scripts/speakers/internal/config"
	"github.com/go-scripts/speakers/internal/renderer"
)

// ErrRetriesExhausted marks a fetch whose every attempt failed.
var ErrRetriesExhausted = errors.New("retries exhausted")

// Fetcher fetches one rendered page at a time, retrying with exponential
// backoff. Attempts and backoff bounds come from the configuration.
type Fetcher struct {
	renderer renderer.Renderer
	logger   *log.Logger

	waitSelector string
	timeout      time.Duration
	settle       time.Duration

	attempts       int
	backoffInitial time.Duration
	backoffMax     time.Duration
}

// New creates a Fetcher waiting for waitSelector on every fetched page.
func New(r renderer.Renderer, cfg *config.Config, waitSelector string, logger *log.Logger) *Fetcher {
	return &Fetcher{
		renderer:       r,
		logger:         logger,
		waitSelector:   waitSelector,
		timeout:        cfg.PageTimeout,
		settle:         cfg.SettlePause,
		attempts:       cfg.RetryAttempts,
		backoffInitial: cfg.BackoffInitial,
		backoffMax:     cfg.BackoffMax,
	}
}

// Fetch returns the rendered HTML for url. On failure the whole fetch is
// retried, up to the configured attempt count, sleeping between attempts
// with doubling backoff. When every attempt fails the last error is
// surfaced wrapped in ErrRetriesExhausted; no partial data is returned.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	opts := renderer.RenderOptions{
		WaitSelector: f.waitSelector,
		Timeout:      f.timeout,
		Settle:       f.settle,
	}

	var lastErr error
	wait := f.backoffInitial
	for attempt := 1; attempt <= f.attempts; attempt++ {
		html, err := f.renderer.Render(ctx, url, opts)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt < f.attempts {
			f.logger.Warn("fetch attempt failed, retrying",
				"url", url, "attempt", attempt, "backoff", wait, "err", err)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			wait *= 2
			if wait > f.backoffMax {
				wait = f.backoffMax
			}
		}
	}

	return "", fmt.Errorf("fetch %s after %d attempts: %w: %w", url, f.attempts, ErrRetriesExhausted, lastErr)
}
