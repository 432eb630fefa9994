// Package renderer drives a headless browser to produce fully-rendered HTML
// for JavaScript-heavy pages. Everything downstream works on plain HTML
// strings and never touches the browser directly.
package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.5993.90 Safari/537.36"

// RenderOptions control how a single page load waits before capture.
type RenderOptions struct {
	// WaitSelector is the content marker to wait for after navigation.
	// When empty, the renderer only waits for the document body to be ready.
	WaitSelector string
	// Timeout bounds the whole render: navigation, wait and capture.
	Timeout time.Duration
	// Settle is an extra pause after the marker appears, letting deferred
	// content finish loading before the HTML is captured.
	Settle time.Duration
}

// Renderer loads a URL in a browser-like environment and returns the
// rendered document HTML.
type Renderer interface {
	Render(ctx context.Context, url string, opts RenderOptions) (string, error)
	Close() error
}

// Chrome is a chromedp-backed Renderer. One browser process is shared for
// the lifetime of the value; each Render runs in its own tab, which is
// always released when the call returns.
type Chrome struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// NewChrome launches a headless browser shared by all subsequent renders.
func NewChrome(headless bool) *Chrome {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	return &Chrome{
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}
}

// Render opens a new tab, navigates to url, waits per opts and returns the
// full document HTML. The tab is closed on every path.
func (c *Chrome) Render(ctx context.Context, url string, opts RenderOptions) (string, error) {
	tabCtx, cancel := chromedp.NewContext(c.browserCtx)
	defer cancel()

	if opts.Timeout > 0 {
		var tcancel context.CancelFunc
		tabCtx, tcancel = context.WithTimeout(tabCtx, opts.Timeout)
		defer tcancel()
	}

	// Stop early if the caller's context is done.
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-tabCtx.Done():
		}
	}()

	tasks := chromedp.Tasks{chromedp.Navigate(url)}
	if opts.WaitSelector != "" {
		tasks = append(tasks, chromedp.WaitVisible(opts.WaitSelector, chromedp.ByQuery))
	} else {
		tasks = append(tasks, chromedp.WaitReady("body", chromedp.ByQuery))
	}
	if opts.Settle > 0 {
		tasks = append(tasks, chromedp.Sleep(opts.Settle))
	}

	var html string
	tasks = append(tasks, chromedp.OuterHTML("html", &html, chromedp.ByQuery))

	if err := chromedp.Run(tabCtx, tasks); err != nil {
		return "", fmt.Errorf("render %s: %w", url, err)
	}
	return html, nil
}

// Close tears down the shared browser. Safe to call more than once.
func (c *Chrome) Close() error {
	c.browserCancel()
	c.allocCancel()
	return nil
}
