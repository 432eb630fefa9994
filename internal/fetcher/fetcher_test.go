package fetcher

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-scripts/speakers/internal/config"
	"github.com/go-scripts/speakers/internal/renderer"
)

var errBoom = errors.New("navigation timed out")

// scriptedRenderer returns its outcomes in order, then keeps repeating the
// last one. A nil error means the fixed html is returned.
type scriptedRenderer struct {
	outcomes []error
	calls    int
}

func (s *scriptedRenderer) Render(_ context.Context, _ string, _ renderer.RenderOptions) (string, error) {
	i := s.calls
	if i >= len(s.outcomes) {
		i = len(s.outcomes) - 1
	}
	s.calls++
	if err := s.outcomes[i]; err != nil {
		return "", err
	}
	return "<html>ok</html>", nil
}

func (s *scriptedRenderer) Close() error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		PageTimeout:    time.Second,
		SettlePause:    0,
		RetryAttempts:  3,
		BackoffInitial: time.Millisecond,
		BackoffMax:     4 * time.Millisecond,
	}
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestFetchFirstAttemptSucceeds(t *testing.T) {
	r := &scriptedRenderer{outcomes: []error{nil}}
	f := New(r, testConfig(), "div.field-content", quietLogger())

	html, err := f.Fetch(context.Background(), "https://x/detail")
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", html)
	assert.Equal(t, 1, r.calls)
}

func TestFetchSucceedsOnThirdAttempt(t *testing.T) {
	r := &scriptedRenderer{outcomes: []error{errBoom, errBoom, nil}}
	f := New(r, testConfig(), "div.field-content", quietLogger())

	html, err := f.Fetch(context.Background(), "https://x/detail")
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", html)
	assert.Equal(t, 3, r.calls, "must not fetch beyond the successful attempt")
}

func TestFetchExhaustsRetries(t *testing.T) {
	r := &scriptedRenderer{outcomes: []error{errBoom}}
	f := New(r, testConfig(), "div.field-content", quietLogger())

	_, err := f.Fetch(context.Background(), "https://x/detail")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 3, r.calls, "exactly the configured attempt count")
}

func TestFetchStopsWhenContextCancelled(t *testing.T) {
	cfg := testConfig()
	cfg.BackoffInitial = time.Minute // would stall the test if backoff ran

	r := &scriptedRenderer{outcomes: []error{errBoom}}
	f := New(r, cfg, "div.field-content", quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Fetch(ctx, "https://x/detail")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, r.calls)
}
