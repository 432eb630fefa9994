package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://www.alternatives.org.uk/experts", cfg.StartURL)
	assert.Equal(t, "https://www.alternatives.org.uk", cfg.BaseURL)
	assert.Equal(t, "speakers.xlsx", cfg.OutputFile)
	assert.True(t, cfg.Headless)
	assert.Equal(t, 5*time.Second, cfg.PageTimeout)
	assert.Equal(t, 30*time.Second, cfg.DirectoryTimeout)
	assert.Equal(t, 200*time.Millisecond, cfg.SettlePause)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, time.Second, cfg.BackoffInitial)
	assert.Equal(t, 10*time.Second, cfg.BackoffMax)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SPEAKERS_START_URL", "https://other.example/list")
	t.Setenv("SPEAKERS_RETRY_ATTEMPTS", "5")
	t.Setenv("SPEAKERS_PAGE_TIMEOUT", "8s")
	t.Setenv("SPEAKERS_HEADLESS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://other.example/list", cfg.StartURL)
	assert.Equal(t, 5, cfg.RetryAttempts)
	assert.Equal(t, 8*time.Second, cfg.PageTimeout)
	assert.False(t, cfg.Headless)
}

func TestLoadIgnoresMalformedEnvValues(t *testing.T) {
	t.Setenv("SPEAKERS_RETRY_ATTEMPTS", "lots")
	t.Setenv("SPEAKERS_PAGE_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, 5*time.Second, cfg.PageTimeout)
}

func TestValidate(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.RetryAttempts = 0
	assert.Error(t, cfg.Validate())

	cfg.RetryAttempts = 1
	cfg.StartURL = ""
	assert.Error(t, cfg.Validate())
}
