package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every knob the pipeline needs. There are no package-level
// globals; the loaded value is passed into each component at construction.
type Config struct {
	StartURL   string
	BaseURL    string
	OutputFile string
	Headless   bool
	LogLevel   string

	// Per-navigation timeout for detail pages and the element wait that
	// follows it.
	PageTimeout time.Duration
	// Timeout for the initial directory page load (and its one fallback).
	DirectoryTimeout time.Duration
	// Pause after the content marker appears, letting deferred content settle.
	SettlePause time.Duration

	RetryAttempts  int
	BackoffInitial time.Duration
	BackoffMax     time.Duration
}

// Load reads configuration from the environment, with an optional .env file,
// falling back to the defaults of the production scrape target.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		StartURL:         getEnv("SPEAKERS_START_URL", "https://www.alternatives.org.uk/experts"),
		BaseURL:          getEnv("SPEAKERS_BASE_URL", "https://www.alternatives.org.uk"),
		OutputFile:       getEnv("SPEAKERS_OUTPUT_FILE", "speakers.xlsx"),
		Headless:         getEnvBool("SPEAKERS_HEADLESS", true),
		LogLevel:         getEnv("SPEAKERS_LOG_LEVEL", "info"),
		PageTimeout:      getEnvDuration("SPEAKERS_PAGE_TIMEOUT", 5*time.Second),
		DirectoryTimeout: getEnvDuration("SPEAKERS_DIRECTORY_TIMEOUT", 30*time.Second),
		SettlePause:      getEnvDuration("SPEAKERS_SETTLE_PAUSE", 200*time.Millisecond),
		RetryAttempts:    getEnvInt("SPEAKERS_RETRY_ATTEMPTS", 3),
		BackoffInitial:   getEnvDuration("SPEAKERS_BACKOFF_INITIAL", time.Second),
		BackoffMax:       getEnvDuration("SPEAKERS_BACKOFF_MAX", 10*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.StartURL == "" {
		return fmt.Errorf("start URL is required")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output file is required")
	}
	if c.RetryAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1, got %d", c.RetryAttempts)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
