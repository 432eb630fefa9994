package main

import (
	"context"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/go-scripts/speakers/internal/config"
	"github.com/go-scripts/speakers/internal/pipeline"
	"github.com/go-scripts/speakers/internal/progress"
	"github.com/go-scripts/speakers/internal/renderer"
	"github.com/go-scripts/speakers/internal/report"
)

// CLIFlags override the environment-backed configuration.
type CLIFlags struct {
	URL      string `help:"Directory page URL to scrape." short:"u"`
	Base     string `help:"Base URL for resolving relative detail links." short:"b"`
	Out      string `help:"Output spreadsheet path." short:"o"`
	LogLevel string `help:"Log level: debug, info, warn or error."`
	Headful  bool   `help:"Run the browser with a visible window."`
}

func main() {
	var flags CLIFlags
	kong.Parse(&flags,
		kong.Name("speakers"),
		kong.Description("Scrape the speaker directory into a styled spreadsheet."))

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}
	if flags.URL != "" {
		cfg.StartURL = flags.URL
	}
	if flags.Base != "" {
		cfg.BaseURL = flags.Base
	}
	if flags.Out != "" {
		cfg.OutputFile = flags.Out
	}
	if flags.LogLevel != "" {
		cfg.LogLevel = flags.LogLevel
	}
	if flags.Headful {
		cfg.Headless = false
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "speakers",
	})
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	chrome := renderer.NewChrome(cfg.Headless)
	defer chrome.Close()

	pipe := pipeline.New(cfg, chrome, logger)
	tracker := progress.New()
	pipe.OnProgress(tracker.Update)

	tracker.Start()
	speakers, err := pipe.Run(context.Background())
	tracker.Stop()
	if err != nil {
		logger.Fatal("scrape failed", "err", err)
	}

	writer := report.NewWriter(cfg.OutputFile, cfg.StartURL)
	if err := writer.Write(speakers, time.Now()); err != nil {
		logger.Fatal("writing spreadsheet failed", "err", err)
	}
	logger.Info("saved speakers", "count", len(speakers), "file", cfg.OutputFile)
}
