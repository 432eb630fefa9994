// Package pipeline drives the end-to-end scrape: render the directory page,
// parse its cards, enrich each card from its detail page and post-process
// the result set for the report.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/go-scripts/speakers/internal/config"
	"github.com/go-scripts/speakers/internal/fetcher"
	"github.com/go-scripts/speakers/internal/parser"
	"github.com/go-scripts/speakers/internal/renderer"
	"github.com/go-scripts/speakers/internal/types"
)

// Extra settle after the directory page's content marker appears; the
// listing loads a larger batch of deferred content than a detail page.
const directorySettle = 500 * time.Millisecond

const progressEvery = 10

// Pipeline owns one scrape run. The renderer is shared with the fetcher and
// stays open for the whole run; closing it is the caller's job.
type Pipeline struct {
	cfg      *config.Config
	renderer renderer.Renderer
	fetcher  *fetcher.Fetcher
	logger   *log.Logger

	// onProgress, when set, is called after every enriched record.
	onProgress func(done, total int, name string)
}

// New wires a Pipeline from its collaborators.
func New(cfg *config.Config, r renderer.Renderer, logger *log.Logger) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		renderer: r,
		fetcher:  fetcher.New(r, cfg, parser.ContentSelector, logger),
		logger:   logger,
	}
}

// OnProgress registers a per-record progress callback.
func (p *Pipeline) OnProgress(fn func(done, total int, name string)) {
	p.onProgress = fn
}

// enrichResult is the outcome of one detail fetch+parse. The enrich loop
// inspects it explicitly; a failure degrades the record, never the run.
type enrichResult struct {
	about string
	err   error
}

// Run executes the whole pipeline and returns the normalized, deduplicated
// speaker set in directory order. Only the directory load can fail the run;
// per-record enrichment failures degrade to an empty biography.
func (p *Pipeline) Run(ctx context.Context) ([]types.Speaker, error) {
	html, err := p.loadDirectory(ctx)
	if err != nil {
		return nil, err
	}

	cards := parser.ParseCards(html, p.cfg.BaseURL)
	p.logger.Info("parsed directory page", "speakers", len(cards))

	speakers := make([]types.Speaker, 0, len(cards))
	for i, card := range cards {
		var about string
		if card.DetailURL != "" {
			res := p.enrichDetail(ctx, card.DetailURL)
			if res.err != nil {
				p.logger.Warn("detail page failed, keeping empty biography",
					"name", card.Name, "url", card.DetailURL, "err", res.err)
			} else {
				about = res.about
			}
		}

		speakers = append(speakers, types.Speaker{
			Name:     card.Name,
			FirstTag: card.FirstTag,
			LastTag:  card.LastTag,
			About:    about,
		})

		if (i+1)%progressEvery == 0 {
			p.logger.Info("progress", "processed", i+1, "total", len(cards))
		}
		if p.onProgress != nil {
			p.onProgress(i+1, len(cards), card.Name)
		}
	}

	return Dedupe(Normalize(speakers)), nil
}

// loadDirectory renders the directory page, waiting for the row marker
// first and falling back once to a plain body-ready wait on timeout.
func (p *Pipeline) loadDirectory(ctx context.Context) (string, error) {
	p.logger.Info("loading directory page", "url", p.cfg.StartURL)

	strict := renderer.RenderOptions{
		WaitSelector: parser.RowSelector,
		Timeout:      p.cfg.DirectoryTimeout,
		Settle:       directorySettle,
	}
	html, err := p.renderer.Render(ctx, p.cfg.StartURL, strict)
	if err == nil {
		return html, nil
	}

	p.logger.Warn("directory load timed out, retrying with looser wait", "err", err)
	loose := renderer.RenderOptions{Timeout: p.cfg.DirectoryTimeout}
	html, err = p.renderer.Render(ctx, p.cfg.StartURL, loose)
	if err != nil {
		return "", fmt.Errorf("load directory page %s: %w", p.cfg.StartURL, err)
	}
	return html, nil
}

func (p *Pipeline) enrichDetail(ctx context.Context, url string) enrichResult {
	html, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return enrichResult{err: err}
	}
	return enrichResult{about: parser.ParseAbout(html)}
}
