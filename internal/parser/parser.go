// Package parser extracts speaker data from rendered HTML. Both parsers
// degrade on malformed markup instead of failing: missing elements become
// empty fields, never errors.
package parser

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/go-scripts/speakers/internal/types"
)

// Structural selectors of the directory and detail pages.
const (
	RowSelector     = "div.views-row"
	ContentSelector = "div.field-content"
)

// Blocks without paragraphs are only kept when their text is longer than
// this, filtering out captions and labels.
const minBlockTextLen = 30

var spaceRe = regexp.MustCompile(`\s+`)

func condense(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// ParseCards returns one Card per directory row, in document order. Relative
// detail links are resolved against baseURL; rows without a usable link get
// an empty DetailURL.
func ParseCards(html, baseURL string) []types.Card {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	var cards []types.Card
	doc.Find(RowSelector).Each(func(_ int, row *goquery.Selection) {
		var card types.Card

		a := row.Find("h3 a").First()
		if a.Length() > 0 {
			card.Name = strings.TrimSpace(a.Text())
			if href, ok := a.Attr("href"); ok && href != "" {
				card.DetailURL = resolve(base, href)
			}
		}

		items := row.Find("ul").First().Find("li")
		if items.Length() > 0 {
			card.FirstTag = strings.TrimSpace(items.First().Text())
			card.LastTag = strings.TrimSpace(items.Last().Text())
		}

		cards = append(cards, card)
	})
	return cards
}

// ParseAbout extracts the biography from a detail page. An empty input
// (failed fetch) yields an empty string. Paragraph text inside content
// blocks is always kept; blocks without paragraphs contribute their own
// text only when it is long enough to be prose rather than a label.
// Units are joined with a blank line, in document order.
func ParseAbout(html string) string {
	if html == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	var parts []string
	doc.Find(ContentSelector).Each(func(_ int, block *goquery.Selection) {
		ps := block.Find("p")
		if ps.Length() > 0 {
			ps.Each(func(_ int, p *goquery.Selection) {
				if text := condense(p.Text()); text != "" {
					parts = append(parts, text)
				}
			})
			return
		}
		if text := condense(block.Text()); len(text) > minBlockTextLen {
			parts = append(parts, text)
		}
	})
	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}

func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}
