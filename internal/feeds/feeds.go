// Package feeds collects news headlines from RSS sources and filters them
// down to recent, relevant, deduplicated titles ready for sentiment scoring.
package feeds

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"goldgauge/internal/config"
)

// Headline is a single news item that survived the filter pipeline.
type Headline struct {
	Title       string     `json:"title"`
	Source      string     `json:"source"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// Fetcher pulls configured RSS feeds and extracts relevant headlines.
type Fetcher struct {
	parser   *gofeed.Parser
	limiter  *rate.Limiter
	cfg      *config.FeedsConfig
	keywords []string // lowercased once at construction
}

// NewFetcher creates a headline fetcher from feed configuration.
func NewFetcher(cfg *config.FeedsConfig) *Fetcher {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: cfg.RequestTimeout}

	keywords := make([]string, len(cfg.Keywords))
	for i, kw := range cfg.Keywords {
		keywords[i] = strings.ToLower(kw)
	}

	return &Fetcher{
		parser:   parser,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		cfg:      cfg,
		keywords: keywords,
	}
}

// Collect fetches every configured feed and returns the surviving headlines.
// A failing source is logged and skipped; Collect returns an error only when
// every source failed. Zero surviving headlines from healthy sources is a
// valid outcome.
func (f *Fetcher) Collect(ctx context.Context) ([]Headline, error) {
	cutoff := time.Now().UTC().Add(-f.cfg.RecencyWindow)
	seen := make(map[string]bool)
	headlines := []Headline{}
	failures := 0

	for _, feedURL := range f.cfg.URLs {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("feed collection interrupted: %w", err)
		}

		feed, err := f.fetchOne(ctx, feedURL)
		if err != nil {
			failures++
			log.Warn().
				Err(err).
				Str("feed", feedURL).
				Msg("Feed fetch failed, skipping source")
			continue
		}

		kept := f.filterItems(feed, sourceName(feed, feedURL), cutoff, seen)
		headlines = append(headlines, kept...)

		log.Debug().
			Str("feed", feedURL).
			Int("entries", len(feed.Items)).
			Int("kept", len(kept)).
			Msg("Feed processed")
	}

	if failures == len(f.cfg.URLs) {
		return nil, fmt.Errorf("all %d feed sources failed", failures)
	}

	log.Info().
		Int("headlines", len(headlines)).
		Int("sources_ok", len(f.cfg.URLs)-failures).
		Int("sources_failed", failures).
		Msg("Headline collection complete")

	return headlines, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, f.cfg.RequestTimeout)
	defer cancel()

	feed, err := f.parser.ParseURLWithContext(feedURL, fetchCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	return feed, nil
}

// filterItems applies the pipeline in order: empty title, recency, keyword
// relevance, duplicate title. The seen set is shared across sources so the
// same story syndicated to several feeds counts once.
func (f *Fetcher) filterItems(feed *gofeed.Feed, source string, cutoff time.Time, seen map[string]bool) []Headline {
	var kept []Headline
	for _, item := range feed.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}

		published := item.PublishedParsed
		if published == nil {
			published = item.UpdatedParsed
		}
		// Entries without a usable timestamp are kept rather than guessed at.
		if published != nil && published.Before(cutoff) {
			continue
		}

		lower := strings.ToLower(title)
		if !f.relevant(lower) {
			continue
		}
		if seen[lower] {
			continue
		}
		seen[lower] = true

		kept = append(kept, Headline{
			Title:       title,
			Source:      source,
			PublishedAt: published,
		})
	}
	return kept
}

func (f *Fetcher) relevant(lowerTitle string) bool {
	for _, kw := range f.keywords {
		if strings.Contains(lowerTitle, kw) {
			return true
		}
	}
	return false
}

func sourceName(feed *gofeed.Feed, feedURL string) string {
	if feed.Title != "" {
		return feed.Title
	}
	return feedURL
}

// Titles projects headlines down to their titles in input order.
func Titles(headlines []Headline) []string {
	titles := make([]string, len(headlines))
	for i, h := range headlines {
		titles[i] = h.Title
	}
	return titles
}
