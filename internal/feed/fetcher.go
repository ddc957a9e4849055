package feed

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/harborne/mentionwatch/internal/logger"
	"github.com/harborne/mentionwatch/internal/match"
	"github.com/harborne/mentionwatch/internal/metrics"
	"github.com/harborne/mentionwatch/internal/textnorm"
	"github.com/harborne/mentionwatch/internal/urlcanon"
)

const (
	// DefaultMaxPerFeed bounds entries examined per feed; busy days on
	// high-volume outlets can exceed small caps.
	DefaultMaxPerFeed = 300

	// DefaultSummaryChars is the display budget for truncated summaries.
	DefaultSummaryChars = 320

	feedUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// MatchedItem is a feed entry that survived window filtering and matching.
// Immutable once created; held in memory for the run's lifetime only.
type MatchedItem struct {
	Source      string
	Title       string
	Summary     string
	Link        string
	Published   string
	PublishedAt time.Time
	Hits        []string
}

// Fetcher retrieves one feed at a time and turns in-window, matching entries
// into MatchedItems.
type Fetcher struct {
	parser       *gofeed.Parser
	strategy     match.Strategy
	window       Window
	maxPerFeed   int
	summaryChars int
	aggregator   string
}

// Options tune a Fetcher; zero values select defaults.
type Options struct {
	MaxPerFeed   int
	SummaryChars int
	// AggregatorDomain enables unwrapping of aggregator redirect links.
	AggregatorDomain string
	// Timeout bounds one feed download.
	Timeout time.Duration
}

// NewFetcher builds a fetcher applying strategy to entries inside window.
func NewFetcher(strategy match.Strategy, window Window, opts Options) *Fetcher {
	if opts.MaxPerFeed <= 0 {
		opts.MaxPerFeed = DefaultMaxPerFeed
	}
	if opts.SummaryChars <= 0 {
		opts.SummaryChars = DefaultSummaryChars
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	parser := gofeed.NewParser()
	parser.UserAgent = feedUserAgent
	parser.Client = &http.Client{Timeout: opts.Timeout}

	return &Fetcher{
		parser:       parser,
		strategy:     strategy,
		window:       window,
		maxPerFeed:   opts.MaxPerFeed,
		summaryChars: opts.SummaryChars,
		aggregator:   opts.AggregatorDomain,
	}
}

// Fetch downloads and filters one feed. Failures are logged and yield an
// empty contribution; they never abort the run.
func (f *Fetcher) Fetch(ctx context.Context, src Source) []MatchedItem {
	parsed, err := f.parser.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		logger.Warn("feed fetch failed", "feed", src.Name, "error", err)
		metrics.Global.IncrementFeedErrors()
		return nil
	}
	metrics.Global.IncrementFeedsFetched()

	var out []MatchedItem
	for i, entry := range parsed.Items {
		if i >= f.maxPerFeed {
			break
		}
		metrics.Global.IncrementEntriesSeen()

		// Published metadata with updated as fallback; entries carrying
		// neither are dropped, never assumed to be in-window.
		ts := entry.PublishedParsed
		if ts == nil {
			ts = entry.UpdatedParsed
		}
		if ts == nil {
			continue
		}
		if !f.window.Contains(*ts) {
			continue
		}
		metrics.Global.IncrementEntriesInWindow()

		title := strings.TrimSpace(entry.Title)
		summary := strings.TrimSpace(entry.Description)
		if summary == "" {
			summary = strings.TrimSpace(entry.Content)
		}
		link := urlcanon.UnwrapAggregator(strings.TrimSpace(entry.Link), f.aggregator)
		published := strings.TrimSpace(entry.Published)
		if published == "" {
			published = strings.TrimSpace(entry.Updated)
		}

		hits := f.strategy.Match(match.Item{Title: title, Summary: summary, Link: link})
		if len(hits) == 0 {
			continue
		}
		metrics.Global.IncrementItemsMatched()

		out = append(out, MatchedItem{
			Source:      src.Name,
			Title:       textnorm.StripHTML(title),
			Summary:     textnorm.Truncate(textnorm.StripHTML(summary), f.summaryChars),
			Link:        link,
			Published:   published,
			PublishedAt: ts.UTC(),
			Hits:        hits,
		})
	}

	logger.Debug("feed processed", "feed", src.Name, "matches", len(out))
	return out
}
