// Package app wires the pipeline together: configuration, feed fetching,
// matching, deduplication and digest rendering for one run.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harborne/mentionwatch/internal/config"
	"github.com/harborne/mentionwatch/internal/dedup"
	"github.com/harborne/mentionwatch/internal/digest"
	"github.com/harborne/mentionwatch/internal/feed"
	"github.com/harborne/mentionwatch/internal/logger"
	"github.com/harborne/mentionwatch/internal/match"
	"github.com/harborne/mentionwatch/internal/metrics"
	"github.com/harborne/mentionwatch/internal/scraper"
	"github.com/harborne/mentionwatch/internal/watchlist"
)

// Run executes one complete pipeline pass. No failure below the
// configuration layer is fatal: a feed that cannot be fetched contributes
// nothing, and the worst outcome is an empty digest, which is still written
// and reported.
func Run(ctx context.Context, cfg *config.Config) error {
	started := time.Now()
	defer func() {
		metrics.Global.RecordProcessingTime(time.Since(started))
		metrics.Global.SetLastRun()
	}()

	wl, err := watchlist.Load(cfg.WatchlistPath)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}
	feedsCfg, err := feed.LoadSources(cfg.FeedsPath)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}
	sources := feed.BuildSources(feedsCfg, wl.Entities)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("load timezone: %w", err)
	}
	target := time.Now().In(loc)
	if cfg.TargetDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", cfg.TargetDate, loc)
		if err != nil {
			metrics.Global.SetError(err.Error())
			return fmt.Errorf("parse target date: %w", err)
		}
		target = parsed
	}

	strategy, window := buildStrategy(cfg, wl, target, loc)

	fetcher := feed.NewFetcher(strategy, window, feed.Options{
		MaxPerFeed:       cfg.MaxItemsPerFeed,
		SummaryChars:     cfg.SummaryChars,
		AggregatorDomain: wl.AggregatorDomain,
		Timeout:          cfg.FeedTimeout,
	})

	logger.Info("run starting",
		"strategy", strategy.Name(),
		"date", target.Format("2006-01-02"),
		"sources", len(sources))

	var all []feed.MatchedItem
	for _, src := range sources {
		all = append(all, fetcher.Fetch(ctx, src)...)
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	logger.Info("feeds collected", "raw_matches", len(all))

	opts := dedup.Options{MaxResults: cfg.MaxResults}
	if cfg.Strategy == config.StrategyMultiEntity {
		// Aggregator fingerprint pooling is only used where aggregator
		// search feeds are part of the source mix.
		opts.AggregatorDomain = wl.AggregatorDomain
	}
	items := dedup.Dedupe(all, opts)

	d := digest.Assemble(cfg.DigestTitle, items, target, cfg.Timezone, len(sources))

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(cfg.OutDir, digest.Filename(target))
	renderer := digest.NewPDFRenderer(wl, cfg.Strategy == config.StrategyMultiEntity)
	if err := renderer.Render(d, path); err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}

	logger.Info("digest written", "matches", len(items), "path", path)
	return nil
}

// buildStrategy returns the configured matcher and its time window. The
// multi-entity digest filters by local calendar date; the first-match digest
// uses the equivalent UTC day range.
func buildStrategy(cfg *config.Config, wl *watchlist.Watchlist, target time.Time, loc *time.Location) (match.Strategy, feed.Window) {
	switch cfg.Strategy {
	case config.StrategyFirstMatch:
		budget := match.NewFetchBudget(cfg.BodyFetchBudget)
		bodies := scraper.New(cfg.ArticleTimeout, cfg.MaxArticleBytes)
		return match.NewFirstMatch(wl, cfg.FuzzyThreshold, budget, meteredFetcher{bodies}),
			feed.NewDayRange(target, loc)
	default:
		return match.NewMultiEntity(wl.Entities, cfg.FuzzyThreshold),
			feed.NewDateWindow(target, loc)
	}
}

// meteredFetcher counts body fetches without the scraper knowing about
// metrics.
type meteredFetcher struct {
	inner match.BodyFetcher
}

func (m meteredFetcher) FetchText(url string) string {
	metrics.Global.IncrementBodyFetches()
	return m.inner.FetchText(url)
}
