// Package config loads runtime settings from the environment with sensible
// defaults. Structured data (feeds, watchlist) lives in YAML files referenced
// from here.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Strategy names accepted by MENTIONWATCH_STRATEGY.
const (
	StrategyMultiEntity = "multi-entity"
	StrategyFirstMatch  = "first-match"
)

type Config struct {
	// Matching
	Strategy       string
	FuzzyThreshold int // 0 selects the strategy default

	// Time window
	Timezone   string
	TargetDate string // YYYY-MM-DD, empty means today

	// Data files and output
	FeedsPath     string
	WatchlistPath string
	OutDir        string
	DigestTitle   string

	// Collection limits
	MaxItemsPerFeed int
	MaxResults      int
	SummaryChars    int

	// Body fetch
	BodyFetchBudget int
	ArticleTimeout  time.Duration
	MaxArticleBytes int64

	// App
	FeedTimeout time.Duration
	Debug       bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Strategy:        StrategyMultiEntity,
		Timezone:        "Europe/London",
		FeedsPath:       "configs/feeds.yaml",
		WatchlistPath:   "configs/watchlist.yaml",
		OutDir:          "out",
		DigestTitle:     "Daily Mentions Digest",
		MaxItemsPerFeed: 300,
		MaxResults:      600,
		SummaryChars:    320,
		BodyFetchBudget: 80,
		ArticleTimeout:  12 * time.Second,
		MaxArticleBytes: 2_500_000,
		FeedTimeout:     30 * time.Second,
	}

	if v := os.Getenv("MENTIONWATCH_STRATEGY"); v != "" {
		cfg.Strategy = v
	}
	if v := os.Getenv("MENTIONWATCH_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("MENTIONWATCH_TARGET_DATE"); v != "" {
		cfg.TargetDate = v
	}
	cfg.FeedsPath = getEnvOrDefault("MENTIONWATCH_FEEDS", cfg.FeedsPath)
	cfg.WatchlistPath = getEnvOrDefault("MENTIONWATCH_WATCHLIST", cfg.WatchlistPath)
	cfg.OutDir = getEnvOrDefault("MENTIONWATCH_OUT_DIR", cfg.OutDir)
	cfg.DigestTitle = getEnvOrDefault("MENTIONWATCH_TITLE", cfg.DigestTitle)

	cfg.FuzzyThreshold = getEnvIntOrDefault("MENTIONWATCH_FUZZY_THRESHOLD", cfg.FuzzyThreshold)
	cfg.MaxItemsPerFeed = getEnvIntOrDefault("MENTIONWATCH_MAX_PER_FEED", cfg.MaxItemsPerFeed)
	cfg.MaxResults = getEnvIntOrDefault("MENTIONWATCH_MAX_RESULTS", cfg.MaxResults)
	cfg.SummaryChars = getEnvIntOrDefault("MENTIONWATCH_SUMMARY_CHARS", cfg.SummaryChars)
	cfg.BodyFetchBudget = getEnvIntOrDefault("MENTIONWATCH_BODY_BUDGET", cfg.BodyFetchBudget)

	if v := getEnvIntOrDefault("MENTIONWATCH_ARTICLE_TIMEOUT_SECONDS", 0); v > 0 {
		cfg.ArticleTimeout = time.Duration(v) * time.Second
	}
	if v := getEnvIntOrDefault("MENTIONWATCH_MAX_ARTICLE_BYTES", 0); v > 0 {
		cfg.MaxArticleBytes = int64(v)
	}
	if v := getEnvIntOrDefault("MENTIONWATCH_FEED_TIMEOUT_SECONDS", 0); v > 0 {
		cfg.FeedTimeout = time.Duration(v) * time.Second
	}
	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	// The first-match strategy historically uses a tighter per-feed cap:
	// a single hit decides the item, so fewer entries need scanning.
	if cfg.Strategy == StrategyFirstMatch && os.Getenv("MENTIONWATCH_MAX_PER_FEED") == "" {
		cfg.MaxItemsPerFeed = 120
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.Strategy != StrategyMultiEntity && c.Strategy != StrategyFirstMatch {
		return fmt.Errorf("strategy must be %q or %q, got %q",
			StrategyMultiEntity, StrategyFirstMatch, c.Strategy)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if c.TargetDate != "" {
		if _, err := time.Parse("2006-01-02", c.TargetDate); err != nil {
			return fmt.Errorf("target date must be YYYY-MM-DD: %w", err)
		}
	}
	if c.BodyFetchBudget < 0 {
		return fmt.Errorf("body fetch budget must not be negative")
	}
	return nil
}
