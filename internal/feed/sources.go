// Package feed retrieves and parses RSS/Atom feeds, filters entries to the
// run's time window and applies the entity matcher. One run processes one
// day's backlog; feeds are fetched sequentially in configured order so the
// deduplicator's first-occurrence-wins rule stays deterministic.
package feed

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/harborne/mentionwatch/internal/watchlist"
)

// Source is one named feed.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// GoogleAugment describes per-entity aggregator search feeds added for an
// outlet whose native feeds miss items.
type GoogleAugment struct {
	Site string `yaml:"site"`
}

// SourcesConfig is the feeds YAML file.
type SourcesConfig struct {
	Feeds         []Source      `yaml:"feeds"`
	GoogleAugment GoogleAugment `yaml:"google_augment"`
}

// LoadSources reads the feed list from a YAML file.
func LoadSources(path string) (*SourcesConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feeds config: %w", err)
	}
	defer f.Close()

	var cfg SourcesConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse feeds config %s: %w", path, err)
	}
	if len(cfg.Feeds) == 0 {
		return nil, fmt.Errorf("feeds config %s lists no feeds", path)
	}
	return &cfg, nil
}

// BuildSources returns the configured feeds plus, when augmentation is
// enabled, one Google News site-search feed per watchlist entity using its
// most specific alias. Order is deterministic: configured feeds first, then
// augment feeds in entity order.
func BuildSources(cfg *SourcesConfig, entities []watchlist.Entity) []Source {
	out := make([]Source, 0, len(cfg.Feeds)+len(entities))
	out = append(out, cfg.Feeds...)

	if cfg.GoogleAugment.Site == "" {
		return out
	}
	for _, e := range entities {
		if len(e.Aliases) == 0 {
			continue
		}
		// Aliases are sorted longest-first, so [0] is the full name.
		query := url.QueryEscape(fmt.Sprintf("site:%s %s", cfg.GoogleAugment.Site, e.Aliases[0]))
		out = append(out, Source{
			Name: fmt.Sprintf("%s via Google (%s)", cfg.GoogleAugment.Site, e.Name),
			URL:  fmt.Sprintf("https://news.google.com/rss/search?q=%s&hl=en-GB&gl=GB&ceid=GB:en", query),
		})
	}
	return out
}
