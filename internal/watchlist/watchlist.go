// Package watchlist holds the curated matching configuration: entities with
// their aliases, the flat keyword list, surname disambiguation rules and the
// body-fetch trigger set. Loaded once at startup and treated as immutable so
// tests can substitute minimal fixtures.
package watchlist

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entity is a canonical identity (person or party) with the literal alias
// strings that count as a mention of it.
type Entity struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

// BodyPattern is a named regular expression; the name is recorded as the hit
// identifier when the pattern matches fetched body text.
type BodyPattern struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
}

// Watchlist is the full matching configuration file.
type Watchlist struct {
	// Entities drive the multi-entity strategy; order is presentation order.
	Entities []Entity `yaml:"entities"`

	// Keywords drive the first-match strategy, checked in list order.
	Keywords []string `yaml:"keywords"`

	// FullNameRules maps an ambiguous surname to the full name that must be
	// confirmed before the surname alone counts as a mention.
	FullNameRules map[string]string `yaml:"full_name_rules"`

	// BodyTriggers are broader words that justify fetching the article body
	// for a second look when title and summary alone do not match.
	BodyTriggers []string `yaml:"body_triggers"`

	// BodyPatterns are regular expressions run against fetched body text in
	// addition to the keyword checks (party phrase variants and the like).
	BodyPatterns []BodyPattern `yaml:"body_patterns"`

	// FetchExemptDomains always qualify for a body fetch even when the budget
	// is exhausted; used for outlets with terse feed summaries.
	FetchExemptDomains []string `yaml:"fetch_exempt_domains"`

	// OutletNames maps a domain to its display name for badges.
	OutletNames map[string]string `yaml:"outlet_names"`

	// AggregatorDomain is the news-aggregator host whose links are unwrapped
	// and whose title fingerprints are pooled globally during dedup.
	AggregatorDomain string `yaml:"aggregator_domain"`
}

// Load reads and validates a watchlist file. Alias lists are re-ordered
// longest-first so the most specific alias is preferred for search queries
// and title highlighting.
func Load(path string) (*Watchlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open watchlist: %w", err)
	}
	defer f.Close()

	var wl Watchlist
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&wl); err != nil {
		return nil, fmt.Errorf("parse watchlist %s: %w", path, err)
	}
	if err := wl.validate(); err != nil {
		return nil, fmt.Errorf("watchlist %s: %w", path, err)
	}

	for i := range wl.Entities {
		aliases := wl.Entities[i].Aliases
		sort.SliceStable(aliases, func(a, b int) bool {
			return len(aliases[a]) > len(aliases[b])
		})
	}
	return &wl, nil
}

func (w *Watchlist) validate() error {
	seen := make(map[string]bool, len(w.Entities))
	for _, e := range w.Entities {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("entity with empty name")
		}
		if seen[e.Name] {
			return fmt.Errorf("duplicate entity %q", e.Name)
		}
		seen[e.Name] = true
		if len(e.Aliases) == 0 {
			return fmt.Errorf("entity %q has no aliases", e.Name)
		}
		for _, a := range e.Aliases {
			if strings.TrimSpace(a) == "" {
				return fmt.Errorf("entity %q has an empty alias", e.Name)
			}
		}
	}
	return nil
}

// EntityNames returns canonical names in configuration order.
func (w *Watchlist) EntityNames() []string {
	names := make([]string, len(w.Entities))
	for i, e := range w.Entities {
		names[i] = e.Name
	}
	return names
}

// AliasesFor returns the alias list (longest first) for a canonical name.
func (w *Watchlist) AliasesFor(name string) []string {
	for _, e := range w.Entities {
		if e.Name == name {
			return e.Aliases
		}
	}
	return nil
}

// OutletName resolves a domain to its display name, falling back to the
// domain itself, then "Unknown".
func (w *Watchlist) OutletName(domain string) string {
	if name, ok := w.OutletNames[domain]; ok {
		return name
	}
	if domain != "" {
		return domain
	}
	return "Unknown"
}

// FetchExempt reports whether a domain may fetch article bodies regardless of
// remaining budget.
func (w *Watchlist) FetchExempt(domain string) bool {
	for _, d := range w.FetchExemptDomains {
		if domain == d || strings.HasSuffix(domain, "."+d) {
			return true
		}
	}
	return false
}
