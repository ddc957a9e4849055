// Package dedup collapses near-identical stories collected across feeds.
// Processing is a single pass in input order, first occurrence wins, so the
// caller controls priority by controlling feed order.
package dedup

import (
	"regexp"
	"strings"

	"github.com/harborne/mentionwatch/internal/feed"
	"github.com/harborne/mentionwatch/internal/metrics"
	"github.com/harborne/mentionwatch/internal/urlcanon"
)

// DefaultMaxResults caps the surviving item list.
const DefaultMaxResults = 600

// Options tune one dedup pass.
type Options struct {
	// AggregatorDomain pools title fingerprints of aggregator-hosted (and
	// domainless) links into a single global set: the aggregator obscures the
	// true outlet, so cross-outlet fingerprint collisions there are assumed
	// to be true duplicates. This is a heuristic, not a verified rule; leave
	// empty to dedupe strictly per domain.
	AggregatorDomain string

	// MaxResults truncates the output; 0 selects the default.
	MaxResults int
}

var reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Fingerprint reduces a headline to a normalized, punctuation-free form used
// for near-duplicate detection across outlets.
func Fingerprint(title string) string {
	t := strings.ToLower(title)
	t = strings.ReplaceAll(t, "&amp;", "&")
	t = reNonAlnum.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// Dedupe filters items by canonical URL and by title fingerprint. Identical
// canonical URLs survive exactly once per run. Fingerprints are deduplicated
// per domain, except for aggregator-hosted and domainless links which share
// one global set when AggregatorDomain is configured.
func Dedupe(items []feed.MatchedItem, opts Options) []feed.MatchedItem {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	seenURLs := make(map[string]struct{})
	seenByDomain := make(map[string]map[string]struct{})
	seenGlobal := make(map[string]struct{})

	var out []feed.MatchedItem
	for _, it := range items {
		canonical := urlcanon.Canonical(it.Link)
		if canonical != "" {
			if _, dup := seenURLs[canonical]; dup {
				metrics.Global.IncrementDuplicatesFiltered()
				continue
			}
			seenURLs[canonical] = struct{}{}
		}

		domain := urlcanon.Domain(canonical)
		if domain == "" {
			domain = urlcanon.Domain(it.Link)
		}
		fp := Fingerprint(it.Title)

		if opts.AggregatorDomain != "" && (domain == "" || domain == opts.AggregatorDomain) {
			if _, dup := seenGlobal[fp]; dup {
				metrics.Global.IncrementDuplicatesFiltered()
				continue
			}
			seenGlobal[fp] = struct{}{}
		} else {
			bucket := seenByDomain[domain]
			if bucket == nil {
				bucket = make(map[string]struct{})
				seenByDomain[domain] = bucket
			}
			if _, dup := bucket[fp]; dup {
				metrics.Global.IncrementDuplicatesFiltered()
				continue
			}
			bucket[fp] = struct{}{}
		}

		out = append(out, it)
		if len(out) >= maxResults {
			break
		}
	}
	return out
}
