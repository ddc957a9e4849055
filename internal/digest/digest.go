// Package digest orders and groups the surviving matched items and renders
// the daily PDF.
package digest

import (
	"fmt"
	"sort"
	"time"

	"github.com/harborne/mentionwatch/internal/feed"
)

// Digest is the presentation-ready result of one run.
type Digest struct {
	Title       string
	GeneratedAt time.Time
	Timezone    string
	NumSources  int
	// Items sorted newest first by sortable timestamp.
	Items []feed.MatchedItem
}

// Assemble sorts items for presentation. Fetch order is feed order, not
// recency, so the digest re-sorts by publication instant, newest first.
func Assemble(title string, items []feed.MatchedItem, generatedAt time.Time, timezone string, numSources int) Digest {
	sorted := make([]feed.MatchedItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt.After(sorted[j].PublishedAt)
	})
	return Digest{
		Title:       title,
		GeneratedAt: generatedAt,
		Timezone:    timezone,
		NumSources:  numSources,
		Items:       sorted,
	}
}

// Section is one entity's slice of the digest.
type Section struct {
	Entity string
	Items  []feed.MatchedItem
}

// GroupByEntity splits items into per-entity sections in the given order.
// An item tagged with several entities appears in each of their sections.
// Entities without items yield empty sections so the reader sees the absence.
func GroupByEntity(items []feed.MatchedItem, order []string) []Section {
	byEntity := make(map[string][]feed.MatchedItem, len(order))
	for _, it := range items {
		for _, hit := range it.Hits {
			byEntity[hit] = append(byEntity[hit], it)
		}
	}
	sections := make([]Section, 0, len(order))
	for _, name := range order {
		sections = append(sections, Section{Entity: name, Items: byEntity[name]})
	}
	return sections
}

// Filename names one day's digest, e.g. "Monday, 22-09-2025.pdf".
func Filename(t time.Time) string {
	return fmt.Sprintf("%s, %s.pdf", t.Format("Monday"), t.Format("02-01-2006"))
}
