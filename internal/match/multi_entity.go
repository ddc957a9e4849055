package match

import (
	"regexp"

	"github.com/harborne/mentionwatch/internal/textnorm"
	"github.com/harborne/mentionwatch/internal/watchlist"
)

// DefaultMultiEntityThreshold is the fuzzy score floor for the multi-entity
// strategy; loose enough to catch inflected and possessive variants.
const DefaultMultiEntityThreshold = 80

// MultiEntity checks every watchlist entity independently and tags the item
// with all of them that are mentioned. Per entity, the first alias that hits
// (whole-word first, fuzzy as backup) wins and the remaining aliases are
// skipped. Items tagged with no entity are discarded by the caller.
type MultiEntity struct {
	entities  []taggedEntity
	threshold int
}

type taggedEntity struct {
	name    string
	aliases []aliasPattern
}

type aliasPattern struct {
	text string
	re   *regexp.Regexp
}

// NewMultiEntity builds the strategy, compiling one whole-word pattern per
// alias. A threshold of 0 selects the default.
func NewMultiEntity(entities []watchlist.Entity, threshold int) *MultiEntity {
	if threshold <= 0 {
		threshold = DefaultMultiEntityThreshold
	}
	m := &MultiEntity{threshold: threshold}
	for _, e := range entities {
		te := taggedEntity{name: e.Name}
		for _, alias := range e.Aliases {
			a := textnorm.Normalize(alias)
			if a == "" {
				continue
			}
			te.aliases = append(te.aliases, aliasPattern{text: a, re: wordRe(a)})
		}
		m.entities = append(m.entities, te)
	}
	return m
}

func (m *MultiEntity) Name() string { return "multi-entity" }

func (m *MultiEntity) Match(it Item) []string {
	text := textnorm.Normalize(it.Title + "\n" + it.Summary)
	if text == "" {
		return nil
	}

	var hits []string
	for _, e := range m.entities {
		for _, a := range e.aliases {
			if a.re.MatchString(text) || fuzzyHit(a.text, text, m.threshold) {
				hits = append(hits, e.name)
				break
			}
		}
	}
	return hits
}
