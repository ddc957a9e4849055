// Package match decides whether a feed entry mentions a watchlist entity.
// Two strategies implement the same interface: the multi-entity tagger used
// for the party-leaders digest and the first-match-wins keyword scan with
// body-fetch escalation used for the MP-mentions digest.
package match

import (
	"fmt"
	"regexp"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Item is the slice of a feed entry a strategy gets to look at. Title and
// summary are the raw strings from the feed; strategies normalize as needed.
type Item struct {
	Title   string
	Summary string
	Link    string
}

// Strategy tags an item with zero or more matched identifiers. An empty
// result means the item is discarded.
type Strategy interface {
	Name() string
	Match(it Item) []string
}

// BodyFetcher retrieves the plain text of an article body. Implementations
// return "" on any failure; a missing body is treated as absence of evidence,
// never as an error.
type BodyFetcher interface {
	FetchText(url string) string
}

// wordRe compiles a whole-word pattern for a lowercased needle. Strategies
// compile these once at construction; matching runs once per feed entry.
func wordRe(needle string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(needle) + `\b`)
}

// fuzzyHit reports a best-alignment substring similarity of at least
// threshold between a short needle and a longer haystack. The threshold is
// inclusive: a score equal to it is a match.
func fuzzyHit(needle, haystack string, threshold int) bool {
	if needle == "" || haystack == "" {
		return false
	}
	return fuzzy.PartialRatio(needle, haystack) >= threshold
}

// proximityWindow is the maximum distance in characters between the two name
// tokens for the loose full-name check against body text.
const proximityWindow = 40

// proximityRes compiles the pair of patterns accepting a and b as whole words
// within proximityWindow characters of each other, in either order.
func proximityRes(a, b string) [2]*regexp.Regexp {
	pat := func(x, y string) *regexp.Regexp {
		return regexp.MustCompile(fmt.Sprintf(`(?s)\b%s\b.{0,%d}\b%s\b`,
			regexp.QuoteMeta(x), proximityWindow, regexp.QuoteMeta(y)))
	}
	return [2]*regexp.Regexp{pat(a, b), pat(b, a)}
}
