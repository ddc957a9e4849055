package match

import (
	"regexp"
	"sort"
	"strings"

	"github.com/harborne/mentionwatch/internal/logger"
	"github.com/harborne/mentionwatch/internal/textnorm"
	"github.com/harborne/mentionwatch/internal/urlcanon"
	"github.com/harborne/mentionwatch/internal/watchlist"
)

// DefaultFirstMatchThreshold is the fuzzy score floor for the first-match
// strategy; stricter than the multi-entity default because a single hit
// decides the whole item.
const DefaultFirstMatchThreshold = 88

// FirstMatch scans an ordered keyword list and stops at the first hit. Two
// escalation tiers follow for items the keyword scan alone cannot decide:
//
//  1. An ambiguous surname in the title or summary requires the full name to
//     be confirmed, in the summary or (budget permitting) in the fetched
//     article body. The surname alone is never sufficient evidence; when
//     confirmation fails the item is rejected outright.
//  2. A broader trigger word justifies fetching the body and re-running a
//     body-level matcher, when budget allows or the domain is fetch-exempt.
//
// All word patterns are compiled once here; Match itself compiles nothing.
type FirstMatch struct {
	keywords     []keyword
	rules        []surnameRule
	fullChecks   map[string]*nameChecks
	triggers     []*regexp.Regexp
	bodyPatterns []bodyPattern
	wl           *watchlist.Watchlist
	threshold    int
	budget       *FetchBudget
	fetcher      BodyFetcher
}

type keyword struct {
	text string
	re   *regexp.Regexp
}

type bodyPattern struct {
	name string
	re   *regexp.Regexp
}

// surnameRule ties an ambiguous surname to the checks confirming its full
// name. Rules are sorted by surname for deterministic scan order.
type surnameRule struct {
	surname string
	re      *regexp.Regexp
	checks  *nameChecks
}

// nameChecks accepts a full name in body text: the exact whole-word form, the
// "Mr <surname>" style variant, or both name tokens near each other in either
// order. Single-token names carry only the exact check.
type nameChecks struct {
	full   string
	fullRe *regexp.Regexp
	titled *regexp.Regexp
	near   []*regexp.Regexp
}

func newNameChecks(full string) *nameChecks {
	c := &nameChecks{full: full, fullRe: wordRe(full)}
	tokens := strings.Fields(full)
	if len(tokens) >= 2 {
		first, last := tokens[0], tokens[len(tokens)-1]
		c.titled = regexp.MustCompile(`\bmr\.?\s+` + regexp.QuoteMeta(last) + `\b`)
		near := proximityRes(first, last)
		c.near = near[:]
	}
	return c
}

func (c *nameChecks) satisfied(body string) bool {
	t := strings.ToLower(body)
	if t == "" {
		return false
	}
	if c.fullRe.MatchString(t) {
		return true
	}
	if c.titled != nil && c.titled.MatchString(t) {
		return true
	}
	for _, re := range c.near {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}

// NewFirstMatch builds the strategy from the watchlist configuration. A
// threshold of 0 selects the default. The fetcher may be nil when body
// escalation is not wanted (tiers 2 and 3 then reject and skip respectively).
func NewFirstMatch(wl *watchlist.Watchlist, threshold int, budget *FetchBudget, fetcher BodyFetcher) *FirstMatch {
	if threshold <= 0 {
		threshold = DefaultFirstMatchThreshold
	}
	if budget == nil {
		budget = NewFetchBudget(0)
	}

	m := &FirstMatch{
		fullChecks: make(map[string]*nameChecks, len(wl.FullNameRules)),
		wl:         wl,
		threshold:  threshold,
		budget:     budget,
		fetcher:    fetcher,
	}
	for _, kw := range wl.Keywords {
		k := strings.ToLower(kw)
		if k == "" {
			continue
		}
		m.keywords = append(m.keywords, keyword{text: k, re: wordRe(k)})
	}

	rules := make(map[string]string, len(wl.FullNameRules))
	for surname, full := range wl.FullNameRules {
		rules[strings.ToLower(surname)] = strings.ToLower(full)
	}
	surnames := make([]string, 0, len(rules))
	for s := range rules {
		surnames = append(surnames, s)
	}
	sort.Strings(surnames)
	for _, s := range surnames {
		checks := newNameChecks(rules[s])
		m.rules = append(m.rules, surnameRule{surname: s, re: wordRe(s), checks: checks})
		m.fullChecks[checks.full] = checks
	}

	for _, trig := range wl.BodyTriggers {
		t := strings.ToLower(trig)
		if t == "" {
			continue
		}
		m.triggers = append(m.triggers, wordRe(t))
	}
	for _, pat := range wl.BodyPatterns {
		re, err := regexp.Compile(pat.Pattern)
		if err != nil {
			logger.Warn("skipping invalid body pattern", "pattern", pat.Pattern, "error", err)
			continue
		}
		m.bodyPatterns = append(m.bodyPatterns, bodyPattern{name: pat.Name, re: re})
	}
	return m
}

func (m *FirstMatch) Name() string { return "first-match" }

func (m *FirstMatch) Match(it Item) []string {
	title := textnorm.Normalize(it.Title)
	summary := textnorm.Normalize(it.Summary)
	combined := title + "\n" + summary
	domain := urlcanon.Domain(it.Link)

	// Tier 1: ordered keyword list, first hit wins.
	for _, kw := range m.keywords {
		if kw.re.MatchString(combined) || fuzzyHit(kw.text, combined, m.threshold) {
			return []string{kw.text}
		}
	}

	// Tier 2: ambiguous surname needs the full name confirmed.
	for _, rule := range m.rules {
		if !rule.re.MatchString(title) && !rule.re.MatchString(summary) {
			continue
		}
		if rule.checks.fullRe.MatchString(summary) {
			return []string{rule.checks.full}
		}
		if m.fetcher != nil && m.budget.TryAcquire() {
			if rule.checks.satisfied(m.fetcher.FetchText(it.Link)) {
				return []string{rule.checks.full}
			}
		}
		// Surname present but unconfirmed: reject, do not fall through.
		return nil
	}

	// Tier 3: trigger words justify a body-level re-check.
	for _, trig := range m.triggers {
		if !trig.MatchString(combined) {
			continue
		}
		if m.fetcher == nil {
			break
		}
		if m.budget.TryAcquire() || m.wl.FetchExempt(domain) {
			if hit, ok := m.bodyMatches(m.fetcher.FetchText(it.Link)); ok {
				return []string{hit}
			}
		}
		break
	}

	return nil
}

// bodyMatches runs the body-level matcher: configured patterns first, then
// the keyword list, with rule-covered full names held to the looser
// nameChecks instead of the exact whole-word match.
func (m *FirstMatch) bodyMatches(body string) (string, bool) {
	t := strings.ToLower(body)
	if t == "" {
		return "", false
	}
	for _, pat := range m.bodyPatterns {
		if pat.re.MatchString(t) {
			return pat.name, true
		}
	}
	for _, kw := range m.keywords {
		if checks, ok := m.fullChecks[kw.text]; ok {
			if checks.satisfied(t) {
				return kw.text, true
			}
			continue
		}
		if kw.re.MatchString(t) {
			return kw.text, true
		}
	}
	return "", false
}
