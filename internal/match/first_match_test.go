package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harborne/mentionwatch/internal/watchlist"
)

type fakeFetcher struct {
	bodies map[string]string
	calls  int
}

func (f *fakeFetcher) FetchText(url string) string {
	f.calls++
	return f.bodies[url]
}

func testWatchlist() *watchlist.Watchlist {
	return &watchlist.Watchlist{
		Keywords:      []string{"richard tice", "lee anderson"},
		FullNameRules: map[string]string{"farage": "nigel farage"},
		BodyTriggers:  []string{"reform"},
		BodyPatterns: []watchlist.BodyPattern{
			{Name: "reform uk", Pattern: `\breform\s*uk\b`},
			{Name: "reform uk", Pattern: `\breform\b.{0,12}\bparty\b`},
		},
		FetchExemptDomains: []string{"bbc.co.uk"},
	}
}

func TestFirstMatchKeywordTier(t *testing.T) {
	m := NewFirstMatch(testWatchlist(), 0, NewFetchBudget(0), nil)
	assert.Equal(t, "first-match", m.Name())

	got := m.Match(Item{Title: "Richard Tice launches campaign"})
	assert.Equal(t, []string{"richard tice"}, got)

	// First keyword in list order wins even when several are present.
	got = m.Match(Item{Title: "Lee Anderson joins Richard Tice on stage"})
	assert.Equal(t, []string{"richard tice"}, got)

	assert.Nil(t, m.Match(Item{Title: "Weather warning issued for Scotland"}))
	assert.Nil(t, m.Match(Item{}))
}

func TestFirstMatchSurnameConfirmedInSummary(t *testing.T) {
	f := &fakeFetcher{}
	m := NewFirstMatch(testWatchlist(), 0, NewFetchBudget(10), f)

	got := m.Match(Item{
		Title:   "Farage hits back",
		Summary: "Nigel Farage said he would stand again",
	})
	assert.Equal(t, []string{"nigel farage"}, got)
	assert.Equal(t, 0, f.calls, "summary confirmation must not fetch")
}

func TestFirstMatchSurnameConfirmedInBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"exact full name", "later in the piece nigel farage was quoted"},
		{"mr variant", "mr farage told reporters he disagreed"},
		{"mr with period", "mr. farage told reporters he disagreed"},
		{"tokens in proximity", "nigel, as farage is known locally, spoke"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeFetcher{bodies: map[string]string{
				"https://example.com/a": tt.body,
			}}
			b := NewFetchBudget(10)
			m := NewFirstMatch(testWatchlist(), 0, b, f)

			got := m.Match(Item{
				Title:   "Farage criticised",
				Summary: "A row broke out yesterday",
				Link:    "https://example.com/a",
			})
			assert.Equal(t, []string{"nigel farage"}, got)
			assert.Equal(t, 1, f.calls)
			assert.Equal(t, 9, b.Remaining())
		})
	}
}

func TestFirstMatchSurnameUnconfirmedRejects(t *testing.T) {
	f := &fakeFetcher{bodies: map[string]string{
		"https://example.com/a": "an article about a different person entirely",
	}}
	m := NewFirstMatch(testWatchlist(), 0, NewFetchBudget(10), f)

	// The title also carries the "reform" trigger, but an unconfirmed surname
	// rejects outright instead of falling through to the trigger tier.
	got := m.Match(Item{
		Title: "Farage criticised over reform plans",
		Link:  "https://example.com/a",
	})
	assert.Nil(t, got)
	assert.Equal(t, 1, f.calls)
}

func TestFirstMatchSurnameNoBudgetRejects(t *testing.T) {
	f := &fakeFetcher{bodies: map[string]string{
		"https://example.com/a": "nigel farage was quoted here",
	}}
	m := NewFirstMatch(testWatchlist(), 0, NewFetchBudget(0), f)

	got := m.Match(Item{
		Title: "Farage criticised",
		Link:  "https://example.com/a",
	})
	assert.Nil(t, got)
	assert.Equal(t, 0, f.calls, "exhausted budget must not fetch")
}

func TestFirstMatchTriggerEscalation(t *testing.T) {
	t.Run("body pattern hit", func(t *testing.T) {
		f := &fakeFetcher{bodies: map[string]string{
			"https://example.com/a": "the reform uk candidate gained ground",
		}}
		m := NewFirstMatch(testWatchlist(), 0, NewFetchBudget(10), f)

		got := m.Match(Item{Title: "Reform surges in local polls", Link: "https://example.com/a"})
		assert.Equal(t, []string{"reform uk"}, got)
		assert.Equal(t, 1, f.calls)
	})

	t.Run("split party phrase hit", func(t *testing.T) {
		f := &fakeFetcher{bodies: map[string]string{
			"https://example.com/a": "members of the reform party met today",
		}}
		m := NewFirstMatch(testWatchlist(), 0, NewFetchBudget(10), f)

		got := m.Match(Item{Title: "Reform surges in local polls", Link: "https://example.com/a"})
		assert.Equal(t, []string{"reform uk"}, got)
	})

	t.Run("body keyword hit", func(t *testing.T) {
		f := &fakeFetcher{bodies: map[string]string{
			"https://example.com/a": "richard tice spoke at the rally",
		}}
		m := NewFirstMatch(testWatchlist(), 0, NewFetchBudget(10), f)

		got := m.Match(Item{Title: "Reform surges in local polls", Link: "https://example.com/a"})
		assert.Equal(t, []string{"richard tice"}, got)
	})

	t.Run("body without evidence", func(t *testing.T) {
		f := &fakeFetcher{bodies: map[string]string{
			"https://example.com/a": "a piece about planning reform in general",
		}}
		m := NewFirstMatch(testWatchlist(), 0, NewFetchBudget(10), f)

		got := m.Match(Item{Title: "Reform surges in local polls", Link: "https://example.com/a"})
		assert.Nil(t, got)
		assert.Equal(t, 1, f.calls)
	})

	t.Run("fetch failure means no evidence", func(t *testing.T) {
		f := &fakeFetcher{}
		m := NewFirstMatch(testWatchlist(), 0, NewFetchBudget(10), f)

		got := m.Match(Item{Title: "Reform surges in local polls", Link: "https://example.com/a"})
		assert.Nil(t, got)
		assert.Equal(t, 1, f.calls)
	})
}

func TestFirstMatchTriggerBudgetExhausted(t *testing.T) {
	body := map[string]string{
		"https://example.com/a":        "the reform uk candidate gained ground",
		"https://www.bbc.co.uk/news/a": "the reform uk candidate gained ground",
	}

	t.Run("ordinary domain skips", func(t *testing.T) {
		f := &fakeFetcher{bodies: body}
		m := NewFirstMatch(testWatchlist(), 0, NewFetchBudget(0), f)

		got := m.Match(Item{Title: "Reform surges in local polls", Link: "https://example.com/a"})
		assert.Nil(t, got)
		assert.Equal(t, 0, f.calls)
	})

	t.Run("exempt domain still fetches", func(t *testing.T) {
		f := &fakeFetcher{bodies: body}
		m := NewFirstMatch(testWatchlist(), 0, NewFetchBudget(0), f)

		got := m.Match(Item{Title: "Reform surges in local polls", Link: "https://www.bbc.co.uk/news/a"})
		assert.Equal(t, []string{"reform uk"}, got)
		assert.Equal(t, 1, f.calls)
	})
}

func TestFirstMatchNoFetcher(t *testing.T) {
	m := NewFirstMatch(testWatchlist(), 0, NewFetchBudget(10), nil)

	// Trigger present but no fetcher configured: nothing to escalate with.
	assert.Nil(t, m.Match(Item{Title: "Reform surges in local polls"}))
}

func TestFirstMatchBodyFullNameKeywordNeedsConfirmation(t *testing.T) {
	wl := testWatchlist()
	wl.Keywords = append(wl.Keywords, "nigel farage")

	f := &fakeFetcher{bodies: map[string]string{
		"https://example.com/a": "farage appeared briefly",
	}}
	m := NewFirstMatch(wl, 0, NewFetchBudget(10), f)

	// A rule-covered full name in the body keyword scan is held to the full
	// confirmation checks; the bare surname is not enough.
	got := m.Match(Item{Title: "Reform surges in local polls", Link: "https://example.com/a"})
	assert.Nil(t, got)
	assert.Equal(t, 1, f.calls)
}
