package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborne/mentionwatch/internal/match"
)

// titleContains tags items whose title mentions the needle.
type titleContains struct{ needle string }

func (s titleContains) Name() string { return "title-contains" }

func (s titleContains) Match(it match.Item) []string {
	if strings.Contains(strings.ToLower(it.Title), s.needle) {
		return []string{s.needle}
	}
	return nil
}

const rssBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Test Feed</title>
  <item>
    <title>Farage &lt;b&gt;hits back&lt;/b&gt; at critics</title>
    <link>https://example.com/story-1</link>
    <description>&lt;p&gt;The Reform UK leader responded.&lt;/p&gt;</description>
    <pubDate>Tue, 15 Jul 2025 09:00:00 +0000</pubDate>
  </item>
  <item>
    <title>Rail strike talks continue</title>
    <link>https://example.com/story-2</link>
    <description>No politicians here.</description>
    <pubDate>Tue, 15 Jul 2025 10:00:00 +0000</pubDate>
  </item>
  <item>
    <title>Farage speech from last week</title>
    <link>https://example.com/story-3</link>
    <description>Out of window.</description>
    <pubDate>Tue, 08 Jul 2025 09:00:00 +0000</pubDate>
  </item>
  <item>
    <title>Farage item without a date</title>
    <link>https://example.com/story-4</link>
    <description>Dropped, never assumed in-window.</description>
  </item>
  <item>
    <title>Farage via aggregator</title>
    <link>https://news.google.com/articles?url=https%3A%2F%2Fexample.com%2Fstory-5</link>
    <description>Wrapped link.</description>
    <pubDate>Tue, 15 Jul 2025 11:00:00 +0000</pubDate>
  </item>
</channel>
</rss>`

func rssServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func julyWindow() RangeWindow {
	return RangeWindow{
		Start: time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 7, 16, 0, 0, 0, 0, time.UTC),
	}
}

func TestFetch(t *testing.T) {
	srv := rssServer(t, rssBody)
	f := NewFetcher(titleContains{"farage"}, julyWindow(), Options{
		AggregatorDomain: "news.google.com",
	})

	items := f.Fetch(context.Background(), Source{Name: "Test Feed", URL: srv.URL})
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "Test Feed", first.Source)
	assert.Equal(t, "Farage hits back at critics", first.Title)
	assert.Equal(t, "The Reform UK leader responded.", first.Summary)
	assert.Equal(t, "https://example.com/story-1", first.Link)
	assert.Equal(t, "Tue, 15 Jul 2025 09:00:00 +0000", first.Published)
	assert.Equal(t, time.Date(2025, 7, 15, 9, 0, 0, 0, time.UTC), first.PublishedAt)
	assert.Equal(t, []string{"farage"}, first.Hits)

	// Aggregator links are unwrapped before matching and display.
	assert.Equal(t, "https://example.com/story-5", items[1].Link)
}

func TestFetchSummaryTruncation(t *testing.T) {
	long := strings.Repeat("word ", 200)
	body := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>t</title>
  <item>
    <title>Farage story</title>
    <link>https://example.com/a</link>
    <description>%s</description>
    <pubDate>Tue, 15 Jul 2025 09:00:00 +0000</pubDate>
  </item>
</channel></rss>`, long)

	srv := rssServer(t, body)
	f := NewFetcher(titleContains{"farage"}, julyWindow(), Options{SummaryChars: 50})

	items := f.Fetch(context.Background(), Source{Name: "t", URL: srv.URL})
	require.Len(t, items, 1)
	assert.LessOrEqual(t, len(items[0].Summary), 50)
}

func TestFetchMaxPerFeed(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>t</title>`)
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&sb, `<item>
  <title>Farage item %d</title>
  <link>https://example.com/%d</link>
  <pubDate>Tue, 15 Jul 2025 09:00:00 +0000</pubDate>
</item>`, i, i)
	}
	sb.WriteString(`</channel></rss>`)

	srv := rssServer(t, sb.String())
	f := NewFetcher(titleContains{"farage"}, julyWindow(), Options{MaxPerFeed: 3})

	items := f.Fetch(context.Background(), Source{Name: "t", URL: srv.URL})
	assert.Len(t, items, 3)
}

func TestFetchFeedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewFetcher(titleContains{"farage"}, julyWindow(), Options{})
	items := f.Fetch(context.Background(), Source{Name: "broken", URL: srv.URL})
	assert.Nil(t, items)
}
