// Package scraper fetches article bodies and reduces them to plain text for
// the matcher's escalation tiers. Fetches are bounded by a timeout and a byte
// cap, and every failure mode collapses to an empty string: a body that could
// not be fetched is simply absent evidence.
package scraper

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/harborne/mentionwatch/internal/logger"
)

// A realistic browser User-Agent; several outlets refuse default Go clients.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

const (
	DefaultTimeout  = 12 * time.Second
	DefaultMaxBytes = 2_500_000
)

// Client fetches article pages. Results are cached per URL so repeated
// escalations for the same link cost one network round trip.
type Client struct {
	http      *http.Client
	maxBytes  int64
	userAgent string
	cache     *textCache
}

// New builds a client. Zero values select the defaults.
func New(timeout time.Duration, maxBytes int64) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		maxBytes:  maxBytes,
		userAgent: defaultUserAgent,
		cache:     newTextCache(time.Hour),
	}
}

// FetchText returns the lowercased plain text of the page at rawURL, or ""
// on any failure.
func (c *Client) FetchText(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	if text, ok := c.cache.get(rawURL); ok {
		return text
	}
	text := c.fetch(rawURL)
	c.cache.set(rawURL, text)
	return text
}

func (c *Client) fetch(rawURL string) string {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debug("body fetch failed", "url", rawURL, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Debug("body fetch rejected", "url", rawURL, "status", resp.StatusCode)
		return ""
	}

	limited := io.LimitReader(resp.Body, c.maxBytes)
	// Decode using the declared charset, falling back to UTF-8 as-is.
	reader, err := charset.NewReader(limited, resp.Header.Get("Content-Type"))
	if err != nil {
		reader = limited
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		logger.Debug("body parse failed", "url", rawURL, "error", err)
		return ""
	}
	doc.Find("script, style, noscript, template, svg, iframe").Remove()

	text := strings.Join(strings.Fields(doc.Text()), " ")
	return strings.ToLower(text)
}
