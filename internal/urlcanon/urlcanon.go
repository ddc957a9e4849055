// Package urlcanon normalizes article URLs into the canonical form used as a
// deduplication key. Canonical URLs are never shown to readers; display always
// uses the link as published.
package urlcanon

import (
	"net/url"
	"strings"
)

// Query parameter prefixes added by trackers and share buttons. Any parameter
// whose key starts with one of these is dropped before the allow-list check.
var trackingPrefixes = []string{"utm_", "gclid", "gclsrc", "fbclid", "at_", "ns_", "ito", "cmp", "icid", "ref"}

// Query keys that carry article identity on some outlets and must survive
// canonicalization.
var keepKeys = map[string]bool{"id": true, "p": true, "story": true, "article": true}

// Canonical returns the normalized form of a URL: https scheme, lowercased
// host without a leading "www.", trailing slashes trimmed from the path, only
// allow-listed query keys kept, fragment dropped. On any parse failure the
// input is returned verbatim so dedup still functions, just less aggressively.
func Canonical(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}

	switch u.Scheme {
	case "http", "https", "":
		u.Scheme = "https"
	}
	u.Host = strings.TrimPrefix(strings.ToLower(u.Host), "www.")

	path := strings.TrimRight(u.Path, "/")
	if path == "" {
		path = "/"
	}
	u.Path = path
	u.RawPath = ""

	u.RawQuery = filterQuery(u.RawQuery)
	u.Fragment = ""
	u.RawFragment = ""

	return u.String()
}

// filterQuery keeps allow-listed keys in their original order.
func filterQuery(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}
	var kept []string
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key := pair
		if i := strings.IndexByte(pair, '='); i >= 0 {
			key = pair[:i]
		}
		if k, err := url.QueryUnescape(key); err == nil {
			key = k
		}
		if isTracking(key) || !keepKeys[key] {
			continue
		}
		kept = append(kept, pair)
	}
	return strings.Join(kept, "&")
}

func isTracking(key string) bool {
	lk := strings.ToLower(key)
	for _, p := range trackingPrefixes {
		if strings.HasPrefix(lk, p) {
			return true
		}
	}
	return false
}

// Domain extracts the lowercased host without a leading "www.", or "" when
// the URL cannot be parsed or carries no host.
func Domain(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}

// UnwrapAggregator resolves news-aggregator redirect links. For URLs hosted on
// the aggregator domain it returns the real target carried in the "url" or
// "u" query parameter when present; otherwise the input is returned as-is.
func UnwrapAggregator(raw, aggregator string) string {
	if raw == "" || aggregator == "" {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if !strings.Contains(strings.ToLower(u.Host), aggregator) {
		return raw
	}
	q := u.Query()
	if target := q.Get("url"); target != "" {
		return target
	}
	if target := q.Get("u"); target != "" {
		return target
	}
	return raw
}
