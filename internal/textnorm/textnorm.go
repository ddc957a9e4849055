// Package textnorm provides the text normalization used for matching and for
// cleaning feed content before display. All functions are pure and total:
// empty input yields empty output, nothing here ever fails.
package textnorm

import (
	"html"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Tags whose entire content is noise, not prose. Removed with their bodies
// before the generic tag strip.
var blockTags = []string{"script", "style", "noscript", "template", "svg", "iframe", "picture", "source"}

var (
	blockRes  []*regexp.Regexp
	reComment = regexp.MustCompile(`(?s)<!--.*?-->`)
	reTag     = regexp.MustCompile(`<[^>]+>`)
)

func init() {
	for _, tag := range blockTags {
		blockRes = append(blockRes, regexp.MustCompile(`(?is)<`+tag+`\b.*?</`+tag+`\s*>`))
	}
}

// Normalize prepares text for matching: HTML entities unescaped, Unicode
// folded to NFKC, curly apostrophes straightened, whitespace collapsed,
// lowercased.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(s)
	s = norm.NFKC.String(s)
	s = strings.ReplaceAll(s, "’", "'")
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}

// StripHTML reduces an HTML fragment to plain text: script/style-like blocks
// and comments are dropped with their contents, remaining tags removed,
// whitespace collapsed.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	for _, re := range blockRes {
		s = re.ReplaceAllString(s, " ")
	}
	s = reComment.ReplaceAllString(s, " ")
	s = reTag.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
