package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercases", "Nigel FARAGE", "nigel farage"},
		{"unescapes entities", "Marks &amp; Spencer", "marks & spencer"},
		{"collapses whitespace", "  a \t b \n c  ", "a b c"},
		{"folds curly apostrophe", "Farage’s speech", "farage's speech"},
		{"nfkc folds ligatures", "ﬁnance", "finance"},
		{"nfkc folds fullwidth", "Ｆarage", "farage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain text untouched", "no markup here", "no markup here"},
		{"drops tags", "<p>Hello <b>world</b></p>", "Hello world"},
		{
			"drops script with contents",
			`before<script type="text/javascript">var x = "<p>";</script>after`,
			"before after",
		},
		{
			"drops style with contents",
			"a<style>p { color: red }</style>b",
			"a b",
		},
		{"drops comments", "a<!-- hidden <b>bold</b> -->b", "a b"},
		{
			"collapses whitespace",
			"<div>\n  line one\n  line two\n</div>",
			"line one line two",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHTML(tt.in))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", Truncate("anything", 0))
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	// Rune-safe: never splits a multi-byte character.
	assert.Equal(t, "héll", Truncate("héllo", 4))
}
