package assignment

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var textPolicy = bluemonday.StrictPolicy()

// markupTag matches what reads as an HTML tag or comment. Attributes must
// be quoted, so prose like "a<b and c>d" is not taken for one.
var markupTag = regexp.MustCompile(`<!--[\s\S]*?-->|</?[a-zA-Z][a-zA-Z0-9]*(?:\s+[a-zA-Z_:][-a-zA-Z0-9_:.]*\s*=\s*(?:"[^"]*"|'[^']*'))*\s*/?>`)

// Sanitize strips markup from author input. The quest sentinel, section
// markers and comparison signs such as "a<b" pass through untouched.
func Sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(escapeStrayLT(s))))
}

// escapeStrayLT escapes every "<" that does not open a tag, so the HTML
// tokenizer keeps it as text instead of swallowing the rest of the line.
func escapeStrayLT(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	var b strings.Builder
	last := 0
	for _, loc := range markupTag.FindAllStringIndex(s, -1) {
		b.WriteString(strings.ReplaceAll(s[last:loc[0]], "<", "&lt;"))
		b.WriteString(s[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(strings.ReplaceAll(s[last:], "<", "&lt;"))
	return b.String()
}
