package aggregator

import (
	"regexp"
	"strings"
)

// maxDescriptionLen caps stored descriptions; longer text is truncated with a
// trailing ellipsis marker.
const maxDescriptionLen = 5000

var tagRe = regexp.MustCompile(`<[^>]*>`)

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// stripHTML removes tags, unescapes the six standard entities, collapses
// whitespace runs to a single space and trims the result.
func stripHTML(s string) string {
	if s == "" {
		return ""
	}
	s = tagRe.ReplaceAllString(s, " ")
	s = entityReplacer.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// truncate caps s at max characters, replacing the final three with "..."
// when it is cut.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

func sanitizeDescription(s string) string {
	return truncate(stripHTML(s), maxDescriptionLen)
}
