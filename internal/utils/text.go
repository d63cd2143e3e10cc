package utils

import (
	"strings"
	"unicode"
)

// snippetEllipsis terminates truncated evidence snippets.
const snippetEllipsis = '…'

// CollapseWhitespace replaces every run of whitespace with a single space and
// trims the result. Applied to evidence snippets before truncation so the
// same review text always yields the same snippet.
func CollapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// TruncateSnippet deterministically truncates s to at most maxChars runes,
// replacing the final rune with an ellipsis when truncation occurs. A
// maxChars of zero or less returns the input unchanged.
func TruncateSnippet(s string, maxChars int) string {
	if maxChars <= 0 {
		return s
	}

	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars-1]) + string(snippetEllipsis)
}

// Snippet collapses whitespace and truncates in one step, producing the
// canonical evidence form of a review text.
func Snippet(s string, maxChars int) string {
	return TruncateSnippet(CollapseWhitespace(s), maxChars)
}
