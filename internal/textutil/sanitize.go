package textutil

import "strings"

// htmlEntities lists the characters Sanitize escapes, in the order they are
// applied. The ampersand must stay first so entities produced by the later
// replacements are not escaped a second time.
var htmlEntities = []struct {
	raw    string
	entity string
}{
	{"&", "&amp;"},
	{"<", "&lt;"},
	{">", "&gt;"},
	{`"`, "&quot;"},
	{"'", "&#039;"},
}

// Sanitize escapes HTML special characters so user supplied text can be
// forwarded to the scoring service without carrying markup.
func Sanitize(input string) string {
	out := input
	for _, e := range htmlEntities {
		out = strings.ReplaceAll(out, e.raw, e.entity)
	}
	return out
}

// Unescape reverses Sanitize. The ampersand is restored last.
func Unescape(input string) string {
	out := input
	for i := len(htmlEntities) - 1; i >= 0; i-- {
		out = strings.ReplaceAll(out, htmlEntities[i].entity, htmlEntities[i].raw)
	}
	return out
}

// CountWords counts whitespace separated words.
// Example: "a b  c" -> 3, "   " -> 0
//
// Separators are exactly the characters matched by \s in static/app.js.
func CountWords(text string) int {
	return len(strings.FieldsFunc(text, isSpace))
}

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\u00a0', '\u1680',
		'\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}
