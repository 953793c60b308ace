package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "hello world", "hello world"},
		{"empty", "", ""},
		{"script tag", `<script>alert("x")</script>`, "&lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt;"},
		{"apostrophe", "it's", "it&#039;s"},
		{"ampersand escaped once", "a & b < c", "a &amp; b &lt; c"},
		{"existing entity is escaped again", "&lt;", "&amp;lt;"},
		{"all five", `&<>"'`, "&amp;&lt;&gt;&quot;&#039;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestSanitize_NoRawSpecialCharactersRemain(t *testing.T) {
	inputs := []string{
		`<a href="http://evil.example/?a=1&b=2">click</a>`,
		"Tom & Jerry's <b>\"show\"</b>",
		"&&&<<<>>>\"\"\"'''",
		"Dear user,\nverify your account at <http://x.y> & reply 'now'",
	}

	for _, in := range inputs {
		out := Sanitize(in)
		for _, c := range []string{"<", ">", `"`, "'"} {
			assert.NotContains(t, out, c, "input %q", in)
		}
		// every remaining ampersand starts one of the known entities
		for i := strings.Index(out, "&"); i >= 0; {
			rest := out[i:]
			ok := false
			for _, e := range htmlEntities {
				if strings.HasPrefix(rest, e.entity) {
					ok = true
					break
				}
			}
			assert.True(t, ok, "bare ampersand in %q", out)
			next := strings.Index(out[i+1:], "&")
			if next < 0 {
				break
			}
			i += next + 1
		}
		assert.Equal(t, in, Unescape(out), "round trip of %q", in)
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"   ", 0},
		{"\n\t ", 0},
		{"a b  c", 3},
		{"  leading and trailing  ", 3},
		{"Please verify your account now", 5},
		{"line\nbreaks\tand\ttabs", 4},
		{"no\u00a0break\u3000ideographic", 3},
		{"bom\ufeffsplits", 2},
		{"nel\u0085joins", 1},
		{"thin\u2009space\u200azero\u200bwidth", 3},
		{"\v\f", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CountWords(tt.input), "CountWords(%q)", tt.input)
	}
}
