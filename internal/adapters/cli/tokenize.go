package cli

import (
	"regexp"
	"strings"
)

// tokenPattern matches a single-quoted span or a run of non-space runes.
var tokenPattern = regexp.MustCompile(`'([^']*)'|\S+`)

// Tokenize splits a command line into tokens. A single-quoted span is one
// token with its quotes removed; everything else splits on whitespace.
func Tokenize(line string) []string {
	matches := tokenPattern.FindAllStringSubmatchIndex(line, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if m[2] >= 0 {
			out = append(out, line[m[2]:m[3]])
			continue
		}
		out = append(out, line[m[0]:m[1]])
	}
	return out
}

// StripQuotes trims every leading and trailing single or double quote.
func StripQuotes(s string) string {
	return strings.Trim(s, `"'`)
}
