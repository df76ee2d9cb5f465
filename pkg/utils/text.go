package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// CleanupString NFC-normalises s and replaces every unicode space separator
// (NBSP, the U+2000 block, narrow NBSP, ideographic space, line and paragraph
// separators ...) with a plain ASCII space.
func CleanupString(s string) string {
	if s == "" {
		return s
	}
	s = norm.NFC.String(s)
	return strings.Map(func(r rune) rune {
		if r != ' ' && (unicode.Is(unicode.Zs, r) || r == '\u2028' || r == '\u2029' || r == '\u180e') {
			return ' '
		}
		return r
	}, s)
}

// CollapseSpaces trims s and reduces every whitespace run to a single space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
