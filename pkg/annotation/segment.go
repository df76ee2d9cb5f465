// Package annotation splits the inline reaction markup of a transcript into
// independent comment fragments.
package annotation

import "strings"

// Separator is the en dash the protocols use between independent reactions.
const Separator = "\u2013"

// Segment strips one layer of enclosing parentheses from raw and splits it at
// every Separator. Fragments are trimmed. A message that itself contains the
// separator is split as well; that is a known limit of the convention.
func Segment(raw string) []string {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "(")
	text = strings.TrimSuffix(text, ")")

	if !strings.Contains(text, Separator) {
		return []string{strings.TrimSpace(text)}
	}

	parts := strings.Split(text, Separator)
	fragments := make([]string, 0, len(parts))
	for _, p := range parts {
		fragments = append(fragments, strings.TrimSpace(p))
	}
	return fragments
}
