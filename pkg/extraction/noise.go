package extraction

import "strings"

// fillerPhrases are complete fragments that carry no named source and are
// expected to yield nothing.
var fillerPhrases = map[string]struct{}{
	"":                            {},
	"()":                          {},
	"Beifall":                     {},
	"Allgemeiner Beifall":         {},
	"Anhaltender Beifall":         {},
	"Lebhafter Beifall":           {},
	"Beifall im ganzen Hause":     {},
	"Heiterkeit":                  {},
	"Allgemeine Heiterkeit":       {},
	"Heiterkeit und Beifall":      {},
	"Lachen":                      {},
	"Zuruf":                       {},
	"Zurufe":                      {},
	"Widerspruch":                 {},
	"Unruhe":                      {},
	"Große Unruhe":                {},
	"Glocke des Präsidenten":      {},
	"Glocke der Präsidentin":      {},
	"Die Anwesenden erheben sich": {},
}

// proceduralPrefixes start fragments describing the sitting itself.
var proceduralPrefixes = []string{
	"Glocke",
	"Unterbrechung",
	"Unruhe",
	"Schluss",
	"Die Anwesenden erheben sich",
}

// isNoise reports whether a soft miss on fragment is expected and should not
// be logged.
func isNoise(fragment string) bool {
	text := strings.TrimSpace(fragment)
	if _, ok := fillerPhrases[text]; ok {
		return true
	}
	for _, p := range proceduralPrefixes {
		if strings.HasPrefix(text, p) {
			return true
		}
	}
	return false
}
