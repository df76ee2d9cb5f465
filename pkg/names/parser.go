// Package names decomposes person references of the plenary protocols into
// role, academic title, forename, surname prefix and surname.
package names

import (
	"regexp"
	"strings"
	"unicode"
)

// Name is the result of Parse. Surname never contains the prefix; use
// FullSurname for the stored form.
type Name struct {
	Role          string
	Title         string
	Forename      string
	SurnamePrefix string
	Surname       string
}

// FullSurname joins prefix and surname: "Frhr. von" + "Stetten".
func (n Name) FullSurname() string {
	return strings.TrimSpace(n.SurnamePrefix + " " + n.Surname)
}

// Complete reports whether both forename and surname were found.
func (n Name) Complete() bool {
	return n.Forename != "" && n.Surname != ""
}

var (
	knownRoles = []string{"Alterspräsident", "Vizepräsident", "Präsident"}

	// "Vizepräsident in" is a line break artifact of "Vizepräsidentin".
	splitRolePattern = regexp.MustCompile(`(Alterspräsident|Vizepräsident|Präsident)\s+in\b`)

	titleTokens = map[string]bool{
		"Dr.": true, "Prof.": true, "h.": true, "c.": true, "Ing.": true, "e.": true,
		"B.Sc.": true, "M.Sc.": true, "M.A.": true, "B.A.": true, "Dipl.": true,
		"Dipl.-Ing.": true, "Dr.-Ing.": true, "habil.": true, "med.": true,
		"rer.": true, "nat.": true, "pol.": true, "phil.": true, "jur.": true,
		"oec.": true, "theol.": true, "mult.": true,
	}

	prefixTokens = map[string]bool{
		"von": true, "vom": true, "van": true, "de": true, "De": true,
		"zu": true, "der": true, "den": true, "und": true, "la": true,
	}

	nobleRanks = map[string]bool{
		"Freiherr": true, "Frhr.": true, "Freifrau": true, "Freiin": true,
		"Baron": true, "Fürst": true, "Graf": true, "Gräfin": true,
		"Prinz": true, "Prinzessin": true,
	}
)

// Parse decomposes raw. Rules are applied in order:
//  1. split role words are re-joined,
//  2. a leading role word is removed,
//  3. all-lower-case tokens that are neither title nor name particle are
//     dropped as line break artifacts,
//  4. the leading run of academic title tokens becomes Title,
//  5. the first particle before the last token (optionally preceded by a
//     noble rank) starts SurnamePrefix, the last token is Surname and
//     everything before the particle is Forename.
//
// A result without forename or surname is returned as is; see Complete.
func Parse(raw string) Name {
	var n Name

	text := strings.Join(strings.Fields(raw), " ")
	text = splitRolePattern.ReplaceAllString(text, "${1}in")
	tokens := joinHyphenated(strings.Fields(text))

	if len(tokens) > 0 {
		for _, role := range knownRoles {
			if strings.HasPrefix(tokens[0], role) {
				n.Role = tokens[0]
				tokens = tokens[1:]
				break
			}
		}
	}

	kept := tokens[:0:0]
	for _, tok := range tokens {
		if prefixTokens[tok] || titleTokens[tok] || !isLowerWord(tok) {
			kept = append(kept, tok)
		}
	}
	tokens = kept

	titleEnd := 0
	for titleEnd < len(tokens) && titleTokens[tokens[titleEnd]] {
		titleEnd++
	}
	n.Title = strings.Join(tokens[:titleEnd], " ")
	tokens = tokens[titleEnd:]

	if len(tokens) == 0 {
		return n
	}

	last := len(tokens) - 1
	n.Surname = tokens[last]

	prefixStart := -1
	for i := 0; i < last; i++ {
		if prefixTokens[tokens[i]] {
			prefixStart = i
			break
		}
	}

	if prefixStart < 0 {
		n.Forename = strings.Join(tokens[:last], " ")
		return n
	}

	if prefixStart > 0 && nobleRanks[tokens[prefixStart-1]] {
		prefixStart--
	}
	n.Forename = strings.Join(tokens[:prefixStart], " ")
	n.SurnamePrefix = strings.Join(tokens[prefixStart:last], " ")
	return n
}

// joinHyphenated re-joins name parts that a line break separated around a
// dash: "Hans- Georg" and "Kramp -Karrenbauer".
func joinHyphenated(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if i+1 < len(tokens) && tok != "-" && tokens[i+1] != "-" &&
			(strings.HasSuffix(tok, "-") || strings.HasPrefix(tokens[i+1], "-")) {
			tok += tokens[i+1]
			i++
		}
		out = append(out, tok)
	}
	return out
}

func isLowerWord(tok string) bool {
	hasLetter := false
	for _, r := range tok {
		if unicode.IsUpper(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
