package faction

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownCode = errors.New("unknown open data faction code")

// alternativeNames holds every spelling used to recognise a faction inside
// free text. The first entry is the canonical name.
// "Rot" is shared by SPD and DIE LINKE on purpose: the colour is used for both
// in the protocols and both are reported.
var alternativeNames = map[Faction][]string{
	CDUCSU: {"CDU/CSU", "CDU", "CSU", "Christlich Demokratische Union",
		"Christlich-Soziale Union", "Union", "Schwarz"},
	SPD: {"SPD", "Sozialdemokratische Partei", "Sozialdemokraten",
		"Sozialdemokrat", "Rot"},
	DieLinke: {"DIE LINKE", "Die Linke", "Linke", "Linkspartei", "Rot"},
	Gruene: {"BÜNDNIS 90/DIE GRÜNEN", "Bündnis 90/Die Grünen", "BÜNDNISSES 90/DIE GRÜNEN",
		"Die Grünen", "DIE GRÜNEN", "Bündnis 90", "Grün"},
	AfD:          {"AfD", "Alternative für Deutschland", "Blau"},
	FDP:          {"FDP", "Freie Demokratische Partei", "Freie Demokraten", "Liberale", "Gelb"},
	Fraktionslos: {"Fraktionslos", "fraktionslos"},
	Legacy:       {"Unbekannt"},
}

// descriptions maps the official long form used by the Bundestag master data
// ("beschreibung" of a membership) to a faction.
var descriptions = map[string]Faction{
	"Fraktion der Christlich Demokratischen Union/Christlich - Sozialen Union": CDUCSU,
	"Fraktion der CDU/CSU (Gast)":                                              CDUCSU,
	"Fraktion der Sozialdemokratischen Partei Deutschlands":                    SPD,
	"Fraktion der SPD (Gast)":                                                  SPD,
	"Fraktion DIE LINKE.":                                                      DieLinke,
	"Fraktion Die Linke":                                                       DieLinke,
	"Fraktion BÜNDNIS 90/DIE GRÜNEN":                                           Gruene,
	"Fraktion Bündnis 90/Die Grünen":                                           Gruene,
	"Alternative für Deutschland":                                              AfD,
	"Fraktion der Freien Demokratischen Partei":                                FDP,
	"Fraktionslos":                                                             Fraktionslos,
}

// openDataCodes maps the numeric faction ids of the Bundestag open data format.
var openDataCodes = map[string]Faction{
	"1": CDUCSU,
	"2": SPD,
	"3": DieLinke,
	"4": Gruene,
	"5": AfD,
	"6": FDP,
	"7": Fraktionslos,
}

// AlternativeNames returns a copy of the spellings registered for f.
func AlternativeNames(f Faction) []string {
	names := alternativeNames[f]
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// InText returns every faction that has one of its alternative names as a
// substring of text, in registry order and without duplicates.
func InText(text string) []Faction {
	if text == "" {
		return nil
	}

	var found []Faction
	for _, f := range All() {
		if f == Legacy {
			continue
		}
		for _, name := range alternativeNames[f] {
			if strings.Contains(text, name) {
				found = append(found, f)
				break
			}
		}
	}
	return found
}

// FromDescription resolves the official long-form description of a faction.
// Unknown descriptions yield Legacy and false; callers log the miss.
func FromDescription(description string) (Faction, bool) {
	if f, ok := descriptions[strings.TrimSpace(description)]; ok {
		return f, true
	}
	return Legacy, false
}

// FromOpenDataCode maps the numeric codes 1..7 of the open data format.
func FromOpenDataCode(code string) (Faction, error) {
	if f, ok := openDataCodes[strings.TrimSpace(code)]; ok {
		return f, nil
	}
	return Legacy, fmt.Errorf("%w: %q", ErrUnknownCode, code)
}

// FromName returns the first faction that lists name as one of its exact
// spellings. An empty name means Fraktionslos.
func FromName(name string) (Faction, error) {
	if name == "" {
		return Fraktionslos, nil
	}
	for _, f := range All() {
		for _, candidate := range alternativeNames[f] {
			if candidate == name {
				return f, nil
			}
		}
	}
	return Legacy, fmt.Errorf("%w: %q", ErrUnknownFaction, name)
}
