package extraction

import (
	"context"
	"regexp"
	"strings"

	"cme-be/internal/entity"
	"cme-be/pkg/faction"
	"cme-be/pkg/identity"
	"cme-be/pkg/names"
)

// personPattern matches name text followed by one or more bracket groups,
// e.g. "Carsten Schneider [Erfurt] [SPD]".
var personPattern = regexp.MustCompile(`([^\[\]]*[^\s\[\]])\s*((?:\[[^\[\]]*\]\s*)+)`)

// reactionKeywords open a non-verbal reaction. The misspelling "Wiederspruch"
// occurs in the protocols.
var reactionKeywords = map[string]struct{}{
	"Beifall":      {},
	"Zuruf":        {},
	"Zurufe":       {},
	"Heiterkeit":   {},
	"Lachen":       {},
	"Wiederspruch": {},
	"Widerspruch":  {},
	"Gegenruf":     {},
	"Gegenrufe":    {},
	"Buhrufe":      {},
	"Pfiffe":       {},
}

// fillerTokens show up in person text when a reaction was cut in the wrong
// place ("wo", "am Rednerpult").
var fillerTokens = map[string]struct{}{
	"am": {},
	"um": {},
	"ne": {},
	"wo": {},
	"Wo": {},
}

// findPersons returns every bracketed person reference in text.
func findPersons(text string) []string {
	return personPattern.FindAllString(text, -1)
}

// personReference is a person text split into name and bracket contents.
type personReference struct {
	raw      string
	name     string
	metadata []string
}

func parsePersonReference(text string) personReference {
	raw := text
	if idx := strings.Index(text, "Abg."); idx >= 0 {
		if sp := strings.Index(text[idx:], " "); sp >= 0 {
			text = strings.TrimSpace(text[idx+sp:])
		} else {
			text = ""
		}
	}

	text = strings.NewReplacer("(", "[", ")", "]").Replace(text)
	if strings.Count(text, "[") > strings.Count(text, "]") {
		text = strings.TrimLeft(text, "[")
	}

	var nameParts, metadata []string
	for {
		start := strings.Index(text, "[")
		if start < 0 {
			break
		}
		end := strings.Index(text[start:], "]")
		if end < 0 {
			break
		}
		end += start
		nameParts = append(nameParts, strings.TrimSpace(text[:start]))
		metadata = append(metadata, strings.TrimSpace(text[start+1:end]))
		text = text[end+1:]
	}
	if len(nameParts) == 0 {
		nameParts = append(nameParts, text)
	}

	return personReference{
		raw:      raw,
		name:     strings.Join(strings.Fields(strings.Join(nameParts, " ")), " "),
		metadata: metadata,
	}
}

// bracketFaction picks the first bracket naming exactly one faction, so that
// qualifiers like a constituency ("[Erfurt]") are skipped.
func (p personReference) bracketFaction() (faction.Faction, bool) {
	for _, m := range p.metadata {
		if found := faction.InText(m); len(found) == 1 {
			return found[0], true
		}
	}
	return faction.Legacy, false
}

func (p personReference) hasFillerToken() bool {
	for _, tok := range strings.Fields(p.name) {
		if _, ok := reactionKeywords[tok]; ok {
			return true
		}
		if _, ok := fillerTokens[tok]; ok {
			return true
		}
	}
	return false
}

// buildPerson parses a bracketed person reference and resolves it. Malformed
// references come back as an unresolved actor and are never stored. Only
// storage failures are returned as errors.
func (e *Extractor) buildPerson(ctx context.Context, text string) (entity.Actor, error) {
	ref := parsePersonReference(text)
	name := names.Parse(ref.name)
	forename, surname := name.Forename, name.FullSurname()

	if !name.Complete() {
		e.logger.Warn(logModule, "Incomplete person name", map[string]interface{}{
			"person":   ref.raw,
			"forename": forename,
			"surname":  surname,
		})
	}
	if forename == "" || surname == "" || ref.hasFillerToken() {
		return entity.UnresolvedActor(ref.raw), nil
	}

	var memberships []entity.Membership
	if f, ok := ref.bracketFaction(); ok {
		memberships = []entity.Membership{{Faction: f}}
	}

	req := identity.MdbRequest{
		Forename:    forename,
		Surname:     surname,
		Title:       name.Title,
		Memberships: memberships,
		CreatedBy:   createdBy,
	}
	if e.addDebug {
		req.Debug = map[string]interface{}{
			"constructed_from_text": true,
			"creation_person_str":   ref.raw,
		}
	}

	mdb, err := e.resolver.FindOrCreate(ctx, req)
	if err != nil {
		return entity.Actor{}, err
	}
	return entity.MdbActor(mdb), nil
}
