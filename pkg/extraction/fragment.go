package extraction

import (
	"context"
	"regexp"
	"strings"

	"cme-be/internal/entity"
	"cme-be/pkg/faction"
)

// Draft is one (sender, receiver, message) triple read from a fragment.
// Receiver is nil unless the fragment names an explicit addressee.
type Draft struct {
	Sender   entity.Actor
	Receiver *entity.Actor
	Message  string
}

var (
	// receiverConnectors mark "<sender>, an <receiver>" attributions.
	receiverConnectors = []string{", an", ", zur"}
	mentionSeparator   = regexp.MustCompile(`\sund\s|\ssowie\s|,\s`)
)

// Extract reads one annotation fragment. A colon marks quoted speech, anything
// else is treated as a non-verbal reaction. The only error besides storage
// failures is ErrAmbiguousSender.
func (e *Extractor) Extract(ctx context.Context, fragment string) ([]Draft, error) {
	if strings.Contains(fragment, ":") {
		return e.extractSpeech(ctx, fragment)
	}
	return e.extractReaction(ctx, fragment)
}

func (e *Extractor) extractSpeech(ctx context.Context, fragment string) ([]Draft, error) {
	idx := strings.Index(fragment, ":")
	prefix := strings.TrimSpace(fragment[:idx])
	message := strings.TrimSpace(fragment[idx+1:])

	var receiverPerson string
	var receiverFaction *faction.Faction
	if hasReceiverConnector(prefix) {
		comma := strings.Index(prefix, ",")
		clause := strings.TrimSpace(prefix[comma+1:])
		prefix = strings.TrimSpace(prefix[:comma])

		if persons := findPersons(clause); len(persons) > 0 {
			receiverPerson = persons[0]
		} else if factions := faction.InText(clause); len(factions) > 0 {
			receiverFaction = &factions[0]
		} else {
			e.logger.Warn(logModule, "Unhandled alternative receiver", map[string]interface{}{
				"receiver": clause,
				"part":     fragment,
			})
		}
	}

	var drafts []Draft
	persons := findPersons(prefix)
	switch {
	case len(persons) > 1:
		return nil, ambiguous(persons, fragment)
	case len(persons) == 1:
		sender, err := e.buildPerson(ctx, persons[0])
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, Draft{Sender: sender, Message: message})
	default:
		factions := faction.InText(prefix)
		if len(factions) == 0 && !isNoise(fragment) {
			e.logger.Warn(logModule, "No direct sender found, ignoring message", map[string]interface{}{
				"part": fragment,
			})
		}
		for _, f := range factions {
			drafts = append(drafts, Draft{Sender: entity.FactionActor(f), Message: message})
		}
	}

	if len(drafts) == 0 {
		return drafts, nil
	}

	var receiver *entity.Actor
	switch {
	case receiverPerson != "":
		r, err := e.buildPerson(ctx, receiverPerson)
		if err != nil {
			return nil, err
		}
		receiver = &r
	case receiverFaction != nil:
		r := entity.FactionActor(*receiverFaction)
		receiver = &r
	}
	if receiver != nil {
		for i := range drafts {
			drafts[i].Receiver = receiver
		}
	}
	return drafts, nil
}

func (e *Extractor) extractReaction(ctx context.Context, fragment string) ([]Draft, error) {
	words := strings.Fields(fragment)

	lastKeyword := -1
	for i, w := range words {
		if _, ok := reactionKeywords[w]; ok {
			lastKeyword = i
		}
	}
	if lastKeyword < 0 {
		if !isNoise(fragment) {
			e.logger.Warn(logModule, "No reaction keyword found, ignoring message", map[string]interface{}{
				"part": fragment,
			})
		}
		return nil, nil
	}

	relevant := strings.Join(words[lastKeyword+1:], " ")
	if relevant == "" {
		if !isNoise(fragment) {
			e.logger.Warn(logModule, "Reaction without source, ignoring message", map[string]interface{}{
				"part": fragment,
			})
		}
		return nil, nil
	}

	var drafts []Draft
	seen := make(map[faction.Faction]bool)
	for _, mention := range mentionSeparator.Split(relevant, -1) {
		persons := findPersons(mention)
		if len(persons) > 1 {
			return nil, ambiguous(persons, fragment)
		}
		if len(persons) == 1 {
			sender, err := e.buildPerson(ctx, persons[0])
			if err != nil {
				return nil, err
			}
			drafts = append(drafts, Draft{Sender: sender, Message: fragment})
			continue
		}

		factions := faction.InText(mention)
		if len(factions) == 0 && !isNoise(fragment) {
			e.logger.Warn(logModule, "No sender found in reaction, ignoring mention", map[string]interface{}{
				"mention": mention,
				"part":    fragment,
			})
		}
		for _, f := range factions {
			if seen[f] {
				continue
			}
			seen[f] = true
			drafts = append(drafts, Draft{Sender: entity.FactionActor(f), Message: fragment})
		}
	}
	return drafts, nil
}

func hasReceiverConnector(prefix string) bool {
	for _, c := range receiverConnectors {
		if strings.Contains(prefix, c) {
			return true
		}
	}
	return false
}
