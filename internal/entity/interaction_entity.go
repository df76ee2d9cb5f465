package entity

import (
	"encoding/json"
	"fmt"

	"cme-be/pkg/faction"
)

type ActorKind int

const (
	ActorUnresolved ActorKind = iota
	ActorMdb
	ActorFaction
)

// Actor is the sender or receiver of an interaction. Exactly one of the
// variants is set, selected by Kind.
type Actor struct {
	Kind    ActorKind
	Mdb     *Mdb
	Faction faction.Faction
	Text    string
}

func MdbActor(m *Mdb) Actor {
	return Actor{Kind: ActorMdb, Mdb: m}
}

func FactionActor(f faction.Faction) Actor {
	return Actor{Kind: ActorFaction, Faction: f}
}

func UnresolvedActor(text string) Actor {
	return Actor{Kind: ActorUnresolved, Text: text}
}

// ActorCases holds one handler per variant; see Actor.Match.
type ActorCases[T any] struct {
	Mdb        func(*Mdb) T
	Faction    func(faction.Faction) T
	Unresolved func(string) T
}

// Match dispatches on the variant. All three handlers must be set.
func Match[T any](a Actor, cases ActorCases[T]) T {
	switch a.Kind {
	case ActorMdb:
		return cases.Mdb(a.Mdb)
	case ActorFaction:
		return cases.Faction(a.Faction)
	default:
		return cases.Unresolved(a.Text)
	}
}

// IsEmpty reports whether the actor carries no usable identity.
func (a Actor) IsEmpty() bool {
	return Match(a, ActorCases[bool]{
		Mdb:        func(m *Mdb) bool { return m == nil },
		Faction:    func(f faction.Faction) bool { return !f.Valid() },
		Unresolved: func(s string) bool { return s == "" },
	})
}

// ID projects the actor to its canonical id: the person id, the faction code
// or the unresolved text.
func (a Actor) ID() string {
	return Match(a, ActorCases[string]{
		Mdb: func(m *Mdb) string {
			if m == nil {
				return ""
			}
			return m.Id.String()
		},
		Faction:    func(f faction.Faction) string { return f.ID() },
		Unresolved: func(s string) string { return s },
	})
}

func (a Actor) String() string {
	return Match(a, ActorCases[string]{
		Mdb: func(m *Mdb) string {
			if m == nil {
				return "<nil>"
			}
			return fmt.Sprintf("%s (%s)", m.FullName(), m.Id)
		},
		Faction:    func(f faction.Faction) string { return f.Name() },
		Unresolved: func(s string) string { return fmt.Sprintf("unresolved %q", s) },
	})
}

// InteractionCandidate is one paragraph of a speech together with the
// annotation that followed it. Comment is nil for paragraphs without one.
type InteractionCandidate struct {
	Speaker   *Mdb
	Paragraph string
	Comment   *string
}

// InteractionDebug records where an interaction came from.
type InteractionDebug struct {
	OrigSpeaker     string `json:"orig_speaker"`
	OrigParagraph   string `json:"orig_paragraph"`
	FullCommentText string `json:"full_comment_text"`
	Part            string `json:"part"`
}

// Interaction is a directed message from Sender to Receiver. Receiver is
// never empty for interactions returned by the extractor.
type Interaction struct {
	Sender   Actor
	Receiver Actor
	Message  string
	Debug    *InteractionDebug
}

type interactionJSON struct {
	Sender   string            `json:"sender"`
	Receiver string            `json:"receiver"`
	Message  string            `json:"message"`
	Debug    *InteractionDebug `json:"debug,omitempty"`
}

// MarshalJSON serialises sender and receiver as their canonical ids.
func (i Interaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(interactionJSON{
		Sender:   i.Sender.ID(),
		Receiver: i.Receiver.ID(),
		Message:  i.Message,
		Debug:    i.Debug,
	})
}
