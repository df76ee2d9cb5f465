package transcript

import (
	"cme-be/internal/entity"
	"cme-be/pkg/faction"
)

// Assemble builds the communication model of one session. Every person and
// faction referenced as sender or receiver lands in the side maps exactly once,
// keyed by canonical id. The interaction slice is shared, not copied.
func Assemble(meta entity.SessionMetadata, interactions []entity.Interaction) *entity.Transcript {
	t := &entity.Transcript{
		Metadata:     meta,
		Interactions: interactions,
		Factions:     make(map[string]faction.Faction),
		Speakers:     make(map[string]*entity.Mdb),
	}

	collect := entity.ActorCases[struct{}]{
		Mdb: func(m *entity.Mdb) struct{} {
			if m != nil {
				if _, ok := t.Speakers[m.Id.String()]; !ok {
					t.Speakers[m.Id.String()] = m
				}
			}
			return struct{}{}
		},
		Faction: func(f faction.Faction) struct{} {
			t.Factions[f.ID()] = f
			return struct{}{}
		},
		Unresolved: func(string) struct{} { return struct{}{} },
	}

	for _, inter := range interactions {
		entity.Match(inter.Sender, collect)
		entity.Match(inter.Receiver, collect)
	}
	return t
}

// Project converts a transcript into its stored form: actors become ids,
// factions map to their canonical names and speakers lose their id, which is
// already the map key.
func Project(t *entity.Transcript) *entity.Session {
	s := &entity.Session{
		SessionId:         t.Metadata.SessionId(),
		SessionNo:         t.Metadata.SessionNo,
		LegislativePeriod: t.Metadata.LegislativePeriod,
		Start:             t.Metadata.Start,
		End:               t.Metadata.End,
		Interactions:      make([]entity.StoredInteraction, 0, len(t.Interactions)),
		Factions:          make(map[string]string, len(t.Factions)),
		Speakers:          make(map[string]entity.StoredSpeaker, len(t.Speakers)),
	}

	for _, inter := range t.Interactions {
		s.Interactions = append(s.Interactions, entity.StoredInteraction{
			Sender:   inter.Sender.ID(),
			Receiver: inter.Receiver.ID(),
			Message:  inter.Message,
			Debug:    inter.Debug,
		})
	}
	for id, f := range t.Factions {
		s.Factions[id] = f.Name()
	}
	for id, m := range t.Speakers {
		s.Speakers[id] = entity.StoredSpeaker{
			MdbNumber:   m.MdbNumber,
			Forename:    m.Forename,
			Surname:     m.Surname,
			Memberships: m.Memberships,
			Birthday:    m.Birthday,
			Birthplace:  m.Birthplace,
			Title:       m.Title,
			JobTitle:    m.JobTitle,
		}
	}
	return s
}
