package transcript

import (
	"encoding/json"
	"testing"
	"time"

	"cme-be/internal/entity"
	"cme-be/pkg/faction"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() (entity.SessionMetadata, []entity.Interaction, *entity.Mdb, *entity.Mdb) {
	speaker := &entity.Mdb{Id: uuid.New(), Forename: "Petra", Surname: "Pau",
		Memberships: []entity.Membership{{Faction: faction.DieLinke}}}
	heckler := &entity.Mdb{Id: uuid.New(), Forename: "Jan", Surname: "Korte"}

	meta := entity.SessionMetadata{
		SessionNo:         7,
		LegislativePeriod: 19,
		Start:             time.Date(2017, 12, 12, 9, 0, 0, 0, time.UTC),
		End:               time.Date(2017, 12, 12, 18, 30, 0, 0, time.UTC),
	}
	interactions := []entity.Interaction{
		{Sender: entity.FactionActor(faction.SPD), Receiver: entity.MdbActor(speaker), Message: "Beifall bei der SPD"},
		{Sender: entity.FactionActor(faction.SPD), Receiver: entity.MdbActor(speaker), Message: "Zuruf von der SPD"},
		{Sender: entity.MdbActor(heckler), Receiver: entity.FactionActor(faction.AfD), Message: "Nein!"},
		{Sender: entity.MdbActor(heckler), Receiver: entity.MdbActor(speaker), Message: "Doch!"},
	}
	return meta, interactions, speaker, heckler
}

func TestAssemble_CollectsDistinctActors(t *testing.T) {
	meta, interactions, speaker, heckler := fixture()
	tr := Assemble(meta, interactions)

	assert.Equal(t, meta, tr.Metadata)
	assert.Len(t, tr.Interactions, 4)
	assert.Equal(t, map[string]faction.Faction{
		"F001": faction.SPD,
		"F004": faction.AfD,
	}, tr.Factions)
	require.Len(t, tr.Speakers, 2)
	assert.Same(t, speaker, tr.Speakers[speaker.Id.String()])
	assert.Same(t, heckler, tr.Speakers[heckler.Id.String()])
}

func TestAssemble_Empty(t *testing.T) {
	tr := Assemble(entity.SessionMetadata{}, nil)
	assert.Empty(t, tr.Factions)
	assert.Empty(t, tr.Speakers)
}

func TestProject_UsesIds(t *testing.T) {
	meta, interactions, speaker, heckler := fixture()
	s := Project(Assemble(meta, interactions))

	assert.Equal(t, "19007", s.SessionId)
	require.Len(t, s.Interactions, 4)
	assert.Equal(t, "F001", s.Interactions[0].Sender)
	assert.Equal(t, speaker.Id.String(), s.Interactions[0].Receiver)
	assert.Equal(t, heckler.Id.String(), s.Interactions[2].Sender)
	assert.Equal(t, "F004", s.Interactions[2].Receiver)
	assert.Equal(t, "SPD", s.Factions["F001"])
	assert.Equal(t, "Korte", s.Speakers[heckler.Id.String()].Surname)
	assert.Equal(t, faction.DieLinke, s.Speakers[speaker.Id.String()].Memberships[0].Faction)
}

func TestInteraction_MarshalsActorIds(t *testing.T) {
	_, interactions, speaker, _ := fixture()
	raw, err := json.Marshal(interactions[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"sender":"F001","receiver":"`+speaker.Id.String()+`","message":"Beifall bei der SPD"}`, string(raw))
}
