package ingest

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cme-be/internal/entity"
	"cme-be/internal/pkg/logger"
	"cme-be/internal/repository/memory"
	"cme-be/pkg/faction"
	"cme-be/pkg/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newReader(t *testing.T) (*Reader, *memory.MdbRepository, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	log := logger.NewFromCore(core)
	repo := memory.NewMdbRepository()
	resolver := identity.NewResolver(repo, identity.NewKeyedMutex(), log)
	return NewReader(resolver, repo, log), repo, logs
}

func TestXMLReader_Protocol(t *testing.T) {
	r, _, _ := newReader(t)
	res, err := r.ReadFile(context.Background(), filepath.Join("testdata", "19001.xml"))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Metadata.SessionNo)
	assert.Equal(t, 19, res.Metadata.LegislativePeriod)
	assert.Equal(t, time.Date(2017, 10, 24, 11, 0, 0, 0, time.UTC), res.Metadata.Start)
	assert.Equal(t, time.Date(2017, 10, 24, 16, 32, 0, 0, time.UTC), res.Metadata.End)

	require.Len(t, res.Candidates, 4)

	solms := res.Candidates[0].Speaker
	require.NotNil(t, solms)
	assert.Equal(t, "Hermann Otto", solms.Forename)
	assert.Equal(t, "Solms", solms.Surname)
	assert.Equal(t, "Dr.", solms.Title)
	assert.Equal(t, "Guten Morgen.", res.Candidates[0].Paragraph)
	require.NotNil(t, res.Candidates[0].Comment)
	assert.Equal(t, "(Beifall)", *res.Candidates[0].Comment)

	assert.Equal(t, "Zweiter Absatz.", res.Candidates[1].Paragraph)
	assert.Nil(t, res.Candidates[1].Comment)

	schneider := res.Candidates[2].Speaker
	require.NotNil(t, schneider)
	assert.Equal(t, "11004097", schneider.MdbNumber)
	assert.Equal(t, "Schneider", schneider.Surname)
	require.Len(t, schneider.Memberships, 1)
	assert.Equal(t, faction.SPD, schneider.Memberships[0].Faction)
	assert.Equal(t, "Erster Satz.", res.Candidates[2].Paragraph)
	assert.Nil(t, res.Candidates[2].Comment)

	assert.Equal(t, "Zweiter Satz.", res.Candidates[3].Paragraph)
	require.NotNil(t, res.Candidates[3].Comment)
	assert.Equal(t, "(Beifall bei der SPD – Zuruf von der AfD: Unsinn!)", *res.Candidates[3].Comment)
	assert.Same(t, schneider, res.Candidates[3].Speaker)
}

func TestXMLReader_SpeechSpeakerEndsWithSpeech(t *testing.T) {
	const protocol = `<?xml version="1.0" encoding="UTF-8"?>
<dbtplenarprotokoll sitzung-datum="07.11.2017" sitzung-start-uhrzeit="10:00" sitzung-ende-uhrzeit="12:00">
  <vorspann><kopfdaten><wahlperiode>19</wahlperiode><sitzungsnr>2</sitzungsnr></kopfdaten></vorspann>
  <sitzungsverlauf>
    <sitzungsbeginn>
      <name>Präsident Wolfgang Schäuble:</name>
      <p klasse="J_1">Die Sitzung ist eröffnet.</p>
    </sitzungsbeginn>
    <tagesordnungspunkt top-id="Tagesordnungspunkt 1">
      <rede id="ID19200100">
        <p klasse="redner"><redner id="11004097"><name><vorname>Carsten</vorname><nachname>Schneider</nachname><fraktion>SPD</fraktion></name></redner>Carsten Schneider (SPD):</p>
        <p klasse="J_1">Rede.</p>
      </rede>
      <kommentar>(Heiterkeit)</kommentar>
    </tagesordnungspunkt>
  </sitzungsverlauf>
</dbtplenarprotokoll>`

	core, _ := observer.New(zap.DebugLevel)
	log := logger.NewFromCore(core)
	repo := memory.NewMdbRepository()
	r := NewXMLReader(identity.NewResolver(repo, identity.NewKeyedMutex(), log), log)

	res, err := r.Read(context.Background(), strings.NewReader(protocol))
	require.NoError(t, err)
	require.Len(t, res.Candidates, 3)

	president := res.Candidates[0].Speaker
	require.NotNil(t, president)
	assert.Equal(t, "Schäuble", president.Surname)

	require.NotNil(t, res.Candidates[1].Speaker)
	assert.Equal(t, "Schneider", res.Candidates[1].Speaker.Surname)
	assert.Equal(t, "Rede.", res.Candidates[1].Paragraph)

	require.NotNil(t, res.Candidates[2].Comment)
	assert.Equal(t, "(Heiterkeit)", *res.Candidates[2].Comment)
	assert.Empty(t, res.Candidates[2].Paragraph)
	assert.Same(t, president, res.Candidates[2].Speaker)
}

func TestXMLReader_MalformedDocument(t *testing.T) {
	r, _, _ := newReader(t)
	_, err := r.xml.Read(context.Background(), strings.NewReader("<dbtplenarprotokoll><kopfdaten>"))
	assert.Error(t, err)
}

func TestJSONReader_OpenData(t *testing.T) {
	r, repo, logs := newReader(t)
	ctx := context.Background()

	known := &entity.Mdb{MdbNumber: "11001478", Forename: "Petra", Surname: "Pau"}
	require.NoError(t, repo.Create(ctx, known))

	res, err := r.ReadFile(ctx, filepath.Join("testdata", "19001.json"))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Metadata.SessionNo)
	assert.Equal(t, 19, res.Metadata.LegislativePeriod)
	assert.Equal(t, time.Date(2017, 10, 24, 11, 0, 0, 0, time.UTC), res.Metadata.Start)
	assert.Equal(t, time.Date(2017, 10, 24, 16, 32, 0, 0, time.UTC), res.Metadata.End)

	require.Len(t, res.Candidates, 3)

	first := res.Candidates[0]
	assert.Equal(t, "Erster Satz.", first.Paragraph)
	assert.Nil(t, first.Comment)
	require.NotNil(t, first.Speaker)
	assert.Equal(t, "11004097", first.Speaker.MdbNumber)
	assert.Equal(t, "Bankkaufmann", first.Speaker.JobTitle)
	require.NotNil(t, first.Speaker.Birthday)
	require.Len(t, first.Speaker.Memberships, 1)
	assert.Equal(t, faction.SPD, first.Speaker.Memberships[0].Faction)

	second := res.Candidates[1]
	assert.Equal(t, "Zweiter Satz.", second.Paragraph)
	require.NotNil(t, second.Comment)
	assert.Equal(t, "(Beifall bei der SPD)", *second.Comment)

	third := res.Candidates[2]
	assert.Equal(t, known.Id, third.Speaker.Id)
	assert.Equal(t, "Gespeichert.", third.Paragraph)

	missing := logs.FilterMessage("Speakers missing from the speaker list").All()
	require.Len(t, missing, 1)
	details := missing[0].ContextMap()["details"].(map[string]interface{})
	assert.Equal(t, []string{"99999999"}, details["ids"])
}

func TestSpeakerRequest_UnknownFaction(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	req := SpeakerRequest(OpenDataSpeaker{
		Id:       "1",
		Vorname:  "Max",
		Nachname: "Mustermann",
		Fraktionen: []OpenDataMembership{
			{Beschreibung: "Fraktion der Deutschen Partei", EintrittsDatum: "1953-10-06T00:00:00", AustrittsDatum: "1957-10-15T00:00:00"},
		},
	}, "test", logger.NewFromCore(core))

	require.Len(t, req.Memberships, 1)
	assert.Equal(t, faction.Legacy, req.Memberships[0].Faction)
	require.NotNil(t, req.Memberships[0].End)
	assert.Equal(t, 1957, req.Memberships[0].End.Year())
	assert.Equal(t, 1, logs.Len())
}

func TestReader_UnsupportedExtension(t *testing.T) {
	r, _, _ := newReader(t)
	_, err := r.ReadFile(context.Background(), filepath.Join("testdata", "19001.xml.txt"))
	assert.Error(t, err)
}

func TestMergeDateTime(t *testing.T) {
	got, err := mergeDateTime("2021-03-04T00:00:00", "1970-01-01T09:05:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 3, 4, 9, 5, 0, 0, time.UTC), got)

	_, err = mergeDateTime("gestern", "")
	assert.Error(t, err)
}
