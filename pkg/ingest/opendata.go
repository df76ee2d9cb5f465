package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"cme-be/internal/entity"
	"cme-be/internal/pkg/logger"
	"cme-be/pkg/faction"
	"cme-be/pkg/identity"
	"cme-be/pkg/utils"
)

// FlexString accepts both JSON strings and numbers. The open data export is
// not consistent about ids.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// OpenDataSession is a crawled session in the Bundestag open data format.
type OpenDataSession struct {
	Id              FlexString        `json:"_id"`
	SitzungDatum    string            `json:"sitzungDatum"`
	RednerListe     []OpenDataSpeaker `json:"rednerListe"`
	Sitzungsverlauf struct {
		SitzungStart  string              `json:"sitzungStart"`
		SitzungEnde   string              `json:"sitzungEnde"`
		Ablaufspunkte []OpenDataAgendaItem `json:"ablaufspunkte"`
	} `json:"sitzungsverlauf"`
}

// OpenDataSpeaker is one entry of the speaker list, also used by the master
// data export.
type OpenDataSpeaker struct {
	Id           FlexString           `json:"_id"`
	Vorname      string               `json:"vorname"`
	Nachname     string               `json:"nachname"`
	Geburtsdatum string               `json:"geburtsdatum"`
	Geburtsort   string               `json:"geburtsort"`
	Titel        string               `json:"titel"`
	Beruf        string               `json:"beruf"`
	Fraktionen   []OpenDataMembership `json:"fraktionen"`
}

type OpenDataMembership struct {
	Beschreibung   string `json:"beschreibung"`
	EintrittsDatum string `json:"eintrittsDatum"`
	AustrittsDatum string `json:"austrittsDatum"`
}

type OpenDataAgendaItem struct {
	AblaufTyp string           `json:"ablaufTyp"`
	Reden     []OpenDataSpeech `json:"reden"`
}

type OpenDataSpeech struct {
	RednerId   FlexString           `json:"rednerId"`
	RedeInhalt []OpenDataSpeechPart `json:"redeInhalt"`
}

type OpenDataSpeechPart struct {
	Typ  string `json:"typ"`
	Text string `json:"text"`
}

// MdbLookup finds persons already known by their external id.
type MdbLookup interface {
	FindByMdbNumber(ctx context.Context, mdbNumber string) (*entity.Mdb, error)
}

// Resolver finds or creates canonical persons.
type Resolver interface {
	FindOrCreate(ctx context.Context, req identity.MdbRequest) (*entity.Mdb, error)
}

// Result is one session ready for extraction.
type Result struct {
	Metadata   entity.SessionMetadata
	Candidates []entity.InteractionCandidate
}

const logModule = "INGEST"

var isoLayouts = []string{
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseISO(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", s)
}

// mergeDateTime takes the date of one ISO timestamp and the clock time of
// another.
func mergeDateTime(datePart, timePart string) (time.Time, error) {
	d, err := parseISO(datePart)
	if err != nil {
		return time.Time{}, err
	}
	if strings.TrimSpace(timePart) == "" {
		return d, nil
	}
	t, err := parseISO(timePart)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
}

// SpeakerRequest converts a master data entry into a find-or-create request.
// Membership descriptions that do not resolve are kept as Legacy and logged.
func SpeakerRequest(sp OpenDataSpeaker, createdBy string, log logger.ILogger) identity.MdbRequest {
	req := identity.MdbRequest{
		MdbNumber:  string(sp.Id),
		Forename:   utils.CleanupString(strings.TrimSpace(sp.Vorname)),
		Surname:    utils.CleanupString(strings.TrimSpace(sp.Nachname)),
		Birthplace: utils.CleanupString(sp.Geburtsort),
		Title:      utils.CleanupString(sp.Titel),
		JobTitle:   utils.CleanupString(sp.Beruf),
		CreatedBy:  createdBy,
	}

	if sp.Geburtsdatum != "" {
		if b, err := parseISO(sp.Geburtsdatum); err == nil {
			req.Birthday = &b
		} else {
			log.Warn(logModule, "Invalid birthday", map[string]interface{}{
				"mdb_number": req.MdbNumber,
				"value":      sp.Geburtsdatum,
			})
		}
	}

	for _, m := range sp.Fraktionen {
		f, ok := faction.FromDescription(m.Beschreibung)
		if !ok {
			log.Warn(logModule, "Unknown faction description", map[string]interface{}{
				"mdb_number":  req.MdbNumber,
				"description": m.Beschreibung,
			})
		}
		membership := entity.Membership{Faction: f}
		if start, err := parseISO(m.EintrittsDatum); err == nil {
			membership.Start = start
		}
		if m.AustrittsDatum != "" {
			if end, err := parseISO(m.AustrittsDatum); err == nil {
				membership.End = &end
			}
		}
		req.Memberships = append(req.Memberships, membership)
	}
	return req
}

// JSONReader reads sessions in the open data format.
type JSONReader struct {
	resolver Resolver
	mdbs     MdbLookup
	logger   logger.ILogger
}

func NewJSONReader(resolver Resolver, mdbs MdbLookup, logger logger.ILogger) *JSONReader {
	return &JSONReader{
		resolver: resolver,
		mdbs:     mdbs,
		logger:   logger,
	}
}

func (r *JSONReader) Read(ctx context.Context, in io.Reader) (*Result, error) {
	var doc OpenDataSession
	if err := json.NewDecoder(in).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode open data session: %w", err)
	}
	return r.Convert(ctx, &doc)
}

// Convert resolves the speaker list and builds the candidates of a decoded
// session.
func (r *JSONReader) Convert(ctx context.Context, doc *OpenDataSession) (*Result, error) {
	meta, err := openDataMetadata(doc)
	if err != nil {
		return nil, err
	}

	speakers := make(map[string]*entity.Mdb, len(doc.RednerListe))
	for _, sp := range doc.RednerListe {
		mdb, err := r.resolver.FindOrCreate(ctx, SpeakerRequest(sp, "json_ingest", r.logger))
		if err != nil {
			return nil, fmt.Errorf("resolve speaker %s: %w", sp.Id, err)
		}
		speakers[string(sp.Id)] = mdb
	}

	candidates, err := r.candidates(ctx, doc.Sitzungsverlauf.Ablaufspunkte, speakers)
	if err != nil {
		return nil, err
	}
	return &Result{Metadata: meta, Candidates: candidates}, nil
}

func openDataMetadata(doc *OpenDataSession) (entity.SessionMetadata, error) {
	id := strings.TrimSpace(string(doc.Id))
	if len(id) < 3 {
		return entity.SessionMetadata{}, fmt.Errorf("invalid session id %q", id)
	}
	period, err := strconv.Atoi(id[:2])
	if err != nil {
		return entity.SessionMetadata{}, fmt.Errorf("invalid session id %q: %w", id, err)
	}
	sessionNo, err := strconv.Atoi(id[2:])
	if err != nil {
		return entity.SessionMetadata{}, fmt.Errorf("invalid session id %q: %w", id, err)
	}

	meta := entity.SessionMetadata{SessionNo: sessionNo, LegislativePeriod: period}
	if doc.SitzungDatum != "" {
		if meta.Start, err = mergeDateTime(doc.SitzungDatum, doc.Sitzungsverlauf.SitzungStart); err != nil {
			return meta, fmt.Errorf("session %s start: %w", id, err)
		}
		if meta.End, err = mergeDateTime(doc.SitzungDatum, doc.Sitzungsverlauf.SitzungEnde); err != nil {
			return meta, fmt.Errorf("session %s end: %w", id, err)
		}
	}
	return meta, nil
}

func (r *JSONReader) candidates(ctx context.Context, items []OpenDataAgendaItem, speakers map[string]*entity.Mdb) ([]entity.InteractionCandidate, error) {
	var candidates []entity.InteractionCandidate
	var unknown []string
	reported := make(map[string]bool)

	for _, item := range items {
		switch strings.ToLower(item.AblaufTyp) {
		case "sitzungsbeginn", "tagesordnungspunkt":
		default:
			continue
		}

		var pending *string
		for _, speech := range item.Reden {
			if len(speech.RedeInhalt) == 0 {
				continue
			}

			id := string(speech.RednerId)
			speaker, ok := speakers[id]
			if !ok {
				found, err := r.mdbs.FindByMdbNumber(ctx, id)
				if err != nil {
					return nil, fmt.Errorf("find speaker %s: %w", id, err)
				}
				if found != nil {
					r.logger.Info(logModule, "Found speaker through external id", map[string]interface{}{
						"mdb_number": id,
					})
					speakers[id] = found
					speaker = found
				} else {
					if !reported[id] {
						reported[id] = true
						unknown = append(unknown, id)
					}
					continue
				}
			}

			for _, part := range speech.RedeInhalt {
				text := utils.CleanupString(part.Text)
				switch typ := strings.ToLower(part.Typ); {
				case pending != nil && typ == "paragraf":
					candidates = append(candidates, entity.InteractionCandidate{
						Speaker:   speaker,
						Paragraph: *pending,
					})
					pending = &text
				case typ == "kommentar":
					if pending != nil && *pending != "" {
						comment := text
						candidates = append(candidates, entity.InteractionCandidate{
							Speaker:   speaker,
							Paragraph: *pending,
							Comment:   &comment,
						})
					}
					pending = nil
				default:
					pending = &text
				}
			}
		}
	}

	if len(unknown) > 0 {
		r.logger.Warn(logModule, "Speakers missing from the speaker list", map[string]interface{}{
			"ids": unknown,
		})
	}
	return candidates, nil
}
