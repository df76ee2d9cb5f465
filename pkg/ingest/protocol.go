package ingest

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cme-be/internal/entity"
	"cme-be/internal/pkg/logger"
	"cme-be/pkg/faction"
	"cme-be/pkg/identity"
	"cme-be/pkg/names"
	"cme-be/pkg/utils"

	"github.com/beevik/etree"
)

// protocolSpeaker is a speaker as announced in the protocol, before it is
// resolved to a person.
type protocolSpeaker struct {
	mdbNumber string
	forename  string
	surname   string
	title     string
	faction   string
}

// XMLReader reads plenary protocols in the Bundestag XML format
// (dbtplenarprotokoll).
type XMLReader struct {
	resolver Resolver
	logger   logger.ILogger
}

func NewXMLReader(resolver Resolver, logger logger.ILogger) *XMLReader {
	return &XMLReader{
		resolver: resolver,
		logger:   logger,
	}
}

type protocolWalk struct {
	ctx          context.Context
	reader       *XMLReader
	speaker      *protocolSpeaker
	firstSpeaker *protocolSpeaker
	pending      *string
	resolved     map[*protocolSpeaker]*entity.Mdb
	candidates   []entity.InteractionCandidate
}

func (r *XMLReader) Read(ctx context.Context, in io.Reader) (*Result, error) {
	doc, err := parseDocument(in)
	if err != nil {
		return nil, err
	}
	root := doc.FindElement("//dbtplenarprotokoll")
	if root == nil {
		return nil, fmt.Errorf("missing dbtplenarprotokoll element")
	}

	meta, err := protocolMetadata(root)
	if err != nil {
		return nil, err
	}

	course := root.FindElement(".//sitzungsverlauf")
	if course == nil {
		return &Result{Metadata: meta}, nil
	}

	w := &protocolWalk{
		ctx:      ctx,
		reader:   r,
		resolved: make(map[*protocolSpeaker]*entity.Mdb),
	}

	var opening *protocolSpeaker
	if start := course.FindElement(".//sitzungsbeginn"); start != nil {
		if err := w.block(start); err != nil {
			return nil, err
		}
		opening = w.firstSpeaker
	}

	for _, item := range course.FindElements(".//tagesordnungspunkt") {
		w.speaker = opening
		w.pending = nil
		if err := w.block(item); err != nil {
			return nil, err
		}
	}

	return &Result{Metadata: meta, Candidates: w.candidates}, nil
}

func protocolMetadata(root *etree.Element) (entity.SessionMetadata, error) {
	var meta entity.SessionMetadata
	head := root.FindElement(".//kopfdaten")
	if head == nil {
		return meta, fmt.Errorf("missing kopfdaten element")
	}

	var err error
	if meta.SessionNo, err = strconv.Atoi(strings.TrimSpace(descendantText(head, "sitzungsnr"))); err != nil {
		return meta, fmt.Errorf("invalid sitzungsnr: %w", err)
	}
	if meta.LegislativePeriod, err = strconv.Atoi(strings.TrimSpace(descendantText(head, "wahlperiode"))); err != nil {
		return meta, fmt.Errorf("invalid wahlperiode: %w", err)
	}

	date := root.SelectAttrValue("sitzung-datum", "")
	if meta.Start, err = utils.BuildDatetime(date, root.SelectAttrValue("sitzung-start-uhrzeit", ""), "DMY"); err != nil {
		return meta, fmt.Errorf("session start: %w", err)
	}
	if meta.End, err = utils.BuildDatetime(date, root.SelectAttrValue("sitzung-ende-uhrzeit", ""), "DMY"); err != nil {
		return meta, fmt.Errorf("session end: %w", err)
	}
	return meta, nil
}

// block walks the children of a session part in document order. Paragraphs
// become candidates once the next paragraph or annotation shows up. A speaker
// announced inside a speech is only current until the speech ends.
func (w *protocolWalk) block(el *etree.Element) error {
	for _, c := range el.ChildElements() {
		switch c.Tag {
		case "name":
			w.speaker = presidingSpeaker(textContent(c))
		case "rede":
			outer := w.speaker
			if err := w.block(c); err != nil {
				return err
			}
			w.speaker = outer
		case "p":
			switch klasse := c.SelectAttrValue("klasse", ""); klasse {
			case "redner":
				w.speaker = announcedSpeaker(c)
			case "J", "J_1", "O":
				text := cleanText(textContent(c))
				if err := w.flush(); err != nil {
					return err
				}
				w.pending = &text
			default:
				w.reader.logger.Debug(logModule, "Ignoring paragraph class", map[string]interface{}{
					"klasse": klasse,
				})
			}
		case "kommentar":
			comment := cleanText(textContent(c))
			paragraph := ""
			if w.pending != nil {
				paragraph = *w.pending
			}
			if err := w.emit(paragraph, &comment); err != nil {
				return err
			}
			w.pending = nil
		}
	}
	return w.flush()
}

func (w *protocolWalk) flush() error {
	if w.pending == nil {
		return nil
	}
	paragraph := *w.pending
	w.pending = nil
	return w.emit(paragraph, nil)
}

func (w *protocolWalk) emit(paragraph string, comment *string) error {
	if len(w.candidates) == 0 {
		w.firstSpeaker = w.speaker
	}
	speaker, err := w.resolve(w.speaker)
	if err != nil {
		return err
	}
	w.candidates = append(w.candidates, entity.InteractionCandidate{
		Speaker:   speaker,
		Paragraph: paragraph,
		Comment:   comment,
	})
	return nil
}

func (w *protocolWalk) resolve(sp *protocolSpeaker) (*entity.Mdb, error) {
	if sp == nil {
		return nil, nil
	}
	if mdb, ok := w.resolved[sp]; ok {
		return mdb, nil
	}
	if sp.forename == "" || sp.surname == "" {
		w.reader.logger.Warn(logModule, "Speaker without complete name", map[string]interface{}{
			"forename":   sp.forename,
			"surname":    sp.surname,
			"mdb_number": sp.mdbNumber,
		})
		w.resolved[sp] = nil
		return nil, nil
	}

	req := identity.MdbRequest{
		MdbNumber: sp.mdbNumber,
		Forename:  sp.forename,
		Surname:   sp.surname,
		Title:     sp.title,
		CreatedBy: "xml_ingest",
	}
	if found := faction.InText(sp.faction); len(found) == 1 {
		req.Memberships = []entity.Membership{{Faction: found[0]}}
	}

	mdb, err := w.reader.resolver.FindOrCreate(w.ctx, req)
	if err != nil {
		return nil, fmt.Errorf("resolve speaker %s %s: %w", sp.forename, sp.surname, err)
	}
	w.resolved[sp] = mdb
	return mdb, nil
}

// presidingSpeaker reads "Vizepräsidentin Petra Pau:" style announcements.
func presidingSpeaker(text string) *protocolSpeaker {
	n := names.Parse(strings.TrimRight(cleanText(text), ":"))
	return &protocolSpeaker{
		forename: n.Forename,
		surname:  n.FullSurname(),
		title:    n.Title,
	}
}

// announcedSpeaker reads the redner block in front of a speech.
func announcedSpeaker(p *etree.Element) *protocolSpeaker {
	r := p.FindElement(".//redner")
	if r == nil {
		return nil
	}
	surname := strings.TrimSpace(cleanText(descendantText(r, "namenszusatz")) + " " +
		cleanText(descendantText(r, "nachname")))
	return &protocolSpeaker{
		mdbNumber: strings.TrimSpace(r.SelectAttrValue("id", "")),
		forename:  cleanText(descendantText(r, "vorname")),
		surname:   surname,
		title:     cleanText(descendantText(r, "titel")),
		faction:   cleanText(descendantText(r, "fraktion")),
	}
}

func cleanText(s string) string {
	return utils.CollapseSpaces(utils.CleanupString(s))
}
