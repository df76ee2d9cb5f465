package entity

import (
	"strconv"
	"time"

	"cme-be/pkg/faction"
	"cme-be/pkg/utils"

	"github.com/google/uuid"
)

type SessionMetadata struct {
	SessionNo         int
	LegislativePeriod int
	Start             time.Time
	End               time.Time
}

// SessionId is the legislative period followed by the padded session number.
func (m SessionMetadata) SessionId() string {
	return utils.SafeSessionID(strconv.Itoa(m.LegislativePeriod), strconv.Itoa(m.SessionNo))
}

// Transcript is the communication model of one session.
type Transcript struct {
	Metadata     SessionMetadata
	Interactions []Interaction
	Factions     map[string]faction.Faction
	Speakers     map[string]*Mdb
}

// StoredInteraction is an interaction projected to ids.
type StoredInteraction struct {
	Sender   string            `json:"sender"`
	Receiver string            `json:"receiver"`
	Message  string            `json:"message"`
	Debug    *InteractionDebug `json:"debug,omitempty"`
}

// StoredSpeaker is a person as embedded in a stored session, keyed by id.
type StoredSpeaker struct {
	MdbNumber   string       `json:"mdb_number,omitempty"`
	Forename    string       `json:"forename"`
	Surname     string       `json:"surname"`
	Memberships []Membership `json:"memberships"`
	Birthday    *time.Time   `json:"birthday,omitempty"`
	Birthplace  string       `json:"birthplace,omitempty"`
	Title       string       `json:"title,omitempty"`
	JobTitle    string       `json:"job_title,omitempty"`
}

// Session is the persisted form of a Transcript.
type Session struct {
	Id                uuid.UUID
	SessionId         string
	SessionNo         int
	LegislativePeriod int
	Start             time.Time
	End               time.Time
	Interactions      []StoredInteraction
	Factions          map[string]string
	Speakers          map[string]StoredSpeaker
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}
