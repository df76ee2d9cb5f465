package entity

import (
	"time"

	"cme-be/pkg/faction"

	"github.com/google/uuid"
)

// Membership is one period of a person's faction membership. End is nil while
// the membership is ongoing.
type Membership struct {
	Start   time.Time       `json:"start"`
	End     *time.Time      `json:"end,omitempty"`
	Faction faction.Faction `json:"faction"`
}

// Mdb is a member of the Bundestag or any other person referenced as speaker,
// sender or receiver.
type Mdb struct {
	Id          uuid.UUID
	MdbNumber   string // external id of the Bundestag master data, may be empty
	Forename    string
	Surname     string
	Memberships []Membership
	Birthday    *time.Time
	Birthplace  string
	Title       string
	JobTitle    string
	CreatedBy   string
	Debug       map[string]interface{}
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// LastModified is the update time, falling back to the creation time.
func (m *Mdb) LastModified() time.Time {
	if m.UpdatedAt != nil {
		return *m.UpdatedAt
	}
	return m.CreatedAt
}

// FullName joins forename and surname.
func (m *Mdb) FullName() string {
	if m.Forename == "" {
		return m.Surname
	}
	return m.Forename + " " + m.Surname
}
