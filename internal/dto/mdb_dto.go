package dto

import (
	"time"

	"cme-be/internal/entity"

	"github.com/google/uuid"
)

type MdbQuery struct {
	Id        string `query:"id" validate:"omitempty,uuid"`
	MdbNumber string `query:"mdb_number" validate:"omitempty,numeric"`
	Forename  string `query:"forename"`
	Surname   string `query:"surname"`
	Limit     int    `query:"limit" validate:"omitempty,min=1,max=1000"`
	Offset    int    `query:"offset" validate:"omitempty,min=0"`
}

type MdbResponse struct {
	Id          uuid.UUID           `json:"id"`
	MdbNumber   string              `json:"mdb_number,omitempty"`
	Forename    string              `json:"forename"`
	Surname     string              `json:"surname"`
	Memberships []entity.Membership `json:"memberships"`
	Birthday    *time.Time          `json:"birthday,omitempty"`
	Birthplace  string              `json:"birthplace,omitempty"`
	Title       string              `json:"title,omitempty"`
	JobTitle    string              `json:"job_title,omitempty"`
	CreatedBy   string              `json:"created_by"`
}

func NewMdbResponse(m *entity.Mdb) MdbResponse {
	memberships := m.Memberships
	if memberships == nil {
		memberships = []entity.Membership{}
	}
	return MdbResponse{
		Id:          m.Id,
		MdbNumber:   m.MdbNumber,
		Forename:    m.Forename,
		Surname:     m.Surname,
		Memberships: memberships,
		Birthday:    m.Birthday,
		Birthplace:  m.Birthplace,
		Title:       m.Title,
		JobTitle:    m.JobTitle,
		CreatedBy:   m.CreatedBy,
	}
}

type ImportMdbsResponse struct {
	Imported int `json:"imported"`
}
