package dto

import (
	"time"

	"cme-be/internal/entity"
)

type EvaluateSessionsRequest struct {
	Ids []string `json:"ids" validate:"required,min=1,dive,numeric,min=4,max=6"`
}

type EvaluateSessionsResponse struct {
	Queued []string `json:"queued"`
}

// EvaluationResult summarises one evaluated session.
type EvaluationResult struct {
	SessionId    string `json:"session_id"`
	Interactions int    `json:"interactions"`
	Factions     int    `json:"factions"`
	Speakers     int    `json:"speakers"`
}

type SessionResponse struct {
	SessionId         string                          `json:"session_id"`
	SessionNo         int                             `json:"session_no"`
	LegislativePeriod int                             `json:"legislative_period"`
	Start             time.Time                       `json:"start"`
	End               time.Time                       `json:"end"`
	Interactions      []entity.StoredInteraction      `json:"interactions"`
	Factions          map[string]string               `json:"factions"`
	Speakers          map[string]entity.StoredSpeaker `json:"speakers"`
}

func NewSessionResponse(s *entity.Session) *SessionResponse {
	return &SessionResponse{
		SessionId:         s.SessionId,
		SessionNo:         s.SessionNo,
		LegislativePeriod: s.LegislativePeriod,
		Start:             s.Start,
		End:               s.End,
		Interactions:      s.Interactions,
		Factions:          s.Factions,
		Speakers:          s.Speakers,
	}
}
