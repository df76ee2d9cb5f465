package mapper

import (
	"encoding/json"
	"fmt"
	"time"

	"cme-be/internal/entity"
	"cme-be/internal/model"

	"gorm.io/datatypes"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(n *model.Session) (*entity.Session, error) {
	if n == nil {
		return nil, nil
	}

	s := &entity.Session{
		Id:                n.Id,
		SessionId:         n.SessionId,
		SessionNo:         n.SessionNo,
		LegislativePeriod: n.LegislativePeriod,
		Start:             n.Start,
		End:               n.End,
		CreatedAt:         n.CreatedAt,
	}
	if !n.UpdatedAt.IsZero() {
		t := n.UpdatedAt
		s.UpdatedAt = &t
	}

	if err := unmarshalColumn(n.Interactions, &s.Interactions); err != nil {
		return nil, fmt.Errorf("session %s interactions: %w", n.SessionId, err)
	}
	if err := unmarshalColumn(n.Factions, &s.Factions); err != nil {
		return nil, fmt.Errorf("session %s factions: %w", n.SessionId, err)
	}
	if err := unmarshalColumn(n.Speakers, &s.Speakers); err != nil {
		return nil, fmt.Errorf("session %s speakers: %w", n.SessionId, err)
	}
	return s, nil
}

func (m *SessionMapper) ToModel(n *entity.Session) (*model.Session, error) {
	if n == nil {
		return nil, nil
	}

	interactions, err := json.Marshal(n.Interactions)
	if err != nil {
		return nil, err
	}
	factions, err := json.Marshal(n.Factions)
	if err != nil {
		return nil, err
	}
	speakers, err := json.Marshal(n.Speakers)
	if err != nil {
		return nil, err
	}

	var updatedAt time.Time
	if n.UpdatedAt != nil {
		updatedAt = *n.UpdatedAt
	}

	return &model.Session{
		Id:                n.Id,
		SessionId:         n.SessionId,
		SessionNo:         n.SessionNo,
		LegislativePeriod: n.LegislativePeriod,
		Start:             n.Start,
		End:               n.End,
		Interactions:      datatypes.JSON(interactions),
		Factions:          datatypes.JSON(factions),
		Speakers:          datatypes.JSON(speakers),
		CreatedAt:         n.CreatedAt,
		UpdatedAt:         updatedAt,
	}, nil
}

func unmarshalColumn(raw datatypes.JSON, target interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, target)
}
