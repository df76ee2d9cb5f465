package mapper

import (
	"encoding/json"
	"time"

	"cme-be/internal/entity"
	"cme-be/internal/model"

	"gorm.io/datatypes"
)

type MdbMapper struct{}

func NewMdbMapper() *MdbMapper {
	return &MdbMapper{}
}

func (m *MdbMapper) ToEntity(n *model.Mdb) *entity.Mdb {
	if n == nil {
		return nil
	}

	var memberships []entity.Membership
	if len(n.Memberships) > 0 {
		// Corrupt rows keep the person usable without memberships.
		_ = json.Unmarshal(n.Memberships, &memberships)
	}

	var mdbNumber string
	if n.MdbNumber != nil {
		mdbNumber = *n.MdbNumber
	}

	var updatedAt *time.Time
	if !n.UpdatedAt.IsZero() {
		t := n.UpdatedAt
		updatedAt = &t
	}

	return &entity.Mdb{
		Id:          n.Id,
		MdbNumber:   mdbNumber,
		Forename:    n.Forename,
		Surname:     n.Surname,
		Memberships: memberships,
		Birthday:    n.Birthday,
		Birthplace:  n.Birthplace,
		Title:       n.Title,
		JobTitle:    n.JobTitle,
		CreatedBy:   n.CreatedBy,
		Debug:       map[string]interface{}(n.Debug),
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *MdbMapper) ToModel(n *entity.Mdb) *model.Mdb {
	if n == nil {
		return nil
	}

	memberships, _ := json.Marshal(n.Memberships)

	var mdbNumber *string
	if n.MdbNumber != "" {
		v := n.MdbNumber
		mdbNumber = &v
	}

	var updatedAt time.Time
	if n.UpdatedAt != nil {
		updatedAt = *n.UpdatedAt
	}

	return &model.Mdb{
		Id:          n.Id,
		MdbNumber:   mdbNumber,
		Forename:    n.Forename,
		Surname:     n.Surname,
		Memberships: datatypes.JSON(memberships),
		Birthday:    n.Birthday,
		Birthplace:  n.Birthplace,
		Title:       n.Title,
		JobTitle:    n.JobTitle,
		CreatedBy:   n.CreatedBy,
		Debug:       datatypes.JSONMap(n.Debug),
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *MdbMapper) ToEntities(mdbs []*model.Mdb) []*entity.Mdb {
	entities := make([]*entity.Mdb, len(mdbs))
	for i, n := range mdbs {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
