package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Session struct {
	Id                uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId         string         `gorm:"type:varchar(16);not null;uniqueIndex"`
	SessionNo         int            `gorm:"not null"`
	LegislativePeriod int            `gorm:"not null;index"`
	Start             time.Time      `gorm:"column:start_time"`
	End               time.Time      `gorm:"column:end_time"`
	Interactions      datatypes.JSON `gorm:"type:jsonb"`
	Factions          datatypes.JSON `gorm:"type:jsonb"`
	Speakers          datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt         time.Time      `gorm:"autoCreateTime"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime"`
}

func (Session) TableName() string {
	return "sessions"
}
