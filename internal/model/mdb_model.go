package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Mdb struct {
	Id          uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MdbNumber   *string           `gorm:"type:varchar(32);uniqueIndex"`
	Forename    string            `gorm:"type:varchar(255);not null;index:idx_mdb_name"`
	Surname     string            `gorm:"type:varchar(255);not null;index:idx_mdb_name"`
	Memberships datatypes.JSON    `gorm:"type:jsonb"`
	Birthday    *time.Time        `gorm:"type:date"`
	Birthplace  string            `gorm:"type:varchar(255)"`
	Title       string            `gorm:"type:varchar(128)"`
	JobTitle    string            `gorm:"type:varchar(255)"`
	CreatedBy   string            `gorm:"type:varchar(64)"`
	Debug       datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt   time.Time         `gorm:"autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime"`
}

func (Mdb) TableName() string {
	return "mdbs"
}
