package model

import (
	"time"

	"github.com/google/uuid"
)

type Client struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string    `gorm:"type:varchar(128);not null;uniqueIndex"`
	SecretHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (Client) TableName() string {
	return "clients"
}
