package entity

import (
	"time"

	"github.com/google/uuid"
)

// Client is an API consumer authenticating with name and secret.
type Client struct {
	Id         uuid.UUID
	Name       string
	SecretHash string
	CreatedAt  time.Time
}
