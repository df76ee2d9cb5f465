package contract

import (
	"context"

	"cme-be/internal/entity"
)

type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	FindByName(ctx context.Context, name string) (*entity.Client, error)
	DeleteAll(ctx context.Context) error
}
