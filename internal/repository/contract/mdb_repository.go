package contract

import (
	"context"

	"cme-be/internal/entity"

	"github.com/google/uuid"
)

// MdbFilter narrows FindAll. Empty fields are ignored.
type MdbFilter struct {
	Id        *uuid.UUID
	MdbNumber string
	Forename  string
	Surname   string
	Limit     int
	Offset    int
}

// MdbRepository stores persons. Find methods return nil without error when
// nothing matches.
type MdbRepository interface {
	Create(ctx context.Context, mdb *entity.Mdb) error
	Update(ctx context.Context, mdb *entity.Mdb) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Mdb, error)
	FindByMdbNumber(ctx context.Context, mdbNumber string) (*entity.Mdb, error)
	FindAllByName(ctx context.Context, forename, surname string) ([]*entity.Mdb, error)
	FindAll(ctx context.Context, filter MdbFilter) ([]*entity.Mdb, error)
	DeleteAll(ctx context.Context) error
}
