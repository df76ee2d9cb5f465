package unitofwork

import (
	"context"

	"cme-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	MdbRepository() contract.MdbRepository
	SessionRepository() contract.SessionRepository
	ClientRepository() contract.ClientRepository
}
