package unitofwork

import (
	"context"

	"cme-be/internal/repository/contract"
	"cme-be/internal/repository/memory"
)

// MemoryRepositoryFactory hands out units of work over shared in-process
// repositories. Transactions are no-ops.
type MemoryRepositoryFactory struct {
	mdbs     *memory.MdbRepository
	sessions *memory.SessionRepository
	clients  *memory.ClientRepository
}

func NewMemoryRepositoryFactory() *MemoryRepositoryFactory {
	return &MemoryRepositoryFactory{
		mdbs:     memory.NewMdbRepository(),
		sessions: memory.NewSessionRepository(),
		clients:  memory.NewClientRepository(),
	}
}

func (f *MemoryRepositoryFactory) NewUnitOfWork(ctx context.Context) UnitOfWork {
	return &memoryUnitOfWork{factory: f}
}

type memoryUnitOfWork struct {
	factory *MemoryRepositoryFactory
}

func (u *memoryUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *memoryUnitOfWork) Commit() error                   { return nil }
func (u *memoryUnitOfWork) Rollback() error                 { return nil }

func (u *memoryUnitOfWork) MdbRepository() contract.MdbRepository {
	return u.factory.mdbs
}

func (u *memoryUnitOfWork) SessionRepository() contract.SessionRepository {
	return u.factory.sessions
}

func (u *memoryUnitOfWork) ClientRepository() contract.ClientRepository {
	return u.factory.clients
}
