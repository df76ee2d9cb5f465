package contract

import (
	"context"

	"cme-be/internal/entity"
)

type SessionRepository interface {
	// Upsert replaces a stored session with the same SessionId.
	Upsert(ctx context.Context, session *entity.Session) error
	FindBySessionId(ctx context.Context, sessionId string) (*entity.Session, error)
	FindAllSessionIds(ctx context.Context) ([]string, error)
	FindByPeriod(ctx context.Context, period int) ([]*entity.Session, error)
}
