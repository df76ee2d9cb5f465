package memory

import (
	"context"
	"sort"
	"time"

	"cme-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps evaluated sessions keyed by session id.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (r *SessionRepository) Upsert(ctx context.Context, session *entity.Session) error {
	now := time.Now().UTC()
	if x, found := r.cache.Get(session.SessionId); found {
		existing := x.(*entity.Session)
		session.Id = existing.Id
		session.CreatedAt = existing.CreatedAt
		session.UpdatedAt = &now
	} else {
		if session.Id == uuid.Nil {
			session.Id = uuid.New()
		}
		session.CreatedAt = now
	}
	c := *session
	r.cache.Set(session.SessionId, &c, cache.NoExpiration)
	return nil
}

func (r *SessionRepository) FindBySessionId(ctx context.Context, sessionId string) (*entity.Session, error) {
	if x, found := r.cache.Get(sessionId); found {
		c := *x.(*entity.Session)
		return &c, nil
	}
	return nil, nil
}

func (r *SessionRepository) FindAllSessionIds(ctx context.Context) ([]string, error) {
	items := r.cache.Items()
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *SessionRepository) FindByPeriod(ctx context.Context, period int) ([]*entity.Session, error) {
	var result []*entity.Session
	for _, item := range r.cache.Items() {
		s := item.Object.(*entity.Session)
		if s.LegislativePeriod == period {
			c := *s
			result = append(result, &c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SessionId < result[j].SessionId
	})
	return result, nil
}
