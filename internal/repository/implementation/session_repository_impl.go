package implementation

import (
	"context"
	"errors"

	"cme-be/internal/entity"
	"cme-be/internal/mapper"
	"cme-be/internal/model"
	"cme-be/internal/repository/contract"
	"cme-be/internal/repository/scope"
	"cme-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionMapper
}

func NewSessionRepository(db *gorm.DB) contract.SessionRepository {
	return &SessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionMapper(),
	}
}

func (r *SessionRepositoryImpl) Upsert(ctx context.Context, session *entity.Session) error {
	m, err := r.mapper.ToModel(session)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"session_no", "legislative_period", "start_time", "end_time",
			"interactions", "factions", "speakers", "updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	stored, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*session = *stored
	return nil
}

func (r *SessionRepositoryImpl) FindBySessionId(ctx context.Context, sessionId string) (*entity.Session, error) {
	var m model.Session
	query := specification.BySessionId{SessionId: sessionId}.Apply(r.db.WithContext(ctx))
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *SessionRepositoryImpl) FindAllSessionIds(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.Session{}).
		Scopes(scope.OrderBySessionId).
		Pluck("session_id", &ids).Error
	return ids, err
}

func (r *SessionRepositoryImpl) FindByPeriod(ctx context.Context, period int) ([]*entity.Session, error) {
	var models []*model.Session
	query := specification.ByLegislativePeriod{Period: period}.Apply(
		r.db.WithContext(ctx).Scopes(scope.OrderBySessionId),
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	sessions := make([]*entity.Session, 0, len(models))
	for _, m := range models {
		s, err := r.mapper.ToEntity(m)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}
