package implementation

import (
	"context"
	"errors"

	"cme-be/internal/entity"
	"cme-be/internal/mapper"
	"cme-be/internal/model"
	"cme-be/internal/repository/contract"
	"cme-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ClientRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ClientMapper
}

func NewClientRepository(db *gorm.DB) contract.ClientRepository {
	return &ClientRepositoryImpl{
		db:     db,
		mapper: mapper.NewClientMapper(),
	}
}

func (r *ClientRepositoryImpl) Create(ctx context.Context, client *entity.Client) error {
	m := r.mapper.ToModel(client)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*client = *r.mapper.ToEntity(m)
	return nil
}

func (r *ClientRepositoryImpl) FindByName(ctx context.Context, name string) (*entity.Client, error) {
	var m model.Client
	query := specification.Filter("name", name).Apply(r.db.WithContext(ctx))
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ClientRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Client{}).Error
}
