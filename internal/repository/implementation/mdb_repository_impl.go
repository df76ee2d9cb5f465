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

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MdbRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MdbMapper
}

func NewMdbRepository(db *gorm.DB) contract.MdbRepository {
	return &MdbRepositoryImpl{
		db:     db,
		mapper: mapper.NewMdbMapper(),
	}
}

func (r *MdbRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MdbRepositoryImpl) Create(ctx context.Context, mdb *entity.Mdb) error {
	m := r.mapper.ToModel(mdb)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*mdb = *r.mapper.ToEntity(m)
	return nil
}

func (r *MdbRepositoryImpl) Update(ctx context.Context, mdb *entity.Mdb) error {
	m := r.mapper.ToModel(mdb)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*mdb = *r.mapper.ToEntity(m)
	return nil
}

func (r *MdbRepositoryImpl) findOne(ctx context.Context, specs ...specification.Specification) (*entity.Mdb, error) {
	var m model.Mdb
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MdbRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Mdb, error) {
	return r.findOne(ctx, specification.ByID{ID: id})
}

func (r *MdbRepositoryImpl) FindByMdbNumber(ctx context.Context, mdbNumber string) (*entity.Mdb, error) {
	return r.findOne(ctx, specification.ByMdbNumber{MdbNumber: mdbNumber})
}

func (r *MdbRepositoryImpl) FindAllByName(ctx context.Context, forename, surname string) ([]*entity.Mdb, error) {
	var models []*model.Mdb
	query := r.applySpecifications(
		r.db.WithContext(ctx).Scopes(scope.OrderByRecentlyUpdated),
		specification.ByName{Forename: forename, Surname: surname},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MdbRepositoryImpl) FindAll(ctx context.Context, filter contract.MdbFilter) ([]*entity.Mdb, error) {
	specs := []specification.Specification{
		specification.OrderBy{Field: "surname"},
		specification.OrderBy{Field: "forename"},
		specification.Pagination{Limit: filter.Limit, Offset: filter.Offset},
	}
	if filter.Id != nil {
		specs = append(specs, specification.ByID{ID: *filter.Id})
	}
	if filter.MdbNumber != "" {
		specs = append(specs, specification.ByMdbNumber{MdbNumber: filter.MdbNumber})
	}
	if filter.Forename != "" {
		specs = append(specs, specification.Filter("forename", filter.Forename))
	}
	if filter.Surname != "" {
		specs = append(specs, specification.Filter("surname", filter.Surname))
	}

	var models []*model.Mdb
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MdbRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Mdb{}).Error
}
