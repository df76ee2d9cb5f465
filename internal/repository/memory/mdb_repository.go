package memory

import (
	"context"
	"sort"
	"time"

	"cme-be/internal/entity"
	"cme-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// MdbRepository keeps persons in process memory. It backs the command line
// tool and tests.
type MdbRepository struct {
	cache *cache.Cache
}

func NewMdbRepository() *MdbRepository {
	return &MdbRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (r *MdbRepository) Create(ctx context.Context, mdb *entity.Mdb) error {
	if mdb.Id == uuid.Nil {
		mdb.Id = uuid.New()
	}
	if mdb.CreatedAt.IsZero() {
		mdb.CreatedAt = time.Now().UTC()
	}
	r.cache.Set(mdb.Id.String(), cloneMdb(mdb), cache.NoExpiration)
	return nil
}

func (r *MdbRepository) Update(ctx context.Context, mdb *entity.Mdb) error {
	now := time.Now().UTC()
	mdb.UpdatedAt = &now
	r.cache.Set(mdb.Id.String(), cloneMdb(mdb), cache.NoExpiration)
	return nil
}

func (r *MdbRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.Mdb, error) {
	if x, found := r.cache.Get(id.String()); found {
		return cloneMdb(x.(*entity.Mdb)), nil
	}
	return nil, nil
}

func (r *MdbRepository) FindByMdbNumber(ctx context.Context, mdbNumber string) (*entity.Mdb, error) {
	for _, m := range r.all() {
		if m.MdbNumber == mdbNumber {
			return m, nil
		}
	}
	return nil, nil
}

func (r *MdbRepository) FindAllByName(ctx context.Context, forename, surname string) ([]*entity.Mdb, error) {
	var result []*entity.Mdb
	for _, m := range r.all() {
		if m.Forename == forename && m.Surname == surname {
			result = append(result, m)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i].LastModified(), result[j].LastModified()
		if !a.Equal(b) {
			return a.After(b)
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *MdbRepository) FindAll(ctx context.Context, filter contract.MdbFilter) ([]*entity.Mdb, error) {
	var result []*entity.Mdb
	for _, m := range r.all() {
		if filter.Id != nil && m.Id != *filter.Id {
			continue
		}
		if filter.MdbNumber != "" && m.MdbNumber != filter.MdbNumber {
			continue
		}
		if filter.Forename != "" && m.Forename != filter.Forename {
			continue
		}
		if filter.Surname != "" && m.Surname != filter.Surname {
			continue
		}
		result = append(result, m)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Surname != result[j].Surname {
			return result[i].Surname < result[j].Surname
		}
		return result[i].Forename < result[j].Forename
	})

	if filter.Offset >= len(result) {
		return nil, nil
	}
	result = result[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (r *MdbRepository) DeleteAll(ctx context.Context) error {
	r.cache.Flush()
	return nil
}

func (r *MdbRepository) all() []*entity.Mdb {
	items := r.cache.Items()
	result := make([]*entity.Mdb, 0, len(items))
	for _, item := range items {
		result = append(result, cloneMdb(item.Object.(*entity.Mdb)))
	}
	// map iteration order is random
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

func cloneMdb(m *entity.Mdb) *entity.Mdb {
	c := *m
	c.Memberships = append([]entity.Membership(nil), m.Memberships...)
	return &c
}
