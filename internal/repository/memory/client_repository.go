package memory

import (
	"context"
	"time"

	"cme-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type ClientRepository struct {
	cache *cache.Cache
}

func NewClientRepository() *ClientRepository {
	return &ClientRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (r *ClientRepository) Create(ctx context.Context, client *entity.Client) error {
	if client.Id == uuid.Nil {
		client.Id = uuid.New()
	}
	client.CreatedAt = time.Now().UTC()
	c := *client
	r.cache.Set(client.Name, &c, cache.NoExpiration)
	return nil
}

func (r *ClientRepository) FindByName(ctx context.Context, name string) (*entity.Client, error) {
	if x, found := r.cache.Get(name); found {
		c := *x.(*entity.Client)
		return &c, nil
	}
	return nil, nil
}

func (r *ClientRepository) DeleteAll(ctx context.Context) error {
	r.cache.Flush()
	return nil
}
