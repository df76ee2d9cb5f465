package identity

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"cme-be/internal/entity"
	"cme-be/internal/pkg/logger"
	"cme-be/internal/repository/contract"
	"cme-be/internal/repository/memory"
	"cme-be/pkg/faction"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolver() (*Resolver, *memory.MdbRepository) {
	repo := memory.NewMdbRepository()
	return NewResolver(repo, NewKeyedMutex(), logger.NewNopLogger()), repo
}

func TestFindOrCreate_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	r, repo := newResolver()
	req := MdbRequest{
		Forename:    "Carsten",
		Surname:     "Schneider",
		Memberships: []entity.Membership{{Faction: faction.SPD}},
	}

	first, err := r.FindOrCreate(ctx, req)
	require.NoError(t, err)
	second, err := r.FindOrCreate(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.Id, second.Id)
	assert.NotEqual(t, uuid.Nil, first.Id)

	all, err := repo.FindAll(ctx, contract.MdbFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestFindOrCreate_ExternalIdFirst(t *testing.T) {
	ctx := context.Background()
	r, _ := newResolver()

	byNumber, err := r.FindOrCreate(ctx, MdbRequest{MdbNumber: "11004097", Forename: "Petra", Surname: "Pau"})
	require.NoError(t, err)

	// A differently spelled name still resolves through the external id.
	found, err := r.FindOrCreate(ctx, MdbRequest{MdbNumber: "11004097", Forename: "P.", Surname: "Pau"})
	require.NoError(t, err)
	assert.Equal(t, byNumber.Id, found.Id)
}

func TestFindOrCreate_AttachesMissingExternalId(t *testing.T) {
	ctx := context.Background()
	r, repo := newResolver()

	created, err := r.FindOrCreate(ctx, MdbRequest{Forename: "Anton", Surname: "Hofreiter"})
	require.NoError(t, err)
	assert.Empty(t, created.MdbNumber)

	patched, err := r.FindOrCreate(ctx, MdbRequest{MdbNumber: "11003557", Forename: "Anton", Surname: "Hofreiter", JobTitle: "Biologe"})
	require.NoError(t, err)
	assert.Equal(t, created.Id, patched.Id)

	stored, err := repo.FindByMdbNumber(ctx, "11003557")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, created.Id, stored.Id)
	assert.Equal(t, "Biologe", stored.JobTitle)
	assert.NotNil(t, stored.UpdatedAt)

	// Later lookups by name see the attached number.
	again, err := r.FindOrCreate(ctx, MdbRequest{Forename: "Anton", Surname: "Hofreiter"})
	require.NoError(t, err)
	assert.Equal(t, "11003557", again.MdbNumber)
}

func TestFindOrCreate_AmbiguousNamePicksMostRecentlyModified(t *testing.T) {
	ctx := context.Background()
	r, repo := newResolver()

	base := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	updated := base.Add(48 * time.Hour)
	stale := &entity.Mdb{Id: uuid.New(), Forename: "Michael", Surname: "Müller", CreatedAt: base}
	fresh := &entity.Mdb{Id: uuid.New(), Forename: "Michael", Surname: "Müller", CreatedAt: base.Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, stale))
	require.NoError(t, repo.Create(ctx, fresh))

	found, err := r.FindOrCreate(ctx, MdbRequest{Forename: "Michael", Surname: "Müller"})
	require.NoError(t, err)
	assert.Equal(t, fresh.Id, found.Id)

	assert.Equal(t, stale.Id, pickMostRecent([]*entity.Mdb{
		fresh,
		{Id: stale.Id, CreatedAt: base, UpdatedAt: &updated},
	}).Id)
}

func TestFindOrCreate_ConcurrentCallsCreateOnce(t *testing.T) {
	ctx := context.Background()
	r, repo := newResolver()

	const workers = 32
	ids := make([]uuid.UUID, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			mdb, err := r.FindOrCreate(ctx, MdbRequest{Forename: "Katrin", Surname: "Göring-Eckardt"})
			if assert.NoError(t, err) {
				ids[i] = mdb.Id
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	all, err := repo.FindAll(ctx, contract.MdbFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

type failingRepo struct {
	contract.MdbRepository
}

func (failingRepo) FindAllByName(ctx context.Context, forename, surname string) ([]*entity.Mdb, error) {
	return nil, errors.New("connection refused")
}

func TestFindOrCreate_StorageErrorPropagates(t *testing.T) {
	r := NewResolver(failingRepo{}, nil, logger.NewNopLogger())
	_, err := r.FindOrCreate(context.Background(), MdbRequest{Forename: "A", Surname: "B"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestKeyedMutex_CancelledWhileWaiting(t *testing.T) {
	k := NewKeyedMutex()
	unlock, err := k.Lock(context.Background(), "a")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = k.Lock(ctx, "a")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// Other keys are independent.
	unlockB, err := k.Lock(context.Background(), "b")
	require.NoError(t, err)
	unlockB()

	unlock()
	unlock()
	k.mu.Lock()
	assert.Empty(t, k.locks)
	k.mu.Unlock()
}

func TestRedisLocker(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	defer client.Close()

	ctx := context.Background()
	l := NewRedisLocker(client, time.Second)
	key := "test:" + uuid.NewString()

	unlock, err := l.Lock(ctx, key)
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	_, err = l.Lock(waitCtx, key)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock2, err := l.Lock(ctx, key)
	require.NoError(t, err)
	unlock2()
}
