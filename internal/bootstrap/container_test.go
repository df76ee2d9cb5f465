package bootstrap

import (
	"os"
	"testing"

	"cme-be/internal/config"
	"cme-be/internal/pkg/logger"
	"cme-be/internal/repository/unitofwork"
	"cme-be/pkg/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lockConfig(t *testing.T, backend, redisURL string) *config.Config {
	return &config.Config{
		App: config.AppConfig{RedisURL: redisURL},
		Auth: config.AuthConfig{
			JwtSecret:     "bootstrap-test-secret",
			JwtTTLMinutes: 5,
		},
		Extraction: config.ExtractionConfig{
			EvaluationTopic:        "EVALUATE_SESSIONS",
			CrawlerDataDir:         t.TempDir(),
			IdentityLockBackend:    backend,
			IdentityLockTTLSeconds: 10,
		},
	}
}

func TestNewLocker_LocalBackend(t *testing.T) {
	c := &Container{Logger: logger.NewNopLogger()}

	locker := c.newLocker(lockConfig(t, "local", ""))

	assert.IsType(t, &identity.KeyedMutex{}, locker)
	assert.Empty(t, c.closers)
}

func TestNewLocker_UnreachableRedisFallsBack(t *testing.T) {
	c := &Container{Logger: logger.NewNopLogger()}

	locker := c.newLocker(lockConfig(t, "redis", "redis://127.0.0.1:1/0"))

	assert.IsType(t, &identity.KeyedMutex{}, locker)
	assert.Empty(t, c.closers)
}

func TestNewLocker_RedisClientClosedWithContainer(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	c := &Container{Logger: logger.NewNopLogger()}

	locker := c.newLocker(lockConfig(t, "redis", url))

	assert.IsType(t, &identity.RedisLocker{}, locker)
	require.Len(t, c.closers, 1)
	c.Close()
}

func TestBuild_RegistersClosers(t *testing.T) {
	c := Build(unitofwork.NewMemoryRepositoryFactory(), lockConfig(t, "local", ""), logger.NewNopLogger())
	t.Cleanup(c.Close)

	// the in-process event bus only
	assert.Len(t, c.closers, 1)
	assert.NotNil(t, c.SessionService)
	assert.NotNil(t, c.AuthController)
}
