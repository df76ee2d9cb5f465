package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("IDENTITY_LOCK_BACKEND", "redis")
	t.Setenv("ADD_DEBUG_OBJECTS", "true")
	t.Setenv("JWT_TTL_MINUTES", "not-a-number")

	cfg := Load()

	assert.Equal(t, "redis", cfg.Extraction.IdentityLockBackend)
	assert.True(t, cfg.Extraction.AddDebugObjects)
	assert.Equal(t, 60, cfg.Auth.JwtTTLMinutes)
	assert.Equal(t, 10, cfg.Extraction.IdentityLockTTLSeconds)
}
