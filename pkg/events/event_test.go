package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionIds(t *testing.T) {
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(`{"ids":["19001", 19002, "19003"]}`), &payload))

	ids := SessionIds(BaseEvent{Type: SessionsCrawled, Data: payload})

	assert.Equal(t, []string{"19001", "19003"}, ids)
}

func TestSessionIds_MissingKey(t *testing.T) {
	assert.Empty(t, SessionIds(BaseEvent{Data: map[string]interface{}{}}))
}

func TestNewSessionEvaluated(t *testing.T) {
	e := NewSessionEvaluated("19001", 4, 2)

	assert.Equal(t, SessionEvaluated, e.EventType())
	assert.Equal(t, "19001", e.Payload()["session_id"])
	assert.Equal(t, 4, e.Payload()["interactions"])
	assert.False(t, e.Timestamp().IsZero())
}
