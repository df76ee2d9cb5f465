package events

import "time"

const (
	// SessionEvaluated is published after a session has been stored.
	SessionEvaluated = "SESSION_EVALUATED"
	// SessionsCrawled is published by the crawler with {"ids": [...]}.
	SessionsCrawled = "SESSIONS_CRAWLED"
)

// Event defines the contract for all system events.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewSessionEvaluated describes a stored session.
func NewSessionEvaluated(sessionId string, interactions, speakers int) BaseEvent {
	return BaseEvent{
		Type: SessionEvaluated,
		Data: map[string]interface{}{
			"session_id":   sessionId,
			"interactions": interactions,
			"speakers":     speakers,
		},
		OccurredAt: time.Now(),
	}
}

// SessionIds extracts the "ids" list of a SESSIONS_CRAWLED payload. Entries
// that are not strings are skipped.
func SessionIds(e Event) []string {
	raw, ok := e.Payload()["ids"].([]interface{})
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids
}
