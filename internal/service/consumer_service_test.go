package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"cme-be/internal/dto"
	"cme-be/internal/pkg/logger"
	"cme-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSessionService struct {
	ISessionService
	mu    sync.Mutex
	calls [][]string
}

func (s *recordingSessionService) EvaluateSessions(ctx context.Context, ids []string) ([]dto.EvaluationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, ids)
	return nil, nil
}

func (s *recordingSessionService) snapshot() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]string(nil), s.calls...)
}

func TestEvaluationQueue(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessions := &recordingSessionService{}
	consumer := NewConsumerService(pubSub, "EVALUATE_SESSIONS", sessions, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("EVALUATE_SESSIONS", pubSub)
	require.NoError(t, publisher.QueueEvaluation(ctx, []string{"19001", "19002"}))

	assert.Eventually(t, func() bool {
		return len(sessions.snapshot()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"19001", "19002"}, sessions.snapshot()[0])
}

type recordingQueue struct {
	ids [][]string
}

func (q *recordingQueue) QueueEvaluation(ctx context.Context, ids []string) error {
	q.ids = append(q.ids, ids)
	return nil
}

func TestCrawledEventHandler(t *testing.T) {
	queue := &recordingQueue{}
	handle := CrawledEventHandler(queue)

	err := handle(context.Background(), events.BaseEvent{
		Type: events.SessionsCrawled,
		Data: map[string]interface{}{"ids": []interface{}{"19001"}},
	})
	require.NoError(t, err)

	err = handle(context.Background(), events.BaseEvent{Type: events.SessionsCrawled, Data: map[string]interface{}{}})
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"19001"}}, queue.ids)
}
