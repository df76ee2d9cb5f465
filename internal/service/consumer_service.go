package service

import (
	"context"
	"encoding/json"

	"cme-be/internal/pkg/logger"
	"cme-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

const consumerModule = "CONSUMER"

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber     message.Subscriber
	topicName      string
	sessionService ISessionService
	logger         logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	sessionService ISessionService,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:     subscriber,
		topicName:      topicName,
		sessionService: sessionService,
		logger:         logger,
	}
}

// Consume subscribes to the evaluation topic and processes messages until
// ctx is cancelled.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload EvaluationMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error(consumerModule, "Failed to unmarshal evaluation message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack()
		return
	}

	cs.logger.Info(consumerModule, "Evaluating sessions", map[string]interface{}{
		"ids": payload.Ids,
	})

	// Failed sessions are logged by the session service; the message is
	// acked either way so one bad session cannot block the queue.
	results, err := cs.sessionService.EvaluateSessions(ctx, payload.Ids)
	if err != nil {
		cs.logger.Warn(consumerModule, "Evaluation incomplete", map[string]interface{}{
			"evaluated": len(results),
			"requested": len(payload.Ids),
		})
	}
	msg.Ack()
}

// CrawledEventHandler queues the ids announced by a SESSIONS_CRAWLED event.
func CrawledEventHandler(publisher IPublisherService) func(ctx context.Context, event events.Event) error {
	return func(ctx context.Context, event events.Event) error {
		ids := events.SessionIds(event)
		if len(ids) == 0 {
			return nil
		}
		return publisher.QueueEvaluation(ctx, ids)
	}
}
