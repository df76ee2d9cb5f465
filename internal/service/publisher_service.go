package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// EvaluationMessage is the payload of the evaluation queue.
type EvaluationMessage struct {
	Ids []string `json:"ids"`
}

type IPublisherService interface {
	// QueueEvaluation hands the ids to the background consumer.
	QueueEvaluation(ctx context.Context, ids []string) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (p *publisherService) QueueEvaluation(ctx context.Context, ids []string) error {
	payload, err := json.Marshal(EvaluationMessage{Ids: ids})
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return p.publisher.Publish(p.topicName, msg)
}
