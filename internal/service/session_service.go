package service

import (
	"context"
	"errors"
	"fmt"

	"cme-be/internal/dto"
	"cme-be/internal/pkg/logger"
	"cme-be/internal/repository/unitofwork"
	"cme-be/pkg/crawler"
	"cme-be/pkg/events"
	"cme-be/pkg/extraction"
	"cme-be/pkg/ingest"
	"cme-be/pkg/transcript"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const sessionModule = "SESSION"

// EventPublisher is the part of the NATS publisher the services need.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type ISessionService interface {
	// EvaluateSessions evaluates every id independently. Failures are logged
	// and joined into the returned error; successful sessions are stored
	// regardless.
	EvaluateSessions(ctx context.Context, ids []string) ([]dto.EvaluationResult, error)
	GetSession(ctx context.Context, sessionId string) (*dto.SessionResponse, error)
	ListSessionIds(ctx context.Context) ([]string, error)
	GetSessionsByPeriod(ctx context.Context, period int) ([]*dto.SessionResponse, error)
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
	source     crawler.Source
	reader     *ingest.JSONReader
	extractor  *extraction.Extractor
	publisher  EventPublisher
	logger     logger.ILogger
	tracer     trace.Tracer
}

// NewSessionService wires the evaluation pipeline. publisher may be nil when
// no event bus is available.
func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	source crawler.Source,
	reader *ingest.JSONReader,
	extractor *extraction.Extractor,
	publisher EventPublisher,
	logger logger.ILogger,
) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
		source:     source,
		reader:     reader,
		extractor:  extractor,
		publisher:  publisher,
		logger:     logger,
		tracer:     otel.Tracer("cme-be/service/session"),
	}
}

func (s *sessionService) EvaluateSessions(ctx context.Context, ids []string) ([]dto.EvaluationResult, error) {
	results := make([]dto.EvaluationResult, 0, len(ids))
	var errs []error

	for _, id := range ids {
		res, err := s.evaluate(ctx, id)
		if err != nil {
			s.logger.Error(sessionModule, "Session evaluation failed", map[string]interface{}{
				"session_id": id,
				"error":      err.Error(),
			})
			errs = append(errs, err)
			continue
		}
		results = append(results, *res)
	}

	return results, errors.Join(errs...)
}

func (s *sessionService) evaluate(ctx context.Context, id string) (*dto.EvaluationResult, error) {
	ctx, span := s.tracer.Start(ctx, "EvaluateSession", trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	res, err := s.evaluateTraced(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("session.interactions", res.Interactions))
	return res, nil
}

func (s *sessionService) evaluateTraced(ctx context.Context, id string) (*dto.EvaluationResult, error) {
	doc, err := s.source.Session(ctx, id)
	if err != nil {
		if errors.Is(err, crawler.ErrSessionNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
		}
		return nil, fmt.Errorf("fetch session %s: %w", id, err)
	}

	converted, err := s.reader.Convert(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("ingest session %s: %w", id, err)
	}

	interactions, err := s.extractor.ExtractCommunicationModel(ctx, converted.Candidates)
	if err != nil {
		return nil, fmt.Errorf("extract session %s: %w", id, err)
	}

	model := transcript.Assemble(converted.Metadata, interactions)
	if len(model.Interactions) == 0 {
		s.logger.Warn(sessionModule, "No interactions found", map[string]interface{}{
			"session_id": model.Metadata.SessionId(),
		})
	}

	stored := transcript.Project(model)
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SessionRepository().Upsert(ctx, stored); err != nil {
		return nil, fmt.Errorf("store session %s: %w", stored.SessionId, err)
	}

	result := &dto.EvaluationResult{
		SessionId:    stored.SessionId,
		Interactions: len(stored.Interactions),
		Factions:     len(stored.Factions),
		Speakers:     len(stored.Speakers),
	}

	s.logger.Info(sessionModule, "Session evaluated", map[string]interface{}{
		"session_id":   result.SessionId,
		"interactions": result.Interactions,
		"speakers":     result.Speakers,
	})

	if s.publisher != nil {
		event := events.NewSessionEvaluated(result.SessionId, result.Interactions, result.Speakers)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn(sessionModule, "Failed to publish evaluation event", map[string]interface{}{
				"session_id": result.SessionId,
				"error":      err.Error(),
			})
		}
	}

	return result, nil
}

func (s *sessionService) GetSession(ctx context.Context, sessionId string) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.SessionRepository().FindBySessionId(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionId)
	}
	return dto.NewSessionResponse(session), nil
}

func (s *sessionService) ListSessionIds(ctx context.Context) ([]string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	ids, err := uow.SessionRepository().FindAllSessionIds(ctx)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (s *sessionService) GetSessionsByPeriod(ctx context.Context, period int) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.SessionRepository().FindByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		res = append(res, dto.NewSessionResponse(session))
	}
	return res, nil
}
