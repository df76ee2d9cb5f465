package service

import (
	"context"
	"fmt"

	"cme-be/internal/dto"
	"cme-be/internal/pkg/logger"
	"cme-be/internal/repository/contract"
	"cme-be/internal/repository/unitofwork"
	"cme-be/pkg/crawler"
	"cme-be/pkg/ingest"

	"github.com/google/uuid"
)

const mdbModule = "MDB"

type IMdbService interface {
	// ImportFromCrawler runs find-or-create for every master data entry.
	ImportFromCrawler(ctx context.Context) (*dto.ImportMdbsResponse, error)
	// InitCollection deletes all persons and imports the master data again.
	InitCollection(ctx context.Context) (*dto.ImportMdbsResponse, error)
	FindMdbs(ctx context.Context, query dto.MdbQuery) ([]dto.MdbResponse, error)
}

type mdbService struct {
	uowFactory unitofwork.RepositoryFactory
	source     crawler.Source
	resolver   ingest.Resolver
	logger     logger.ILogger
}

func NewMdbService(
	uowFactory unitofwork.RepositoryFactory,
	source crawler.Source,
	resolver ingest.Resolver,
	logger logger.ILogger,
) IMdbService {
	return &mdbService{
		uowFactory: uowFactory,
		source:     source,
		resolver:   resolver,
		logger:     logger,
	}
}

func (s *mdbService) ImportFromCrawler(ctx context.Context) (*dto.ImportMdbsResponse, error) {
	speakers, err := s.source.Mdbs(ctx)
	if err != nil {
		return nil, fmt.Errorf("read master data: %w", err)
	}

	imported := 0
	for _, sp := range speakers {
		req := ingest.SpeakerRequest(sp, "crawler_import", s.logger)
		if req.Forename == "" || req.Surname == "" {
			s.logger.Warn(mdbModule, "Skipping master data entry without name", map[string]interface{}{
				"mdb_number": req.MdbNumber,
			})
			continue
		}
		if _, err := s.resolver.FindOrCreate(ctx, req); err != nil {
			return &dto.ImportMdbsResponse{Imported: imported}, fmt.Errorf("import %s: %w", req.MdbNumber, err)
		}
		imported++
	}

	s.logger.Info(mdbModule, "Master data imported", map[string]interface{}{
		"imported": imported,
		"total":    len(speakers),
	})
	return &dto.ImportMdbsResponse{Imported: imported}, nil
}

func (s *mdbService) InitCollection(ctx context.Context) (*dto.ImportMdbsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.MdbRepository().DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("clear persons: %w", err)
	}
	s.logger.Info(mdbModule, "Person collection cleared", nil)
	return s.ImportFromCrawler(ctx)
}

func (s *mdbService) FindMdbs(ctx context.Context, query dto.MdbQuery) ([]dto.MdbResponse, error) {
	filter := contract.MdbFilter{
		MdbNumber: query.MdbNumber,
		Forename:  query.Forename,
		Surname:   query.Surname,
		Limit:     query.Limit,
		Offset:    query.Offset,
	}
	if query.Id != "" {
		id, err := uuid.Parse(query.Id)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", query.Id, err)
		}
		filter.Id = &id
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	mdbs, err := uow.MdbRepository().FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	res := make([]dto.MdbResponse, 0, len(mdbs))
	for _, m := range mdbs {
		res = append(res, dto.NewMdbResponse(m))
	}
	return res, nil
}
