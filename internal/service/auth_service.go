package service

import (
	"context"
	"fmt"
	"time"

	"cme-be/internal/dto"
	"cme-be/internal/entity"
	"cme-be/internal/pkg/logger"
	"cme-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const authModule = "AUTH"

type IAuthService interface {
	// Authenticate checks client credentials against the stored bcrypt hash.
	Authenticate(ctx context.Context, name, secret string) error
	// IssueToken returns a signed bearer token for an authenticated client.
	IssueToken(ctx context.Context, name string) (*dto.TokenResponse, error)
	CreateClient(ctx context.Context, req *dto.CreateClientRequest) (*entity.Client, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	jwtSecret  []byte
	tokenTTL   time.Duration
	logger     logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, jwtSecret string, tokenTTL time.Duration, logger logger.ILogger) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		logger:     logger,
	}
}

func (s *authService) Authenticate(ctx context.Context, name, secret string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	client, err := uow.ClientRepository().FindByName(ctx, name)
	if err != nil {
		return err
	}
	if client == nil {
		s.logger.Warn(authModule, "Token requested for unknown client", map[string]interface{}{"client": name})
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(client.SecretHash), []byte(secret)); err != nil {
		s.logger.Warn(authModule, "Token requested with wrong secret", map[string]interface{}{"client": name})
		return ErrInvalidCredentials
	}
	return nil
}

func (s *authService) IssueToken(ctx context.Context, name string) (*dto.TokenResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	client, err := uow.ClientRepository().FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   client.Name,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		ID:        uuid.NewString(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int(s.tokenTTL.Seconds()),
	}, nil
}

func (s *authService) CreateClient(ctx context.Context, req *dto.CreateClientRequest) (*entity.Client, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.ClientRepository().FindByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrClientExists, req.Name)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	client := &entity.Client{
		Id:         uuid.New(),
		Name:       req.Name,
		SecretHash: string(hash),
		CreatedAt:  time.Now(),
	}
	if err := uow.ClientRepository().Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}
