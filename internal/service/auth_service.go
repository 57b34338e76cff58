// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"time"

	"bionic-interviewer-be/internal/dto"
	"bionic-interviewer-be/internal/repository/memory"
	"bionic-interviewer-be/internal/repository/specification"
	"bionic-interviewer-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type IAuthService interface {
	// ValidateToken resolves a raw interview token to its role and interview.
	ValidateToken(ctx context.Context, rawToken string) (*dto.ValidateTokenResponse, error)

	// RevokeInterviewTokens drops cached entries for an interview's tokens.
	RevokeInterviewTokens(ctx context.Context, interviewId uuid.UUID) error
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	tokenCache *memory.TokenCache
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, tokenCache *memory.TokenCache) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		tokenCache: tokenCache,
	}
}

func (s *authService) ValidateToken(ctx context.Context, rawToken string) (*dto.ValidateTokenResponse, error) {
	if rawToken == "" {
		return nil, ErrInvalidToken
	}

	hash := HashToken(rawToken)

	// 1. Cache lookup (hot path, hit on every call-scoped request)
	if cached, found := s.tokenCache.Get(hash); found {
		return cached, nil
	}

	// 2. Database lookup
	uow := s.uowFactory.NewUnitOfWork(ctx)
	token, err := uow.InterviewTokenRepository().FindOne(ctx,
		specification.ByTokenHash{TokenHash: hash},
		specification.TokenNotExpired{Now: time.Now()},
	)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, ErrInvalidToken
	}

	resolved := &dto.ValidateTokenResponse{
		Role:        token.Role,
		InterviewId: token.InterviewId,
	}
	s.tokenCache.Save(hash, resolved)

	return resolved, nil
}

func (s *authService) RevokeInterviewTokens(ctx context.Context, interviewId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tokens, err := uow.InterviewTokenRepository().FindAll(ctx,
		specification.ByInterviewID{InterviewID: interviewId},
	)
	if err != nil {
		return err
	}

	for _, t := range tokens {
		s.tokenCache.Delete(t.TokenHash)
	}
	return uow.InterviewTokenRepository().DeleteByInterviewId(ctx, interviewId)
}
