package service

import (
	"context"
	"testing"
	"time"

	"bionic-interviewer-be/internal/entity"
	"bionic-interviewer-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidateToken(t *testing.T) {
	factory, uow := newFakeFactory()
	svc := NewAuthService(factory, memory.NewTokenCache())

	interviewId := uuid.New()
	raw := "host-token-raw"
	uow.tokens.items = append(uow.tokens.items, &entity.InterviewToken{
		Id:          uuid.New(),
		InterviewId: interviewId,
		Role:        entity.TokenRoleHost,
		TokenHash:   HashToken(raw),
		ExpiresAt:   time.Now().Add(24 * time.Hour),
	})

	res, err := svc.ValidateToken(context.Background(), raw)
	assert.NoError(t, err)
	assert.Equal(t, entity.TokenRoleHost, res.Role)
	assert.Equal(t, interviewId, res.InterviewId)
}

func TestValidateTokenCachesLookup(t *testing.T) {
	factory, uow := newFakeFactory()
	svc := NewAuthService(factory, memory.NewTokenCache())

	interviewId := uuid.New()
	raw := "candidate-token-raw"
	uow.tokens.items = append(uow.tokens.items, &entity.InterviewToken{
		Id:          uuid.New(),
		InterviewId: interviewId,
		Role:        entity.TokenRoleCandidate,
		TokenHash:   HashToken(raw),
		ExpiresAt:   time.Now().Add(24 * time.Hour),
	})

	_, err := svc.ValidateToken(context.Background(), raw)
	assert.NoError(t, err)

	// Drop the backing row. A cached token still resolves.
	uow.tokens.items = nil

	res, err := svc.ValidateToken(context.Background(), raw)
	assert.NoError(t, err)
	assert.Equal(t, entity.TokenRoleCandidate, res.Role)
}

func TestValidateTokenRejectsUnknown(t *testing.T) {
	factory, _ := newFakeFactory()
	svc := NewAuthService(factory, memory.NewTokenCache())

	_, err := svc.ValidateToken(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	factory, uow := newFakeFactory()
	svc := NewAuthService(factory, memory.NewTokenCache())

	raw := "expired-token"
	uow.tokens.items = append(uow.tokens.items, &entity.InterviewToken{
		Id:          uuid.New(),
		InterviewId: uuid.New(),
		Role:        entity.TokenRoleHost,
		TokenHash:   HashToken(raw),
		ExpiresAt:   time.Now().Add(-time.Hour),
	})

	_, err := svc.ValidateToken(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevokeInterviewTokens(t *testing.T) {
	factory, uow := newFakeFactory()
	cache := memory.NewTokenCache()
	svc := NewAuthService(factory, cache)

	interviewId := uuid.New()
	raw := "soon-revoked"
	uow.tokens.items = append(uow.tokens.items, &entity.InterviewToken{
		Id:          uuid.New(),
		InterviewId: interviewId,
		Role:        entity.TokenRoleHost,
		TokenHash:   HashToken(raw),
		ExpiresAt:   time.Now().Add(24 * time.Hour),
	})

	_, err := svc.ValidateToken(context.Background(), raw)
	assert.NoError(t, err)

	assert.NoError(t, svc.RevokeInterviewTokens(context.Background(), interviewId))

	// Both the cache entry and the row are gone.
	_, err = svc.ValidateToken(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Empty(t, uow.tokens.items)
}
