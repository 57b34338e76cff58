// FILE: internal/service/interview_service.go
package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"bionic-interviewer-be/internal/dto"
	"bionic-interviewer-be/internal/entity"
	"bionic-interviewer-be/internal/repository/specification"
	"bionic-interviewer-be/internal/repository/unitofwork"
	"bionic-interviewer-be/pkg/events"
	pktNats "bionic-interviewer-be/pkg/nats"

	"github.com/google/uuid"
)

var ErrInterviewNotFound = errors.New("interview not found")

type IInterviewService interface {
	Create(ctx context.Context, req *dto.CreateInterviewRequest) (*dto.CreateInterviewResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowInterviewResponse, error)
	UpdateStatus(ctx context.Context, req *dto.UpdateInterviewStatusRequest) (*dto.UpdateInterviewStatusResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type interviewService struct {
	uowFactory      unitofwork.RepositoryFactory
	natsPublisher   *pktNats.Publisher
	clientURL       string
	tokenExpiryDays int
}

func NewInterviewService(
	uowFactory unitofwork.RepositoryFactory,
	natsPublisher *pktNats.Publisher,
	clientURL string,
	tokenExpiryDays int,
) IInterviewService {
	return &interviewService{
		uowFactory:      uowFactory,
		natsPublisher:   natsPublisher,
		clientURL:       clientURL,
		tokenExpiryDays: tokenExpiryDays,
	}
}

// generateToken returns an opaque URL-safe token and its SHA-256 hex hash.
// Only the hash is persisted.
func generateToken() (raw string, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = base64.RawURLEncoding.EncodeToString(buf)
	return raw, HashToken(raw), nil
}

// HashToken derives the storage form of a raw interview token.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func (s *interviewService) Create(ctx context.Context, req *dto.CreateInterviewRequest) (*dto.CreateInterviewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	interview := entity.Interview{
		Id:             uuid.New(),
		Title:          req.Title,
		JobDescription: req.JobDescription,
		ResumeText:     req.ResumeText,
		Status:         entity.InterviewStatusCreated,
		CreatedAt:      time.Now(),
	}

	hostRaw, hostHash, err := generateToken()
	if err != nil {
		return nil, err
	}
	candidateRaw, candidateHash, err := generateToken()
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().AddDate(0, 0, s.tokenExpiryDays)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.InterviewRepository().Create(ctx, &interview); err != nil {
		return nil, err
	}

	hostToken := entity.InterviewToken{
		Id:          uuid.New(),
		InterviewId: interview.Id,
		Role:        entity.TokenRoleHost,
		TokenHash:   hostHash,
		ExpiresAt:   expiresAt,
		CreatedAt:   time.Now(),
	}
	if err := uow.InterviewTokenRepository().Create(ctx, &hostToken); err != nil {
		return nil, err
	}

	candidateToken := entity.InterviewToken{
		Id:          uuid.New(),
		InterviewId: interview.Id,
		Role:        entity.TokenRoleCandidate,
		TokenHash:   candidateHash,
		ExpiresAt:   expiresAt,
		CreatedAt:   time.Now(),
	}
	if err := uow.InterviewTokenRepository().Create(ctx, &candidateToken); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if s.natsPublisher != nil {
		evt := events.NewInterviewEvent(events.EventInterviewCreated, interview.Id.String(), map[string]interface{}{
			"title": interview.Title,
		})
		// Best effort. Interview creation must not fail because the bus is down.
		_ = s.natsPublisher.Publish(ctx, evt)
	}

	return &dto.CreateInterviewResponse{
		Id:             interview.Id,
		HostToken:      hostRaw,
		CandidateToken: candidateRaw,
		HostURL:        fmt.Sprintf("%s/interview/%s?token=%s", s.clientURL, interview.Id, hostRaw),
		CandidateURL:   fmt.Sprintf("%s/interview/%s?token=%s", s.clientURL, interview.Id, candidateRaw),
	}, nil
}

func (s *interviewService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowInterviewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	interview, err := uow.InterviewRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if interview == nil {
		return nil, nil
	}

	return &dto.ShowInterviewResponse{
		Id:             interview.Id,
		Title:          interview.Title,
		JobDescription: interview.JobDescription,
		ResumeText:     interview.ResumeText,
		Status:         interview.Status,
		CreatedAt:      interview.CreatedAt,
		UpdatedAt:      interview.UpdatedAt,
	}, nil
}

func (s *interviewService) UpdateStatus(ctx context.Context, req *dto.UpdateInterviewStatusRequest) (*dto.UpdateInterviewStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	interview, err := uow.InterviewRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if interview == nil {
		return nil, nil
	}

	now := time.Now()
	interview.Status = req.Status
	interview.UpdatedAt = &now

	if err := uow.InterviewRepository().Update(ctx, interview); err != nil {
		return nil, err
	}

	if s.natsPublisher != nil && req.Status == entity.InterviewStatusCompleted {
		evt := events.NewInterviewEvent(events.EventInterviewCompleted, interview.Id.String(), nil)
		_ = s.natsPublisher.Publish(ctx, evt)
	}

	return &dto.UpdateInterviewStatusResponse{
		Id:     interview.Id,
		Status: interview.Status,
	}, nil
}

func (s *interviewService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	interview, err := uow.InterviewRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if interview == nil {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.InterviewRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.InterviewTokenRepository().DeleteByInterviewId(ctx, id); err != nil {
		return err
	}
	if err := uow.TranscriptRepository().DeleteByInterviewId(ctx, id); err != nil {
		return err
	}
	if err := uow.EmotionDetectionRepository().DeleteByInterviewId(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}
