// FILE: internal/service/emotion_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"bionic-interviewer-be/internal/dto"
	"bionic-interviewer-be/internal/entity"
	"bionic-interviewer-be/internal/repository/specification"
	"bionic-interviewer-be/internal/repository/unitofwork"
	"bionic-interviewer-be/pkg/events"
	pktNats "bionic-interviewer-be/pkg/nats"

	"github.com/google/uuid"
)

type IEmotionService interface {
	Save(ctx context.Context, req *dto.SaveEmotionsRequest) (*dto.SaveEmotionsResponse, error)
	Get(ctx context.Context, interviewId uuid.UUID) (*dto.GetEmotionsResponse, error)
}

type emotionService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	natsPublisher    *pktNats.Publisher
}

func NewEmotionService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	natsPublisher *pktNats.Publisher,
) IEmotionService {
	return &emotionService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		natsPublisher:    natsPublisher,
	}
}

func (s *emotionService) Save(ctx context.Context, req *dto.SaveEmotionsRequest) (*dto.SaveEmotionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	interview, err := uow.InterviewRepository().FindOne(ctx, specification.ByID{ID: req.InterviewId})
	if err != nil {
		return nil, err
	}
	if interview == nil {
		return nil, ErrInterviewNotFound
	}

	existing, err := uow.EmotionDetectionRepository().FindOne(ctx,
		specification.ByInterviewID{InterviewID: req.InterviewId},
	)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var saved *entity.EmotionDetection
	if existing == nil {
		detection := entity.EmotionDetection{
			Id:              uuid.New(),
			InterviewId:     req.InterviewId,
			EmotionData:     json.RawMessage(req.EmotionData),
			StartedAt:       req.StartedAt,
			EndedAt:         req.EndedAt,
			DurationSeconds: req.DurationSeconds,
			CreatedAt:       now,
		}
		if err := uow.EmotionDetectionRepository().Create(ctx, &detection); err != nil {
			return nil, err
		}
		saved = &detection
	} else {
		existing.EmotionData = json.RawMessage(req.EmotionData)
		existing.StartedAt = req.StartedAt
		existing.EndedAt = req.EndedAt
		existing.DurationSeconds = req.DurationSeconds
		existing.UpdatedAt = &now
		if err := uow.EmotionDetectionRepository().Update(ctx, existing); err != nil {
			return nil, err
		}
		saved = existing
	}

	msg := dto.InterviewEventMessage{
		InterviewId: req.InterviewId,
		Type:        events.EventEmotionsSaved,
	}
	msgJson, _ := json.Marshal(msg)
	_ = s.publisherService.Publish(ctx, msgJson)

	if s.natsPublisher != nil {
		evt := events.NewInterviewEvent(events.EventEmotionsSaved, req.InterviewId.String(), nil)
		_ = s.natsPublisher.Publish(ctx, evt)
	}

	return &dto.SaveEmotionsResponse{
		Id: saved.Id,
	}, nil
}

func (s *emotionService) Get(ctx context.Context, interviewId uuid.UUID) (*dto.GetEmotionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	detection, err := uow.EmotionDetectionRepository().FindOne(ctx,
		specification.ByInterviewID{InterviewID: interviewId},
	)
	if err != nil {
		return nil, err
	}
	if detection == nil {
		return nil, nil
	}

	return &dto.GetEmotionsResponse{
		Id:              detection.Id,
		InterviewId:     detection.InterviewId,
		EmotionData:     detection.EmotionData,
		StartedAt:       detection.StartedAt,
		EndedAt:         detection.EndedAt,
		DurationSeconds: detection.DurationSeconds,
	}, nil
}
