// FILE: internal/service/transcript_service.go
package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"bionic-interviewer-be/internal/dto"
	"bionic-interviewer-be/internal/entity"
	"bionic-interviewer-be/internal/repository/specification"
	"bionic-interviewer-be/internal/repository/unitofwork"
	"bionic-interviewer-be/pkg/events"
	pktNats "bionic-interviewer-be/pkg/nats"

	"github.com/google/uuid"
)

type ITranscriptService interface {
	Save(ctx context.Context, req *dto.SaveTranscriptRequest) (*dto.SaveTranscriptResponse, error)
	Get(ctx context.Context, interviewId uuid.UUID) (*dto.GetTranscriptResponse, error)
}

type transcriptService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	natsPublisher    *pktNats.Publisher
}

func NewTranscriptService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	natsPublisher *pktNats.Publisher,
) ITranscriptService {
	return &transcriptService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		natsPublisher:    natsPublisher,
	}
}

func (s *transcriptService) Save(ctx context.Context, req *dto.SaveTranscriptRequest) (*dto.SaveTranscriptResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	interview, err := uow.InterviewRepository().FindOne(ctx, specification.ByID{ID: req.InterviewId})
	if err != nil {
		return nil, err
	}
	if interview == nil {
		return nil, ErrInterviewNotFound
	}

	// Upsert: the briefing flow re-saves the transcript when a call resumes
	// after a disconnect.
	existing, err := uow.TranscriptRepository().FindOne(ctx,
		specification.ByInterviewID{InterviewID: req.InterviewId},
	)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	plainText := flattenTranscript(req.TranscriptData)
	var saved *entity.Transcript
	if existing == nil {
		transcript := entity.Transcript{
			Id:              uuid.New(),
			InterviewId:     req.InterviewId,
			TranscriptData:  json.RawMessage(req.TranscriptData),
			TranscriptText:  plainText,
			StartedAt:       req.StartedAt,
			EndedAt:         req.EndedAt,
			DurationSeconds: req.DurationSeconds,
			CreatedAt:       now,
		}
		if err := uow.TranscriptRepository().Create(ctx, &transcript); err != nil {
			return nil, err
		}
		saved = &transcript
	} else {
		existing.TranscriptData = json.RawMessage(req.TranscriptData)
		existing.TranscriptText = plainText
		existing.StartedAt = req.StartedAt
		existing.EndedAt = req.EndedAt
		existing.DurationSeconds = req.DurationSeconds
		existing.UpdatedAt = &now
		if err := uow.TranscriptRepository().Update(ctx, existing); err != nil {
			return nil, err
		}
		saved = existing
	}

	s.notifySaved(ctx, req.InterviewId)

	return &dto.SaveTranscriptResponse{
		Id: saved.Id,
	}, nil
}

func (s *transcriptService) notifySaved(ctx context.Context, interviewId uuid.UUID) {
	// In-process pipeline drives the interview status transition.
	msg := dto.InterviewEventMessage{
		InterviewId: interviewId,
		Type:        events.EventTranscriptSaved,
	}
	msgJson, _ := json.Marshal(msg)
	_ = s.publisherService.Publish(ctx, msgJson)

	// NATS fans the event out to the status notifier and external consumers.
	if s.natsPublisher != nil {
		evt := events.NewInterviewEvent(events.EventTranscriptSaved, interviewId.String(), nil)
		_ = s.natsPublisher.Publish(ctx, evt)
	}
}

func (s *transcriptService) Get(ctx context.Context, interviewId uuid.UUID) (*dto.GetTranscriptResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	transcript, err := uow.TranscriptRepository().FindOne(ctx,
		specification.ByInterviewID{InterviewID: interviewId},
	)
	if err != nil {
		return nil, err
	}
	if transcript == nil {
		return nil, nil
	}

	return &dto.GetTranscriptResponse{
		Id:              transcript.Id,
		InterviewId:     transcript.InterviewId,
		TranscriptData:  transcript.TranscriptData,
		TranscriptText:  transcript.TranscriptText,
		StartedAt:       transcript.StartedAt,
		EndedAt:         transcript.EndedAt,
		DurationSeconds: transcript.DurationSeconds,
	}, nil
}

// flattenTranscript renders the report segments as "Speaker: text" lines, the
// shape the briefing prompt consumes. Unparseable payloads yield an empty
// string rather than an error; the structured column is the source of truth.
func flattenTranscript(data json.RawMessage) string {
	var report struct {
		Segments []struct {
			Speaker *string `json:"speaker"`
			Text    string  `json:"text"`
		} `json:"segments"`
	}
	if err := json.Unmarshal(data, &report); err != nil {
		return ""
	}

	var b strings.Builder
	for _, seg := range report.Segments {
		speaker := "Unknown"
		if seg.Speaker != nil && *seg.Speaker != "" {
			speaker = *seg.Speaker
		}
		b.WriteString(speaker)
		b.WriteString(": ")
		b.WriteString(seg.Text)
		b.WriteString("\n")
	}
	return b.String()
}
