// FILE: internal/service/capture_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"bionic-interviewer-be/internal/dto"
	"bionic-interviewer-be/internal/pkg/logger"
	"bionic-interviewer-be/pkg/capture"

	"github.com/google/uuid"
)

// ICaptureService exposes the server-side capture buffers. Live call events
// are appended to durable session buffers; on completion the buffers are
// converted to the report shape and persisted through the transcript and
// emotion services.
type ICaptureService interface {
	Start(ctx context.Context, req *dto.StartCaptureRequest) error
	AppendTranscription(ctx context.Context, req *dto.AppendTranscriptionRequest) error
	AppendDetection(ctx context.Context, req *dto.AppendDetectionRequest) error
	Complete(ctx context.Context, interviewId uuid.UUID) (*dto.CompleteCaptureResponse, error)
	Discard(ctx context.Context, interviewId uuid.UUID) error
}

type captureService struct {
	transcriptRecorder *capture.TranscriptRecorder
	emotionRecorder    *capture.EmotionRecorder
	transcriptService  ITranscriptService
	emotionService     IEmotionService
	logger             logger.ILogger
}

func NewCaptureService(
	transcriptStore *capture.TranscriptStore,
	emotionStore *capture.EmotionStore,
	transcriptService ITranscriptService,
	emotionService IEmotionService,
	log logger.ILogger,
) ICaptureService {
	return &captureService{
		transcriptRecorder: capture.NewTranscriptRecorder(transcriptStore),
		emotionRecorder:    capture.NewEmotionRecorder(emotionStore),
		transcriptService:  transcriptService,
		emotionService:     emotionService,
		logger:             log,
	}
}

func (s *captureService) Start(ctx context.Context, req *dto.StartCaptureRequest) error {
	sessionId := req.InterviewId.String()
	s.transcriptRecorder.Start(sessionId, req.Label)
	s.emotionRecorder.Start(sessionId, req.Label)
	s.logger.Info("CaptureService", "Capture session started", map[string]interface{}{"interview_id": sessionId})
	return nil
}

func (s *captureService) AppendTranscription(ctx context.Context, req *dto.AppendTranscriptionRequest) error {
	s.transcriptRecorder.OnTranscription(req.InterviewId.String(), capture.TranscriptionEvent{
		Text:          req.Text,
		UserName:      req.UserName,
		ParticipantID: req.ParticipantId,
		Timestamp:     req.Timestamp,
	})
	return nil
}

func (s *captureService) AppendDetection(ctx context.Context, req *dto.AppendDetectionRequest) error {
	s.emotionRecorder.OnDetection(req.InterviewId.String(), capture.DetectionEvent{
		ParticipantID:   req.ParticipantId,
		ParticipantName: req.ParticipantName,
		Expressions:     scoresFromMap(req.Expressions),
		Timestamp:       req.Timestamp,
	})
	return nil
}

func (s *captureService) Complete(ctx context.Context, interviewId uuid.UUID) (*dto.CompleteCaptureResponse, error) {
	sessionId := interviewId.String()

	s.transcriptRecorder.Complete(sessionId)
	s.emotionRecorder.Complete(sessionId)

	res := &dto.CompleteCaptureResponse{InterviewId: interviewId}

	transcriptReport := s.transcriptRecorder.Export(sessionId)
	if transcriptReport != nil {
		startedAt, endedAt, err := reportInterval(transcriptReport.StartedAt, transcriptReport.EndedAt)
		if err != nil {
			s.logger.Error("CaptureService", "Unparseable transcript report times", map[string]interface{}{"interview_id": sessionId, "error": err.Error()})
		} else {
			data, _ := json.Marshal(transcriptReport)
			saved, err := s.transcriptService.Save(ctx, &dto.SaveTranscriptRequest{
				InterviewId:     interviewId,
				TranscriptData:  data,
				StartedAt:       startedAt,
				EndedAt:         endedAt,
				DurationSeconds: transcriptReport.DurationSeconds,
			})
			if err != nil {
				return nil, err
			}
			res.TranscriptId = saved.Id
		}
	}

	emotionReport := s.emotionRecorder.Export(sessionId)
	if emotionReport != nil {
		startedAt, endedAt, err := reportInterval(emotionReport.StartedAt, emotionReport.EndedAt)
		if err != nil {
			s.logger.Error("CaptureService", "Unparseable emotion report times", map[string]interface{}{"interview_id": sessionId, "error": err.Error()})
		} else {
			data, _ := json.Marshal(emotionReport)
			saved, err := s.emotionService.Save(ctx, &dto.SaveEmotionsRequest{
				InterviewId:     interviewId,
				EmotionData:     data,
				StartedAt:       startedAt,
				EndedAt:         endedAt,
				DurationSeconds: emotionReport.DurationSeconds,
			})
			if err != nil {
				return nil, err
			}
			res.EmotionsId = saved.Id
		}
	}

	// Buffers are only dropped after a successful persist.
	s.transcriptRecorder.Discard(sessionId)
	s.emotionRecorder.Discard(sessionId)
	s.logger.Info("CaptureService", "Capture session completed", map[string]interface{}{"interview_id": sessionId})

	return res, nil
}

func (s *captureService) Discard(ctx context.Context, interviewId uuid.UUID) error {
	sessionId := interviewId.String()
	s.transcriptRecorder.Discard(sessionId)
	s.emotionRecorder.Discard(sessionId)
	return nil
}

func reportInterval(startedAt string, endedAt *string) (time.Time, *time.Time, error) {
	start, err := time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return time.Time{}, nil, err
	}
	if endedAt == nil {
		return start, nil, nil
	}
	end, err := time.Parse(time.RFC3339, *endedAt)
	if err != nil {
		return time.Time{}, nil, err
	}
	return start, &end, nil
}

func scoresFromMap(m map[string]float64) capture.Scores {
	return capture.Scores{
		Happy:     m["happy"],
		Sad:       m["sad"],
		Angry:     m["angry"],
		Fearful:   m["fearful"],
		Disgusted: m["disgusted"],
		Surprised: m["surprised"],
		Neutral:   m["neutral"],
	}
}
