package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"bionic-interviewer-be/internal/dto"
	"bionic-interviewer-be/pkg/capture"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopILogger struct{}

func (nopILogger) Debug(module, message string, details map[string]interface{}) {}
func (nopILogger) Info(module, message string, details map[string]interface{})  {}
func (nopILogger) Warn(module, message string, details map[string]interface{})  {}
func (nopILogger) Error(module, message string, details map[string]interface{}) {}
func (nopILogger) Sync() error                                                  { return nil }

type recordingTranscriptService struct {
	saved []*dto.SaveTranscriptRequest
}

func (s *recordingTranscriptService) Save(ctx context.Context, req *dto.SaveTranscriptRequest) (*dto.SaveTranscriptResponse, error) {
	s.saved = append(s.saved, req)
	return &dto.SaveTranscriptResponse{Id: uuid.New()}, nil
}

func (s *recordingTranscriptService) Get(ctx context.Context, interviewId uuid.UUID) (*dto.GetTranscriptResponse, error) {
	return nil, nil
}

type recordingEmotionService struct {
	saved []*dto.SaveEmotionsRequest
}

func (s *recordingEmotionService) Save(ctx context.Context, req *dto.SaveEmotionsRequest) (*dto.SaveEmotionsResponse, error) {
	s.saved = append(s.saved, req)
	return &dto.SaveEmotionsResponse{Id: uuid.New()}, nil
}

func (s *recordingEmotionService) Get(ctx context.Context, interviewId uuid.UUID) (*dto.GetEmotionsResponse, error) {
	return nil, nil
}

func newCaptureFixture() (ICaptureService, *recordingTranscriptService, *recordingEmotionService, *capture.TranscriptStore, *capture.EmotionStore) {
	backend := capture.NewMemoryBackend(0)
	transcripts := capture.NewTranscriptStore(backend, capture.NopLogger)
	emotions := capture.NewEmotionStore(backend, capture.NopLogger)
	tSvc := &recordingTranscriptService{}
	eSvc := &recordingEmotionService{}
	svc := NewCaptureService(transcripts, emotions, tSvc, eSvc, nopILogger{})
	return svc, tSvc, eSvc, transcripts, emotions
}

func TestCaptureLifecyclePersistsReports(t *testing.T) {
	svc, tSvc, eSvc, _, _ := newCaptureFixture()

	interviewId := uuid.New()
	now := time.Now().UnixMilli()

	require.NoError(t, svc.Start(context.Background(), &dto.StartCaptureRequest{
		InterviewId: interviewId,
		Label:       "Backend Screen",
	}))

	require.NoError(t, svc.AppendTranscription(context.Background(), &dto.AppendTranscriptionRequest{
		InterviewId:   interviewId,
		Text:          "Tell me about yourself",
		UserName:      "Host",
		ParticipantId: "p-host",
		Timestamp:     now,
	}))
	require.NoError(t, svc.AppendTranscription(context.Background(), &dto.AppendTranscriptionRequest{
		InterviewId:   interviewId,
		Text:          "I build distributed systems",
		UserName:      "Candidate",
		ParticipantId: "p-cand",
		Timestamp:     now + 6000,
	}))
	require.NoError(t, svc.AppendDetection(context.Background(), &dto.AppendDetectionRequest{
		InterviewId:     interviewId,
		ParticipantId:   "p-cand",
		ParticipantName: "Candidate",
		Expressions:     map[string]float64{"happy": 0.8, "neutral": 0.2},
		Timestamp:       now + 6000,
	}))

	res, err := svc.Complete(context.Background(), interviewId)
	require.NoError(t, err)
	assert.Equal(t, interviewId, res.InterviewId)
	assert.NotEqual(t, uuid.Nil, res.TranscriptId)
	assert.NotEqual(t, uuid.Nil, res.EmotionsId)

	require.Len(t, tSvc.saved, 1)
	var report capture.TranscriptReport
	require.NoError(t, json.Unmarshal(tSvc.saved[0].TranscriptData, &report))
	require.Len(t, report.Segments, 2)
	assert.Equal(t, "Tell me about yourself", report.Segments[0].Text)
	assert.NotNil(t, report.EndedAt)
	assert.NotNil(t, tSvc.saved[0].EndedAt)

	require.Len(t, eSvc.saved, 1)
	var emotions capture.EmotionReport
	require.NoError(t, json.Unmarshal(eSvc.saved[0].EmotionData, &emotions))
	require.Len(t, emotions.Detections, 1)
	assert.Equal(t, 80, emotions.Detections[0].Emotions.Happy)
}

func TestCaptureCompleteDropsBuffers(t *testing.T) {
	svc, _, _, transcripts, emotions := newCaptureFixture()

	interviewId := uuid.New()
	require.NoError(t, svc.Start(context.Background(), &dto.StartCaptureRequest{InterviewId: interviewId}))
	require.NoError(t, svc.AppendTranscription(context.Background(), &dto.AppendTranscriptionRequest{
		InterviewId: interviewId,
		Text:        "hello",
		Timestamp:   time.Now().UnixMilli(),
	}))

	_, err := svc.Complete(context.Background(), interviewId)
	require.NoError(t, err)

	assert.Nil(t, transcripts.Read(interviewId.String()))
	assert.Nil(t, emotions.Read(interviewId.String()))
}

func TestCaptureCompleteEmptySession(t *testing.T) {
	svc, tSvc, eSvc, _, _ := newCaptureFixture()

	// Completing an interview that never started a session saves nothing.
	res, err := svc.Complete(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, res.TranscriptId)
	assert.Empty(t, tSvc.saved)
	assert.Empty(t, eSvc.saved)
}

func TestCaptureDiscard(t *testing.T) {
	svc, _, _, transcripts, _ := newCaptureFixture()

	interviewId := uuid.New()
	require.NoError(t, svc.Start(context.Background(), &dto.StartCaptureRequest{InterviewId: interviewId}))
	require.NoError(t, svc.Discard(context.Background(), interviewId))

	assert.Nil(t, transcripts.Read(interviewId.String()))
}
