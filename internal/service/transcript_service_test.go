package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"bionic-interviewer-be/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSaveTranscriptUpserts(t *testing.T) {
	factory, uow := newFakeFactory()
	pub := &fakePublisher{}
	svc := NewTranscriptService(factory, pub, nil)

	interviewId := activeInterview(uow.interviews)
	started := time.Now().Add(-10 * time.Minute)

	first, err := svc.Save(context.Background(), &dto.SaveTranscriptRequest{
		InterviewId:     interviewId,
		TranscriptData:  json.RawMessage(`{"segments":[]}`),
		StartedAt:       started,
		DurationSeconds: 0,
	})
	assert.NoError(t, err)

	ended := started.Add(9 * time.Minute)
	second, err := svc.Save(context.Background(), &dto.SaveTranscriptRequest{
		InterviewId:     interviewId,
		TranscriptData:  json.RawMessage(`{"segments":[{"speaker":"Host","text":"hello"}]}`),
		StartedAt:       started,
		EndedAt:         &ended,
		DurationSeconds: 540,
	})
	assert.NoError(t, err)

	// Re-saving replaces the row for the interview instead of duplicating it.
	assert.Equal(t, first.Id, second.Id)
	assert.Len(t, uow.transcript.items, 1)

	saved := uow.transcript.items[interviewId]
	assert.JSONEq(t, `{"segments":[{"speaker":"Host","text":"hello"}]}`, string(saved.TranscriptData))
	assert.Equal(t, "Host: hello\n", saved.TranscriptText)
	assert.NotNil(t, saved.EndedAt)
	assert.Equal(t, 540, saved.DurationSeconds)

	// Each save pushes a pipeline event.
	assert.Len(t, pub.published, 2)
	var msg dto.InterviewEventMessage
	assert.NoError(t, json.Unmarshal(pub.published[0], &msg))
	assert.Equal(t, interviewId, msg.InterviewId)
}

func TestSaveTranscriptUnknownInterview(t *testing.T) {
	factory, _ := newFakeFactory()
	svc := NewTranscriptService(factory, &fakePublisher{}, nil)

	_, err := svc.Save(context.Background(), &dto.SaveTranscriptRequest{
		InterviewId:    uuid.New(),
		TranscriptData: json.RawMessage(`{}`),
		StartedAt:      time.Now(),
	})
	assert.ErrorIs(t, err, ErrInterviewNotFound)
}

func TestGetTranscriptAbsent(t *testing.T) {
	factory, uow := newFakeFactory()
	svc := NewTranscriptService(factory, &fakePublisher{}, nil)

	interviewId := activeInterview(uow.interviews)

	res, err := svc.Get(context.Background(), interviewId)
	assert.NoError(t, err)
	assert.Nil(t, res)
}

func TestSaveAndGetEmotions(t *testing.T) {
	factory, uow := newFakeFactory()
	svc := NewEmotionService(factory, &fakePublisher{}, nil)

	interviewId := activeInterview(uow.interviews)
	started := time.Now().Add(-5 * time.Minute)

	_, err := svc.Save(context.Background(), &dto.SaveEmotionsRequest{
		InterviewId:     interviewId,
		EmotionData:     json.RawMessage(`{"detections":[{"emotions":{"happy":80}}]}`),
		StartedAt:       started,
		DurationSeconds: 300,
	})
	assert.NoError(t, err)

	res, err := svc.Get(context.Background(), interviewId)
	assert.NoError(t, err)
	assert.NotNil(t, res)
	assert.Equal(t, interviewId, res.InterviewId)
	assert.JSONEq(t, `{"detections":[{"emotions":{"happy":80}}]}`, string(res.EmotionData))
}
