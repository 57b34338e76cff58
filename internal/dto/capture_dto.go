package dto

import "github.com/google/uuid"

type StartCaptureRequest struct {
	InterviewId uuid.UUID
	Label       string `json:"label"`
}

type AppendTranscriptionRequest struct {
	InterviewId   uuid.UUID
	Text          string `json:"text" validate:"required"`
	UserName      string `json:"user_name"`
	ParticipantId string `json:"participant_id"`
	Timestamp     int64  `json:"timestamp" validate:"required"`
}

type AppendDetectionRequest struct {
	InterviewId     uuid.UUID
	ParticipantId   string             `json:"participant_id" validate:"required"`
	ParticipantName string             `json:"participant_name"`
	Expressions     map[string]float64 `json:"expressions" validate:"required"`
	Timestamp       int64              `json:"timestamp" validate:"required"`
}

type CompleteCaptureResponse struct {
	InterviewId  uuid.UUID `json:"interview_id"`
	TranscriptId uuid.UUID `json:"transcript_id"`
	EmotionsId   uuid.UUID `json:"emotions_id"`
}

// InterviewEventMessage travels over the in-process event pipeline.
type InterviewEventMessage struct {
	InterviewId uuid.UUID `json:"interview_id"`
	Type        string    `json:"type"`
}
