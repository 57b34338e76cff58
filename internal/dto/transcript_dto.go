package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type SaveTranscriptRequest struct {
	InterviewId     uuid.UUID
	TranscriptData  json.RawMessage `json:"transcript_data" validate:"required"`
	StartedAt       time.Time       `json:"started_at" validate:"required"`
	EndedAt         *time.Time      `json:"ended_at"`
	DurationSeconds int             `json:"duration_seconds"`
}

type SaveTranscriptResponse struct {
	Id uuid.UUID `json:"id"`
}

type GetTranscriptResponse struct {
	Id              uuid.UUID       `json:"id"`
	InterviewId     uuid.UUID       `json:"interview_id"`
	TranscriptData  json.RawMessage `json:"transcript_data"`
	TranscriptText  string          `json:"transcript_text"`
	StartedAt       time.Time       `json:"started_at"`
	EndedAt         *time.Time      `json:"ended_at"`
	DurationSeconds int             `json:"duration_seconds"`
}
