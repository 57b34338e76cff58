package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type SaveEmotionsRequest struct {
	InterviewId     uuid.UUID
	EmotionData     json.RawMessage `json:"emotion_data" validate:"required"`
	StartedAt       time.Time       `json:"started_at" validate:"required"`
	EndedAt         *time.Time      `json:"ended_at"`
	DurationSeconds int             `json:"duration_seconds"`
}

type SaveEmotionsResponse struct {
	Id uuid.UUID `json:"id"`
}

type GetEmotionsResponse struct {
	Id              uuid.UUID       `json:"id"`
	InterviewId     uuid.UUID       `json:"interview_id"`
	EmotionData     json.RawMessage `json:"emotion_data"`
	StartedAt       time.Time       `json:"started_at"`
	EndedAt         *time.Time      `json:"ended_at"`
	DurationSeconds int             `json:"duration_seconds"`
}
