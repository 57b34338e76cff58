package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EmotionDetection struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey"`
	InterviewId     uuid.UUID `gorm:"type:uuid;index"`
	EmotionData     json.RawMessage
	StartedAt       time.Time
	EndedAt         *time.Time
	DurationSeconds int
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
