package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Transcript struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey"`
	InterviewId     uuid.UUID `gorm:"type:uuid;index"`
	TranscriptData  json.RawMessage
	TranscriptText  string
	StartedAt       time.Time
	EndedAt         *time.Time
	DurationSeconds int
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
