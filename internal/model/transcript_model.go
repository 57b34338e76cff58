package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Transcript struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InterviewId     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	TranscriptData  datatypes.JSON `gorm:"type:jsonb;not null"`
	TranscriptText  string         `gorm:"type:text"`
	StartedAt       time.Time      `gorm:"not null"`
	EndedAt         *time.Time
	DurationSeconds int       `gorm:"not null;default:0"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (Transcript) TableName() string {
	return "transcripts"
}
