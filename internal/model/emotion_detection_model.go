package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type EmotionDetection struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InterviewId     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	EmotionData     datatypes.JSON `gorm:"type:jsonb;not null"`
	StartedAt       time.Time      `gorm:"not null"`
	EndedAt         *time.Time
	DurationSeconds int       `gorm:"not null;default:0"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (EmotionDetection) TableName() string {
	return "emotion_detections"
}
