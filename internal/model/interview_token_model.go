package model

import (
	"time"

	"github.com/google/uuid"
)

type InterviewToken struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InterviewId uuid.UUID `gorm:"type:uuid;not null;index"`
	Role        string    `gorm:"type:varchar(16);not null"`
	TokenHash   string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	ExpiresAt   time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (InterviewToken) TableName() string {
	return "interview_tokens"
}
