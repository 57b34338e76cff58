package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	TokenRoleHost      = "host"
	TokenRoleCandidate = "candidate"
)

type InterviewToken struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	InterviewId uuid.UUID `gorm:"type:uuid;index"`
	Role        string
	TokenHash   string
	ExpiresAt   time.Time
	CreatedAt   time.Time
}
