package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	InterviewStatusCreated   = "created"
	InterviewStatusActive    = "active"
	InterviewStatusCompleted = "completed"
)

type Interview struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title          string
	JobDescription string
	ResumeText     string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
