package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Interview struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title          string         `gorm:"type:varchar(255);not null"`
	JobDescription string         `gorm:"type:text"`
	ResumeText     string         `gorm:"type:text"`
	Status         string         `gorm:"type:varchar(32);not null;default:'created';index"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Interview) TableName() string {
	return "interviews"
}
