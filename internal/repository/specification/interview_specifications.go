package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByInterviewID struct {
	InterviewID uuid.UUID
}

func (s ByInterviewID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("interview_id = ?", s.InterviewID)
}

type ByTokenHash struct {
	TokenHash string
}

func (s ByTokenHash) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("token_hash = ?", s.TokenHash)
}

type ByRole struct {
	Role string
}

func (s ByRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}

type TokenNotExpired struct {
	Now time.Time
}

func (s TokenNotExpired) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("expires_at > ?", s.Now)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}
