package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateInterviewRequest struct {
	Title          string `json:"title" validate:"required"`
	JobDescription string `json:"job_description"`
	ResumeText     string `json:"resume_text"`
}

// CreateInterviewResponse carries the raw share tokens. This is the only time
// they are visible; the database keeps hashes only.
type CreateInterviewResponse struct {
	Id             uuid.UUID `json:"id"`
	HostToken      string    `json:"host_token"`
	CandidateToken string    `json:"candidate_token"`
	HostURL        string    `json:"host_url"`
	CandidateURL   string    `json:"candidate_url"`
}

type ShowInterviewResponse struct {
	Id             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	JobDescription string     `json:"job_description,omitempty"`
	ResumeText     string     `json:"resume_text,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}

type UpdateInterviewStatusRequest struct {
	Id     uuid.UUID
	Status string `json:"status" validate:"required,oneof=created active completed"`
}

type UpdateInterviewStatusResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}
