package dto

import "github.com/google/uuid"

type ValidateTokenResponse struct {
	Role        string    `json:"role"`
	InterviewId uuid.UUID `json:"interview_id"`
}
