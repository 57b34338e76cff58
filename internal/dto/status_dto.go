package dto

import (
	"time"

	"github.com/google/uuid"
)

// StatusUpdateMessage is pushed to websocket clients watching an interview.
type StatusUpdateMessage struct {
	InterviewId uuid.UUID `json:"interview_id"`
	Status      string    `json:"status"`
	Event       string    `json:"event"`
	OccurredAt  time.Time `json:"occurred_at"`
}
