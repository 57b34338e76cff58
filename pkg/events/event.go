package events

import "time"

// Event type codes published on the interview bus.
const (
	EventInterviewCreated   = "INTERVIEW_CREATED"
	EventInterviewCompleted = "INTERVIEW_COMPLETED"
	EventTranscriptSaved    = "TRANSCRIPT_SAVED"
	EventEmotionsSaved      = "EMOTIONS_SAVED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "TRANSCRIPT_SAVED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewInterviewEvent builds an event scoped to a single interview.
func NewInterviewEvent(eventType, interviewID string, extra map[string]interface{}) BaseEvent {
	data := map[string]interface{}{
		"interview_id": interviewID,
	}
	for k, v := range extra {
		data[k] = v
	}
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
