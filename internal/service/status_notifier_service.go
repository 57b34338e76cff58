// FILE: internal/service/status_notifier_service.go
package service

import (
	"context"
	"strings"
	"time"

	"bionic-interviewer-be/internal/dto"
	"bionic-interviewer-be/internal/entity"
	"bionic-interviewer-be/internal/pkg/logger"
	"bionic-interviewer-be/pkg/events"
	pktNats "bionic-interviewer-be/pkg/nats"

	"github.com/google/uuid"
)

// StatusDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type StatusDelivery interface {
	Send(interviewID uuid.UUID, update dto.StatusUpdateMessage)
}

// StatusNotifierService bridges the NATS event bus to the websocket hub so
// the briefing UI sees save and completion events live.
type StatusNotifierService struct {
	subscriber *pktNats.Subscriber
	delivery   StatusDelivery
	logger     logger.ILogger
}

func NewStatusNotifierService(sub *pktNats.Subscriber, delivery StatusDelivery, log logger.ILogger) *StatusNotifierService {
	return &StatusNotifierService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *StatusNotifierService) Start() {
	err := s.subscriber.Subscribe("interview.>", "status-notifier-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("StatusNotifier", "Failed to start status subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("StatusNotifier", "Status notifier started, listening to interview.>", nil)
}

func (s *StatusNotifierService) handleEvent(ctx context.Context, event events.Event) error {
	// NATS subject includes the stream prefix
	typeCode := strings.TrimPrefix(event.EventType(), "interview.")

	payload := event.Payload()
	idStr, _ := payload["interview_id"].(string)
	interviewID, err := uuid.Parse(idStr)
	if err != nil {
		s.logger.Warn("StatusNotifier", "Event without a valid interview_id", map[string]interface{}{"type": typeCode})
		return nil
	}

	update := dto.StatusUpdateMessage{
		InterviewId: interviewID,
		Status:      statusForEvent(typeCode),
		Event:       typeCode,
		OccurredAt:  time.Now(),
	}

	if s.delivery != nil {
		s.delivery.Send(interviewID, update)
	}
	return nil
}

func statusForEvent(typeCode string) string {
	switch typeCode {
	case events.EventInterviewCreated:
		return entity.InterviewStatusCreated
	case events.EventInterviewCompleted:
		return entity.InterviewStatusCompleted
	case events.EventTranscriptSaved, events.EventEmotionsSaved:
		return entity.InterviewStatusActive
	default:
		return ""
	}
}
