// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"bionic-interviewer-be/internal/dto"
	"bionic-interviewer-be/internal/entity"
	"bionic-interviewer-be/internal/repository/specification"
	"bionic-interviewer-be/internal/repository/unitofwork"
	"bionic-interviewer-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.InterviewEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing %s for interview %s", payload.Type, payload.InterviewId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	interview, err := uow.InterviewRepository().FindOne(ctx, specification.ByID{ID: payload.InterviewId})
	if err != nil {
		log.Printf("[ERROR] Failed to get interview %s: %v", payload.InterviewId, err)
		msg.Nack()
		return
	}
	if interview == nil {
		log.Printf("[ERROR] Interview not found: %s", payload.InterviewId)
		msg.Ack() // Interview deleted? Ack.
		return
	}

	// Status transitions driven by the pipeline:
	// a first saved artifact flips a created interview to active, a saved
	// transcript with an end time means the call finished.
	next := interview.Status
	switch payload.Type {
	case events.EventTranscriptSaved:
		transcript, err := uow.TranscriptRepository().FindOne(ctx,
			specification.ByInterviewID{InterviewID: payload.InterviewId},
		)
		if err != nil {
			log.Printf("[ERROR] Failed to get transcript for %s: %v", payload.InterviewId, err)
			msg.Nack()
			return
		}
		if transcript != nil && transcript.EndedAt != nil {
			next = entity.InterviewStatusCompleted
		} else if interview.Status == entity.InterviewStatusCreated {
			next = entity.InterviewStatusActive
		}
	case events.EventEmotionsSaved:
		if interview.Status == entity.InterviewStatusCreated {
			next = entity.InterviewStatusActive
		}
	default:
		msg.Ack()
		return
	}

	if next != interview.Status {
		now := time.Now()
		interview.Status = next
		interview.UpdatedAt = &now
		if err := uow.InterviewRepository().Update(ctx, interview); err != nil {
			log.Printf("[ERROR] Failed to update interview status: %v", err)
			msg.Nack()
			return
		}
		log.Printf("[INFO] Interview %s moved to %s", payload.InterviewId, next)
	}

	msg.Ack()
}
