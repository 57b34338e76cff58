package contract

import (
	"context"

	"bionic-interviewer-be/internal/entity"
	"bionic-interviewer-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TranscriptRepository interface {
	Create(ctx context.Context, transcript *entity.Transcript) error
	Update(ctx context.Context, transcript *entity.Transcript) error
	DeleteByInterviewId(ctx context.Context, interviewId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Transcript, error)
}
