package contract

import (
	"context"

	"bionic-interviewer-be/internal/entity"
	"bionic-interviewer-be/internal/repository/specification"

	"github.com/google/uuid"
)

type EmotionDetectionRepository interface {
	Create(ctx context.Context, detection *entity.EmotionDetection) error
	Update(ctx context.Context, detection *entity.EmotionDetection) error
	DeleteByInterviewId(ctx context.Context, interviewId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.EmotionDetection, error)
}
