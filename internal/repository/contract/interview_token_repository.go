package contract

import (
	"context"

	"bionic-interviewer-be/internal/entity"
	"bionic-interviewer-be/internal/repository/specification"

	"github.com/google/uuid"
)

type InterviewTokenRepository interface {
	Create(ctx context.Context, token *entity.InterviewToken) error
	DeleteByInterviewId(ctx context.Context, interviewId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.InterviewToken, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InterviewToken, error)
}
