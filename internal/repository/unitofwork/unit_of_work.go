package unitofwork

import (
	"context"

	"bionic-interviewer-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	InterviewRepository() contract.InterviewRepository
	InterviewTokenRepository() contract.InterviewTokenRepository
	TranscriptRepository() contract.TranscriptRepository
	EmotionDetectionRepository() contract.EmotionDetectionRepository
}
