package mapper

import (
	"encoding/json"
	"time"

	"bionic-interviewer-be/internal/entity"
	"bionic-interviewer-be/internal/model"

	"gorm.io/datatypes"
)

type TranscriptMapper struct{}

func NewTranscriptMapper() *TranscriptMapper {
	return &TranscriptMapper{}
}

func (m *TranscriptMapper) ToEntity(t *model.Transcript) *entity.Transcript {
	if t == nil {
		return nil
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		u := t.UpdatedAt
		updatedAt = &u
	}

	return &entity.Transcript{
		Id:              t.Id,
		InterviewId:     t.InterviewId,
		TranscriptData:  json.RawMessage(t.TranscriptData),
		TranscriptText:  t.TranscriptText,
		StartedAt:       t.StartedAt,
		EndedAt:         t.EndedAt,
		DurationSeconds: t.DurationSeconds,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *TranscriptMapper) ToModel(t *entity.Transcript) *model.Transcript {
	if t == nil {
		return nil
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	return &model.Transcript{
		Id:              t.Id,
		InterviewId:     t.InterviewId,
		TranscriptData:  datatypes.JSON(t.TranscriptData),
		TranscriptText:  t.TranscriptText,
		StartedAt:       t.StartedAt,
		EndedAt:         t.EndedAt,
		DurationSeconds: t.DurationSeconds,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}
