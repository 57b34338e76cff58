package mapper

import (
	"encoding/json"
	"time"

	"bionic-interviewer-be/internal/entity"
	"bionic-interviewer-be/internal/model"

	"gorm.io/datatypes"
)

type EmotionMapper struct{}

func NewEmotionMapper() *EmotionMapper {
	return &EmotionMapper{}
}

func (m *EmotionMapper) ToEntity(e *model.EmotionDetection) *entity.EmotionDetection {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		u := e.UpdatedAt
		updatedAt = &u
	}

	return &entity.EmotionDetection{
		Id:              e.Id,
		InterviewId:     e.InterviewId,
		EmotionData:     json.RawMessage(e.EmotionData),
		StartedAt:       e.StartedAt,
		EndedAt:         e.EndedAt,
		DurationSeconds: e.DurationSeconds,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *EmotionMapper) ToModel(e *entity.EmotionDetection) *model.EmotionDetection {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.EmotionDetection{
		Id:              e.Id,
		InterviewId:     e.InterviewId,
		EmotionData:     datatypes.JSON(e.EmotionData),
		StartedAt:       e.StartedAt,
		EndedAt:         e.EndedAt,
		DurationSeconds: e.DurationSeconds,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}
