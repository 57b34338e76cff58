package mapper

import (
	"bionic-interviewer-be/internal/entity"
	"bionic-interviewer-be/internal/model"
)

type InterviewTokenMapper struct{}

func NewInterviewTokenMapper() *InterviewTokenMapper {
	return &InterviewTokenMapper{}
}

func (m *InterviewTokenMapper) ToEntity(t *model.InterviewToken) *entity.InterviewToken {
	if t == nil {
		return nil
	}
	return &entity.InterviewToken{
		Id:          t.Id,
		InterviewId: t.InterviewId,
		Role:        t.Role,
		TokenHash:   t.TokenHash,
		ExpiresAt:   t.ExpiresAt,
		CreatedAt:   t.CreatedAt,
	}
}

func (m *InterviewTokenMapper) ToModel(t *entity.InterviewToken) *model.InterviewToken {
	if t == nil {
		return nil
	}
	return &model.InterviewToken{
		Id:          t.Id,
		InterviewId: t.InterviewId,
		Role:        t.Role,
		TokenHash:   t.TokenHash,
		ExpiresAt:   t.ExpiresAt,
		CreatedAt:   t.CreatedAt,
	}
}

func (m *InterviewTokenMapper) ToEntities(tokens []*model.InterviewToken) []*entity.InterviewToken {
	entities := make([]*entity.InterviewToken, len(tokens))
	for i, t := range tokens {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
