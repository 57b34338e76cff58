package implementation

import (
	"context"
	"errors"

	"bionic-interviewer-be/internal/entity"
	"bionic-interviewer-be/internal/mapper"
	"bionic-interviewer-be/internal/model"
	"bionic-interviewer-be/internal/repository/contract"
	"bionic-interviewer-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InterviewTokenRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InterviewTokenMapper
}

func NewInterviewTokenRepository(db *gorm.DB) contract.InterviewTokenRepository {
	return &InterviewTokenRepositoryImpl{
		db:     db,
		mapper: mapper.NewInterviewTokenMapper(),
	}
}

func (r *InterviewTokenRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *InterviewTokenRepositoryImpl) Create(ctx context.Context, token *entity.InterviewToken) error {
	m := r.mapper.ToModel(token)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*token = *r.mapper.ToEntity(m)
	return nil
}

func (r *InterviewTokenRepositoryImpl) DeleteByInterviewId(ctx context.Context, interviewId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("interview_id = ?", interviewId).Delete(&model.InterviewToken{}).Error
}

func (r *InterviewTokenRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.InterviewToken, error) {
	var m model.InterviewToken
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *InterviewTokenRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InterviewToken, error) {
	var models []*model.InterviewToken
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
