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

type EmotionDetectionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EmotionMapper
}

func NewEmotionDetectionRepository(db *gorm.DB) contract.EmotionDetectionRepository {
	return &EmotionDetectionRepositoryImpl{
		db:     db,
		mapper: mapper.NewEmotionMapper(),
	}
}

func (r *EmotionDetectionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *EmotionDetectionRepositoryImpl) Create(ctx context.Context, detection *entity.EmotionDetection) error {
	m := r.mapper.ToModel(detection)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*detection = *r.mapper.ToEntity(m)
	return nil
}

func (r *EmotionDetectionRepositoryImpl) Update(ctx context.Context, detection *entity.EmotionDetection) error {
	m := r.mapper.ToModel(detection)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*detection = *r.mapper.ToEntity(m)
	return nil
}

func (r *EmotionDetectionRepositoryImpl) DeleteByInterviewId(ctx context.Context, interviewId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("interview_id = ?", interviewId).Delete(&model.EmotionDetection{}).Error
}

func (r *EmotionDetectionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.EmotionDetection, error) {
	var m model.EmotionDetection
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
