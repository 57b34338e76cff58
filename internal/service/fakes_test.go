package service

import (
	"context"
	"time"

	"bionic-interviewer-be/internal/entity"
	"bionic-interviewer-be/internal/repository/contract"
	"bionic-interviewer-be/internal/repository/specification"
	"bionic-interviewer-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// In-memory repository doubles. They interpret the same specifications the
// gorm implementations translate to SQL, so service logic is exercised
// against the real query shapes.

type fakeUow struct {
	interviews *fakeInterviewRepo
	tokens     *fakeTokenRepo
	transcript *fakeTranscriptRepo
	emotions   *fakeEmotionRepo
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		interviews: &fakeInterviewRepo{items: map[uuid.UUID]*entity.Interview{}},
		tokens:     &fakeTokenRepo{},
		transcript: &fakeTranscriptRepo{items: map[uuid.UUID]*entity.Transcript{}},
		emotions:   &fakeEmotionRepo{items: map[uuid.UUID]*entity.EmotionDetection{}},
	}
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) InterviewRepository() contract.InterviewRepository { return u.interviews }
func (u *fakeUow) InterviewTokenRepository() contract.InterviewTokenRepository {
	return u.tokens
}
func (u *fakeUow) TranscriptRepository() contract.TranscriptRepository { return u.transcript }
func (u *fakeUow) EmotionDetectionRepository() contract.EmotionDetectionRepository {
	return u.emotions
}

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

func newFakeFactory() (*fakeFactory, *fakeUow) {
	uow := newFakeUow()
	return &fakeFactory{uow: uow}, uow
}

// Interview repo

type fakeInterviewRepo struct {
	items map[uuid.UUID]*entity.Interview
}

func (r *fakeInterviewRepo) Create(ctx context.Context, i *entity.Interview) error {
	cp := *i
	r.items[i.Id] = &cp
	return nil
}

func (r *fakeInterviewRepo) Update(ctx context.Context, i *entity.Interview) error {
	cp := *i
	r.items[i.Id] = &cp
	return nil
}

func (r *fakeInterviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func matchInterview(i *entity.Interview, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if i.Id != sp.ID {
				return false
			}
		case specification.ByStatus:
			if i.Status != sp.Status {
				return false
			}
		}
	}
	return true
}

func (r *fakeInterviewRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Interview, error) {
	for _, i := range r.items {
		if matchInterview(i, specs) {
			cp := *i
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeInterviewRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Interview, error) {
	var out []*entity.Interview
	for _, i := range r.items {
		if matchInterview(i, specs) {
			cp := *i
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeInterviewRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// Token repo

type fakeTokenRepo struct {
	items []*entity.InterviewToken
}

func (r *fakeTokenRepo) Create(ctx context.Context, t *entity.InterviewToken) error {
	cp := *t
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeTokenRepo) DeleteByInterviewId(ctx context.Context, interviewId uuid.UUID) error {
	kept := r.items[:0]
	for _, t := range r.items {
		if t.InterviewId != interviewId {
			kept = append(kept, t)
		}
	}
	r.items = kept
	return nil
}

func matchToken(t *entity.InterviewToken, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByTokenHash:
			if t.TokenHash != sp.TokenHash {
				return false
			}
		case specification.ByInterviewID:
			if t.InterviewId != sp.InterviewID {
				return false
			}
		case specification.ByRole:
			if t.Role != sp.Role {
				return false
			}
		case specification.TokenNotExpired:
			if !t.ExpiresAt.After(sp.Now) {
				return false
			}
		}
	}
	return true
}

func (r *fakeTokenRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.InterviewToken, error) {
	for _, t := range r.items {
		if matchToken(t, specs) {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTokenRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InterviewToken, error) {
	var out []*entity.InterviewToken
	for _, t := range r.items {
		if matchToken(t, specs) {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Transcript repo

type fakeTranscriptRepo struct {
	items map[uuid.UUID]*entity.Transcript
}

func (r *fakeTranscriptRepo) Create(ctx context.Context, t *entity.Transcript) error {
	cp := *t
	r.items[t.InterviewId] = &cp
	return nil
}

func (r *fakeTranscriptRepo) Update(ctx context.Context, t *entity.Transcript) error {
	cp := *t
	r.items[t.InterviewId] = &cp
	return nil
}

func (r *fakeTranscriptRepo) DeleteByInterviewId(ctx context.Context, interviewId uuid.UUID) error {
	delete(r.items, interviewId)
	return nil
}

func (r *fakeTranscriptRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Transcript, error) {
	for _, t := range r.items {
		ok := true
		for _, s := range specs {
			if sp, is := s.(specification.ByInterviewID); is && t.InterviewId != sp.InterviewID {
				ok = false
			}
		}
		if ok {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

// Emotion repo

type fakeEmotionRepo struct {
	items map[uuid.UUID]*entity.EmotionDetection
}

func (r *fakeEmotionRepo) Create(ctx context.Context, e *entity.EmotionDetection) error {
	cp := *e
	r.items[e.InterviewId] = &cp
	return nil
}

func (r *fakeEmotionRepo) Update(ctx context.Context, e *entity.EmotionDetection) error {
	cp := *e
	r.items[e.InterviewId] = &cp
	return nil
}

func (r *fakeEmotionRepo) DeleteByInterviewId(ctx context.Context, interviewId uuid.UUID) error {
	delete(r.items, interviewId)
	return nil
}

func (r *fakeEmotionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.EmotionDetection, error) {
	for _, e := range r.items {
		ok := true
		for _, s := range specs {
			if sp, is := s.(specification.ByInterviewID); is && e.InterviewId != sp.InterviewID {
				ok = false
			}
		}
		if ok {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

// Publisher double

type fakePublisher struct {
	published [][]byte
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.published = append(p.published, payload)
	return nil
}

func activeInterview(repo *fakeInterviewRepo) uuid.UUID {
	id := uuid.New()
	repo.items[id] = &entity.Interview{
		Id:        id,
		Title:     "Backend Engineer Screen",
		Status:    entity.InterviewStatusActive,
		CreatedAt: time.Now(),
	}
	return id
}
