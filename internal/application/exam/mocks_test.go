package exam

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/tsvs/backend/internal/domain/exam"
)

// MockCategoryRepository is a mock implementation of exam.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *exam.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, c *exam.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*exam.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exam.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]*exam.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*exam.Category), args.Error(1)
}

func (m *MockCategoryRepository) ExistsByTitle(ctx context.Context, title string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, title, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockTypeSelectionRepository is a mock implementation of exam.TypeSelectionRepository
type MockTypeSelectionRepository struct {
	mock.Mock
}

func (m *MockTypeSelectionRepository) Create(ctx context.Context, t *exam.TypeSelection) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTypeSelectionRepository) Update(ctx context.Context, t *exam.TypeSelection) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTypeSelectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTypeSelectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*exam.TypeSelection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exam.TypeSelection), args.Error(1)
}

func (m *MockTypeSelectionRepository) FindAll(ctx context.Context) ([]*exam.TypeSelection, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*exam.TypeSelection), args.Error(1)
}

func (m *MockTypeSelectionRepository) ExistsByTitle(ctx context.Context, title string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, title, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockQuestionRepository is a mock implementation of exam.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(ctx context.Context, q *exam.Question) error {
	return m.Called(ctx, q).Error(0)
}

func (m *MockQuestionRepository) Save(ctx context.Context, q *exam.Question, diff exam.AnswerDiff) error {
	return m.Called(ctx, q, diff).Error(0)
}

func (m *MockQuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockQuestionRepository) FindByID(ctx context.Context, id uuid.UUID) (*exam.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exam.Question), args.Error(1)
}

func (m *MockQuestionRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*exam.Question, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*exam.Question), args.Error(1)
}

func (m *MockQuestionRepository) FindAll(ctx context.Context, filter exam.QuestionFilter) ([]*exam.Question, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*exam.Question), args.Error(1)
}

func (m *MockQuestionRepository) CreateAnswer(ctx context.Context, a *exam.Answer) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockQuestionRepository) UpdateAnswer(ctx context.Context, a *exam.Answer) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockQuestionRepository) DeleteAnswer(ctx context.Context, questionID, answerID uuid.UUID) error {
	return m.Called(ctx, questionID, answerID).Error(0)
}

func (m *MockQuestionRepository) FindAnswer(ctx context.Context, questionID, answerID uuid.UUID) (*exam.Answer, error) {
	args := m.Called(ctx, questionID, answerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exam.Answer), args.Error(1)
}

func (m *MockQuestionRepository) FindAnswers(ctx context.Context, questionID uuid.UUID) ([]*exam.Answer, error) {
	args := m.Called(ctx, questionID)
	return args.Get(0).([]*exam.Answer), args.Error(1)
}
