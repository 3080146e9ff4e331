package exam

import (
	"context"

	"github.com/google/uuid"
	"github.com/tsvs/backend/internal/domain/exam"
	"github.com/tsvs/backend/internal/domain/shared"
	"github.com/tsvs/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// QuestionService manages the question bank
type QuestionService struct {
	questionRepo exam.QuestionRepository
	categoryRepo exam.CategoryRepository
	typeRepo     exam.TypeSelectionRepository
	logger       *zap.Logger
}

// NewQuestionService creates a new question service
func NewQuestionService(
	questionRepo exam.QuestionRepository,
	categoryRepo exam.CategoryRepository,
	typeRepo exam.TypeSelectionRepository,
	logger *zap.Logger,
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
		typeRepo:     typeRepo,
		logger:       logger,
	}
}

// Create adds a question with its answers in one transaction
func (s *QuestionService) Create(ctx context.Context, input QuestionInput) (*QuestionDTO, error) {
	if err := s.checkReferences(ctx, input.CategoryID, input.TypeSelectionID); err != nil {
		return nil, err
	}

	question, err := exam.NewQuestion(input.Title, input.CategoryID, input.TypeSelectionID, input.answers())
	if err != nil {
		return nil, err
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, mapError(err, "Question", "Failed to create question", s.logger)
	}

	s.logger.Info("Question created",
		zap.String("question_id", question.ID.String()),
		zap.Int("answers", len(question.Answers)))
	dto := ToQuestionDTO(question)
	return &dto, nil
}

// List returns questions, optionally narrowed by category and type selection
func (s *QuestionService) List(ctx context.Context, filter QuestionListFilter) ([]QuestionDTO, error) {
	questions, err := s.questionRepo.FindAll(ctx, exam.QuestionFilter{
		CategoryID:      filter.CategoryID,
		TypeSelectionID: filter.TypeSelectionID,
	})
	if err != nil {
		return nil, mapError(err, "Question", "Failed to list questions", s.logger)
	}
	if len(questions) == 0 {
		return nil, shared.NewDomainError("NOT_FOUND", "No questions found")
	}
	dtos := make([]QuestionDTO, len(questions))
	for i, q := range questions {
		dtos[i] = ToQuestionDTO(q)
	}
	return dtos, nil
}

// GetByID returns a question with its answers
func (s *QuestionService) GetByID(ctx context.Context, id uuid.UUID) (*QuestionDTO, error) {
	question, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToQuestionDTO(question)
	return &dto, nil
}

// Update replaces the question fields and reconciles its answers
func (s *QuestionService) Update(ctx context.Context, id uuid.UUID, input QuestionInput) (*QuestionDTO, error) {
	question, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, input.CategoryID, input.TypeSelectionID); err != nil {
		return nil, err
	}

	diff, err := question.Update(input.Title, input.CategoryID, input.TypeSelectionID, input.answers())
	if err != nil {
		return nil, err
	}
	if err := s.questionRepo.Save(ctx, question, diff); err != nil {
		return nil, mapError(err, "Question", "Failed to update question", s.logger)
	}

	s.logger.Info("Question updated",
		zap.String("question_id", question.ID.String()),
		zap.Int("added", len(diff.Added)),
		zap.Int("updated", len(diff.Updated)),
		zap.Int("removed", len(diff.Removed)))
	dto := ToQuestionDTO(question)
	return &dto, nil
}

// Delete removes a question and its answers
func (s *QuestionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return mapError(err, "Question", "Failed to delete question", s.logger)
	}
	s.logger.Info("Question deleted", zap.String("question_id", id.String()))
	return nil
}

// CreateAnswer adds a single answer to a question
func (s *QuestionService) CreateAnswer(ctx context.Context, questionID uuid.UUID, input SingleAnswerInput) (*AnswerDTO, error) {
	question, err := s.find(ctx, questionID)
	if err != nil {
		return nil, err
	}
	answer, err := question.NewAnswer(input.Text, input.IsCorrect)
	if err != nil {
		return nil, err
	}
	if err := s.questionRepo.CreateAnswer(ctx, answer); err != nil {
		return nil, mapError(err, "Answer", "Failed to create answer", s.logger)
	}
	dto := toAnswerDTO(answer)
	return &dto, nil
}

// ListAnswers returns the answers of a question
func (s *QuestionService) ListAnswers(ctx context.Context, questionID uuid.UUID) ([]AnswerDTO, error) {
	if _, err := s.find(ctx, questionID); err != nil {
		return nil, err
	}
	answers, err := s.questionRepo.FindAnswers(ctx, questionID)
	if err != nil {
		return nil, mapError(err, "Answer", "Failed to list answers", s.logger)
	}
	return toAnswerDTOs(answers), nil
}

// UpdateAnswer edits a single answer of a question
func (s *QuestionService) UpdateAnswer(ctx context.Context, questionID, answerID uuid.UUID, input SingleAnswerInput) (*AnswerDTO, error) {
	answer, err := s.questionRepo.FindAnswer(ctx, questionID, answerID)
	if err != nil {
		return nil, mapError(err, "Answer", "Failed to load answer", s.logger)
	}
	if err := answer.Edit(input.Text, input.IsCorrect); err != nil {
		return nil, err
	}
	if err := s.questionRepo.UpdateAnswer(ctx, answer); err != nil {
		return nil, mapError(err, "Answer", "Failed to update answer", s.logger)
	}
	dto := toAnswerDTO(answer)
	return &dto, nil
}

// DeleteAnswer removes a single answer of a question
func (s *QuestionService) DeleteAnswer(ctx context.Context, questionID, answerID uuid.UUID) error {
	if err := s.questionRepo.DeleteAnswer(ctx, questionID, answerID); err != nil {
		return mapError(err, "Answer", "Failed to delete answer", s.logger)
	}
	return nil
}

// Check grades a set of selections.
// A question counts as correct only when the selected answers equal its correct set.
func (s *QuestionService) Check(ctx context.Context, input CheckInput) (result *CheckResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "exam", "check",
		attribute.Int("exam.questions", len(input)))
	defer func() { telemetry.EndSpan(span, err) }()

	if len(input) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "At least one question must be answered")
	}

	ids := make([]uuid.UUID, 0, len(input))
	for id := range input {
		ids = append(ids, id)
	}
	questions, err := s.questionRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, mapError(err, "Question", "Failed to load questions", s.logger)
	}
	if len(questions) != len(ids) {
		return nil, shared.NewDomainError("NOT_FOUND", "Question not found")
	}

	graded := exam.Check(questions, input)
	span.SetAttributes(attribute.Int("exam.correct", graded.Correct))
	return &CheckResult{
		Total:   graded.Total,
		Correct: graded.Correct,
		Score:   graded.Score,
	}, nil
}

func (s *QuestionService) find(ctx context.Context, id uuid.UUID) (*exam.Question, error) {
	question, err := s.questionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapError(err, "Question", "Failed to load question", s.logger)
	}
	return question, nil
}

func (s *QuestionService) checkReferences(ctx context.Context, categoryID, typeSelectionID uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		return mapError(err, "Category", "Failed to load category", s.logger)
	}
	if _, err := s.typeRepo.FindByID(ctx, typeSelectionID); err != nil {
		return mapError(err, "Type selection", "Failed to load type selection", s.logger)
	}
	return nil
}
