package exam

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tsvs/backend/internal/domain/exam"
)

// TitleInput is the body of category and type selection writes
type TitleInput struct {
	Title string `json:"title" binding:"required,min=1,max=255"`
}

// CategoryDTO represents a question category
type CategoryDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TypeSelectionDTO represents a question type selection
type TypeSelectionDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AnswerInput is an answer inside a question write.
// Omit ID to add a new answer.
type AnswerInput struct {
	ID        *uuid.UUID `json:"id,omitempty"`
	Text      string     `json:"text" binding:"required"`
	IsCorrect bool       `json:"is_correct"`
}

// QuestionInput is the body of question create and update
type QuestionInput struct {
	Title           string        `json:"title" binding:"required"`
	CategoryID      uuid.UUID     `json:"category_id" binding:"required"`
	TypeSelectionID uuid.UUID     `json:"type_selection_id" binding:"required"`
	Answers         []AnswerInput `json:"answers" binding:"dive"`
}

func (in QuestionInput) answers() []exam.AnswerInput {
	out := make([]exam.AnswerInput, len(in.Answers))
	for i, a := range in.Answers {
		out[i] = exam.AnswerInput{ID: a.ID, Text: a.Text, IsCorrect: a.IsCorrect}
	}
	return out
}

// SingleAnswerInput is the body of the per-answer routes
type SingleAnswerInput struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

// AnswerDTO represents an answer
type AnswerDTO struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"question_id"`
	Text       string    `json:"text"`
	IsCorrect  bool      `json:"is_correct"`
}

// QuestionDTO represents a question with its answers
type QuestionDTO struct {
	ID              uuid.UUID   `json:"id"`
	Title           string      `json:"title"`
	CategoryID      uuid.UUID   `json:"category_id"`
	TypeSelectionID uuid.UUID   `json:"type_selection_id"`
	Answers         []AnswerDTO `json:"answers"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// QuestionListFilter narrows question lists
type QuestionListFilter struct {
	CategoryID      *uuid.UUID
	TypeSelectionID *uuid.UUID
}

// CheckInput maps question IDs to the selected answer IDs
type CheckInput map[uuid.UUID][]uuid.UUID

// CheckResult summarizes a graded attempt
type CheckResult struct {
	Total   int             `json:"total"`
	Correct int             `json:"correct"`
	Score   decimal.Decimal `json:"score"`
}

func toCategoryDTO(c *exam.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, Title: c.Title, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func toTypeSelectionDTO(t *exam.TypeSelection) TypeSelectionDTO {
	return TypeSelectionDTO{ID: t.ID, Title: t.Title, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt}
}

func toAnswerDTO(a *exam.Answer) AnswerDTO {
	return AnswerDTO{ID: a.ID, QuestionID: a.QuestionID, Text: a.Text, IsCorrect: a.IsCorrect}
}

func toAnswerDTOs(answers []*exam.Answer) []AnswerDTO {
	dtos := make([]AnswerDTO, len(answers))
	for i, a := range answers {
		dtos[i] = toAnswerDTO(a)
	}
	return dtos
}

// ToQuestionDTO converts a domain question
func ToQuestionDTO(q *exam.Question) QuestionDTO {
	return QuestionDTO{
		ID:              q.ID,
		Title:           q.Title,
		CategoryID:      q.CategoryID,
		TypeSelectionID: q.TypeSelectionID,
		Answers:         toAnswerDTOs(q.Answers),
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}
