package exam

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRepository defines persistence for categories
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindAll(ctx context.Context) ([]*Category, error)
	ExistsByTitle(ctx context.Context, title string, excludeID uuid.UUID) (bool, error)
}

// TypeSelectionRepository defines persistence for type selections
type TypeSelectionRepository interface {
	Create(ctx context.Context, t *TypeSelection) error
	Update(ctx context.Context, t *TypeSelection) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*TypeSelection, error)
	FindAll(ctx context.Context) ([]*TypeSelection, error)
	ExistsByTitle(ctx context.Context, title string, excludeID uuid.UUID) (bool, error)
}

// QuestionFilter narrows question listings
type QuestionFilter struct {
	CategoryID      *uuid.UUID
	TypeSelectionID *uuid.UUID
}

// QuestionRepository defines persistence for questions and their answers.
// Create and Save write the question and its answers in one transaction.
type QuestionRepository interface {
	Create(ctx context.Context, q *Question) error

	// Save persists scalar fields and applies the answer diff atomically
	Save(ctx context.Context, q *Question, diff AnswerDiff) error

	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID loads a question with its answers
	FindByID(ctx context.Context, id uuid.UUID) (*Question, error)

	// FindByIDs loads questions with answers, silently skipping unknown IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Question, error)

	FindAll(ctx context.Context, filter QuestionFilter) ([]*Question, error)

	// Answer-level operations

	CreateAnswer(ctx context.Context, a *Answer) error
	UpdateAnswer(ctx context.Context, a *Answer) error
	DeleteAnswer(ctx context.Context, questionID, answerID uuid.UUID) error
	FindAnswer(ctx context.Context, questionID, answerID uuid.UUID) (*Answer, error)
	FindAnswers(ctx context.Context, questionID uuid.UUID) ([]*Answer, error)
}
