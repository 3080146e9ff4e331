package exam

import (
	"strings"

	"github.com/google/uuid"
	"github.com/tsvs/backend/internal/domain/shared"
)

// Answer is one option of a question.
// It belongs to exactly one question.
type Answer struct {
	shared.BaseEntity
	QuestionID uuid.UUID
	Text       string
	IsCorrect  bool
}

// Question is the aggregate root of the question bank
type Question struct {
	shared.BaseAggregateRoot
	Title           string
	CategoryID      uuid.UUID
	TypeSelectionID uuid.UUID
	Answers         []*Answer
}

// AnswerInput is an answer as submitted by a client.
// A nil ID means a new answer.
type AnswerInput struct {
	ID        *uuid.UUID
	Text      string
	IsCorrect bool
}

// AnswerDiff is the outcome of reconciling stored answers with submitted ones
type AnswerDiff struct {
	Added   []*Answer
	Updated []*Answer
	Removed []*Answer
}

// NewQuestion creates a question with its initial answers.
// A non-empty answer set must mark at least one answer correct.
func NewQuestion(title string, categoryID, typeSelectionID uuid.UUID, answers []AnswerInput) (*Question, error) {
	q := &Question{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	if err := q.setFields(title, categoryID, typeSelectionID); err != nil {
		return nil, err
	}
	if err := validateAnswerSet(answers); err != nil {
		return nil, err
	}
	for _, in := range answers {
		a, err := q.NewAnswer(in.Text, in.IsCorrect)
		if err != nil {
			return nil, err
		}
		q.Answers = append(q.Answers, a)
	}
	return q, nil
}

// NewAnswer builds an answer owned by the question without attaching it
func (q *Question) NewAnswer(text string, isCorrect bool) (*Answer, error) {
	text, err := normalizeAnswerText(text)
	if err != nil {
		return nil, err
	}
	return &Answer{
		BaseEntity: shared.NewBaseEntity(),
		QuestionID: q.ID,
		Text:       text,
		IsCorrect:  isCorrect,
	}, nil
}

// Update replaces the scalar fields and reconciles the answers.
// Submitted answers with an ID are updated, those without are added,
// and stored answers absent from the submission are removed.
func (q *Question) Update(title string, categoryID, typeSelectionID uuid.UUID, answers []AnswerInput) (AnswerDiff, error) {
	var diff AnswerDiff
	if err := validateAnswerSet(answers); err != nil {
		return diff, err
	}
	if err := q.setFields(title, categoryID, typeSelectionID); err != nil {
		return diff, err
	}

	stored := make(map[uuid.UUID]*Answer, len(q.Answers))
	for _, a := range q.Answers {
		stored[a.ID] = a
	}

	kept := make(map[uuid.UUID]bool, len(answers))
	next := make([]*Answer, 0, len(answers))
	for _, in := range answers {
		if in.ID == nil {
			a, err := q.NewAnswer(in.Text, in.IsCorrect)
			if err != nil {
				return AnswerDiff{}, err
			}
			diff.Added = append(diff.Added, a)
			next = append(next, a)
			continue
		}

		a, ok := stored[*in.ID]
		if !ok {
			return AnswerDiff{}, shared.NewDomainError("ANSWER_NOT_FOUND", "Answer does not belong to the question")
		}
		text, err := normalizeAnswerText(in.Text)
		if err != nil {
			return AnswerDiff{}, err
		}
		a.Text = text
		a.IsCorrect = in.IsCorrect
		a.Touch()
		kept[a.ID] = true
		diff.Updated = append(diff.Updated, a)
		next = append(next, a)
	}

	for _, a := range q.Answers {
		if !kept[a.ID] {
			diff.Removed = append(diff.Removed, a)
		}
	}

	q.Answers = next
	q.Touch()
	q.IncrementVersion()
	return diff, nil
}

// Edit replaces the text and correctness of a single answer
func (a *Answer) Edit(text string, isCorrect bool) error {
	text, err := normalizeAnswerText(text)
	if err != nil {
		return err
	}
	a.Text = text
	a.IsCorrect = isCorrect
	a.Touch()
	return nil
}

// CorrectAnswerIDs returns the IDs of all correct answers
func (q *Question) CorrectAnswerIDs() map[uuid.UUID]struct{} {
	ids := make(map[uuid.UUID]struct{})
	for _, a := range q.Answers {
		if a.IsCorrect {
			ids[a.ID] = struct{}{}
		}
	}
	return ids
}

// IsAnsweredCorrectly reports whether the selection equals the correct set exactly.
// A question without a correct answer is never answered correctly.
func (q *Question) IsAnsweredCorrectly(selected []uuid.UUID) bool {
	correct := q.CorrectAnswerIDs()
	if len(correct) == 0 {
		return false
	}
	chosen := make(map[uuid.UUID]struct{}, len(selected))
	for _, id := range selected {
		chosen[id] = struct{}{}
	}
	if len(chosen) != len(correct) {
		return false
	}
	for id := range chosen {
		if _, ok := correct[id]; !ok {
			return false
		}
	}
	return true
}

func (q *Question) setFields(title string, categoryID, typeSelectionID uuid.UUID) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Question title cannot be empty")
	}
	if categoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Category is required")
	}
	if typeSelectionID == uuid.Nil {
		return shared.NewDomainError("INVALID_TYPE_SELECTION", "Type selection is required")
	}
	q.Title = title
	q.CategoryID = categoryID
	q.TypeSelectionID = typeSelectionID
	return nil
}

func validateAnswerSet(answers []AnswerInput) error {
	if len(answers) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]struct{}, len(answers))
	hasCorrect := false
	for _, in := range answers {
		if in.ID != nil {
			if _, dup := seen[*in.ID]; dup {
				return shared.NewDomainError("INVALID_ANSWERS", "Answer submitted more than once")
			}
			seen[*in.ID] = struct{}{}
		}
		hasCorrect = hasCorrect || in.IsCorrect
	}
	if !hasCorrect {
		return shared.NewDomainError("INVALID_ANSWERS", "At least one answer must be correct")
	}
	return nil
}

func normalizeAnswerText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", shared.NewDomainError("INVALID_ANSWER", "Answer text cannot be empty")
	}
	return text, nil
}
