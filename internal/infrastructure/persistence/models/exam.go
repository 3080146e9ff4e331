package models

import (
	"github.com/google/uuid"

	"github.com/tsvs/backend/internal/domain/exam"
)

// CategoryModel maps exam_categories
type CategoryModel struct {
	AggregateModel
	Title string `gorm:"type:varchar(255);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "exam_categories"
}

// ToDomain converts the model to a domain Category
func (m *CategoryModel) ToDomain() *exam.Category {
	return &exam.Category{BaseAggregateRoot: m.ToAggregateRoot(), Title: m.Title}
}

// CategoryModelFromDomain creates a model from a domain Category
func CategoryModelFromDomain(c *exam.Category) *CategoryModel {
	m := &CategoryModel{Title: c.Title}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}

// TypeSelectionModel maps exam_type_selections
type TypeSelectionModel struct {
	AggregateModel
	Title string `gorm:"type:varchar(255);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (TypeSelectionModel) TableName() string {
	return "exam_type_selections"
}

// ToDomain converts the model to a domain TypeSelection
func (m *TypeSelectionModel) ToDomain() *exam.TypeSelection {
	return &exam.TypeSelection{BaseAggregateRoot: m.ToAggregateRoot(), Title: m.Title}
}

// TypeSelectionModelFromDomain creates a model from a domain TypeSelection
func TypeSelectionModelFromDomain(t *exam.TypeSelection) *TypeSelectionModel {
	m := &TypeSelectionModel{Title: t.Title}
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	return m
}

// QuestionModel maps exam_questions
type QuestionModel struct {
	AggregateModel
	Title           string        `gorm:"type:text;not null"`
	CategoryID      uuid.UUID     `gorm:"type:uuid;not null;index"`
	TypeSelectionID uuid.UUID     `gorm:"type:uuid;not null;index"`
	Answers         []AnswerModel `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`

	Category      *CategoryModel      `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	TypeSelection *TypeSelectionModel `gorm:"foreignKey:TypeSelectionID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (QuestionModel) TableName() string {
	return "exam_questions"
}

// ToDomain converts the model and its loaded answers to a domain Question
func (m *QuestionModel) ToDomain() *exam.Question {
	q := &exam.Question{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Title:             m.Title,
		CategoryID:        m.CategoryID,
		TypeSelectionID:   m.TypeSelectionID,
		Answers:           make([]*exam.Answer, 0, len(m.Answers)),
	}
	for i := range m.Answers {
		q.Answers = append(q.Answers, m.Answers[i].ToDomain())
	}
	return q
}

// QuestionModelFromDomain creates a model from a domain Question without its answers
func QuestionModelFromDomain(q *exam.Question) *QuestionModel {
	m := &QuestionModel{
		Title:           q.Title,
		CategoryID:      q.CategoryID,
		TypeSelectionID: q.TypeSelectionID,
	}
	m.FromDomainAggregateRoot(q.BaseAggregateRoot)
	return m
}

// AnswerModel maps exam_answers
type AnswerModel struct {
	BaseModel
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index"`
	Text       string    `gorm:"type:text;not null"`
	IsCorrect  bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (AnswerModel) TableName() string {
	return "exam_answers"
}

// ToDomain converts the model to a domain Answer
func (m *AnswerModel) ToDomain() *exam.Answer {
	return &exam.Answer{
		BaseEntity: m.BaseModel.ToDomain(),
		QuestionID: m.QuestionID,
		Text:       m.Text,
		IsCorrect:  m.IsCorrect,
	}
}

// AnswerModelFromDomain creates a model from a domain Answer
func AnswerModelFromDomain(a *exam.Answer) *AnswerModel {
	m := &AnswerModel{QuestionID: a.QuestionID, Text: a.Text, IsCorrect: a.IsCorrect}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}
