package exam

import (
	"strings"
	"unicode/utf8"

	"github.com/tsvs/backend/internal/domain/shared"
)

// Category groups questions by subject
type Category struct {
	shared.BaseAggregateRoot
	Title string
}

// TypeSelection describes how a question is answered (single choice, multiple choice, ...)
type TypeSelection struct {
	shared.BaseAggregateRoot
	Title string
}

// NewCategory creates a category
func NewCategory(title string) (*Category, error) {
	title, err := normalizeTitle("Category", title)
	if err != nil {
		return nil, err
	}
	return &Category{BaseAggregateRoot: shared.NewBaseAggregateRoot(), Title: title}, nil
}

// Rename changes the category title
func (c *Category) Rename(title string) error {
	title, err := normalizeTitle("Category", title)
	if err != nil {
		return err
	}
	c.Title = title
	c.Touch()
	c.IncrementVersion()
	return nil
}

// NewTypeSelection creates a type selection
func NewTypeSelection(title string) (*TypeSelection, error) {
	title, err := normalizeTitle("Type selection", title)
	if err != nil {
		return nil, err
	}
	return &TypeSelection{BaseAggregateRoot: shared.NewBaseAggregateRoot(), Title: title}, nil
}

// Rename changes the type selection title
func (t *TypeSelection) Rename(title string) error {
	title, err := normalizeTitle("Type selection", title)
	if err != nil {
		return err
	}
	t.Title = title
	t.Touch()
	t.IncrementVersion()
	return nil
}

func normalizeTitle(field, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", shared.NewDomainError("INVALID_TITLE", field+" title cannot be empty")
	}
	if utf8.RuneCountInString(title) > 255 {
		return "", shared.NewDomainError("INVALID_TITLE", field+" title cannot exceed 255 characters")
	}
	return title, nil
}
