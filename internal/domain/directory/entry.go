package directory

import (
	"strings"
	"unicode/utf8"

	"github.com/tsvs/backend/internal/domain/shared"
)

// Kind names a reference-data dictionary
type Kind string

const (
	KindRegion     Kind = "region"
	KindDepartment Kind = "department"
)

// IsValid reports whether the kind is known
func (k Kind) IsValid() bool {
	return k == KindRegion || k == KindDepartment
}

// Label returns the capitalized kind used in error messages
func (k Kind) Label() string {
	switch k {
	case KindRegion:
		return "Region"
	case KindDepartment:
		return "Department"
	}
	return "Entry"
}

const maxTitleLength = 255

// Entry is a titled reference-data row (a region or a department).
// Titles are unique within a kind.
type Entry struct {
	shared.BaseAggregateRoot
	Kind     Kind
	Title    string
	IsActive bool
}

// NewEntry creates an active entry
func NewEntry(kind Kind, title string) (*Entry, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown directory kind")
	}
	title, err := normalizeTitle(kind, title)
	if err != nil {
		return nil, err
	}

	return &Entry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              kind,
		Title:             title,
		IsActive:          true,
	}, nil
}

// Update replaces the title and the activity flag
func (e *Entry) Update(title string, isActive bool) error {
	title, err := normalizeTitle(e.Kind, title)
	if err != nil {
		return err
	}

	e.Title = title
	e.IsActive = isActive
	e.Touch()
	e.IncrementVersion()
	return nil
}

// Disable clears the activity flag
func (e *Entry) Disable() error {
	if !e.IsActive {
		return shared.NewDomainError("ALREADY_DISABLED", e.Kind.Label()+" is already disabled")
	}

	e.IsActive = false
	e.Touch()
	e.IncrementVersion()
	return nil
}

func normalizeTitle(kind Kind, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", shared.NewDomainError("INVALID_TITLE", kind.Label()+" title cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return "", shared.NewDomainError("INVALID_TITLE", kind.Label()+" title cannot exceed 255 characters")
	}
	return title, nil
}
