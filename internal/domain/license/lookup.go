package license

import (
	"strings"
	"unicode/utf8"

	"github.com/tsvs/backend/internal/domain/shared"
)

// LookupKind names a license lookup table
type LookupKind string

const (
	LookupRegion   LookupKind = "license_region"
	LookupQuantity LookupKind = "school_quantity"
)

// Label returns the human name used in error messages
func (k LookupKind) Label() string {
	if k == LookupQuantity {
		return "Quantity"
	}
	return "Region"
}

// Lookup is a named, soft-deletable row referenced by licenses:
// a license region or a school-quantity bucket.
type Lookup struct {
	shared.BaseAggregateRoot
	Kind     LookupKind
	Name     string
	IsActive bool
}

// NewLookup creates an active lookup row
func NewLookup(kind LookupKind, name string) (*Lookup, error) {
	name, err := normalizeLookupName(kind, name)
	if err != nil {
		return nil, err
	}
	return &Lookup{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              kind,
		Name:              name,
		IsActive:          true,
	}, nil
}

// Update replaces the name and activity flag
func (l *Lookup) Update(name string, isActive bool) error {
	name, err := normalizeLookupName(l.Kind, name)
	if err != nil {
		return err
	}
	l.Name = name
	l.IsActive = isActive
	l.Touch()
	l.IncrementVersion()
	return nil
}

// Deactivate soft deletes the row
func (l *Lookup) Deactivate() {
	l.IsActive = false
	l.Touch()
	l.IncrementVersion()
}

func normalizeLookupName(kind LookupKind, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", shared.NewDomainError("INVALID_NAME", kind.Label()+" name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 255 {
		return "", shared.NewDomainError("INVALID_NAME", kind.Label()+" name cannot exceed 255 characters")
	}
	return name, nil
}
