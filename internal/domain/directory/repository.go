package directory

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence for one directory kind
type Repository interface {
	// Kind returns the dictionary served by this repository
	Kind() Kind

	// Create saves a new entry
	Create(ctx context.Context, entry *Entry) error

	// Update updates an existing entry
	Update(ctx context.Context, entry *Entry) error

	// Delete removes an entry permanently
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds an entry by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Entry, error)

	// FindAll returns entries ordered by title, optionally only active ones
	FindAll(ctx context.Context, activeOnly bool) ([]*Entry, error)

	// ExistsByTitle checks whether another entry already uses the title
	ExistsByTitle(ctx context.Context, title string, excludeID uuid.UUID) (bool, error)
}
