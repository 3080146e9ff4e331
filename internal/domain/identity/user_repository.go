package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// Update updates an existing user
	Update(ctx context.Context, user *User) error

	// SoftDelete clears is_active on an active user and returns its ID.
	// Returns shared.ErrNotFound when no active user matched.
	SoftDelete(ctx context.Context, id uuid.UUID) (uuid.UUID, error)

	// FindByID finds a user by ID regardless of activity
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindActiveByID finds an active user by ID
	FindActiveByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAll returns users matching the filter
	FindAll(ctx context.Context, filter UserFilter) ([]*User, error)

	// ExistsByEmail checks if an email already exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Count returns the total number of users
	Count(ctx context.Context) (int64, error)
}

// UserFilter contains filter options for querying users
type UserFilter struct {
	// Search keyword for name, surname or email
	Keyword string

	// Only active users when true
	ActiveOnly bool

	// Pagination, zero means no limit
	Offset int
	Limit  int
}

// NewUserFilter creates a filter that returns every user
func NewUserFilter() UserFilter {
	return UserFilter{}
}

// WithKeyword sets the search keyword
func (f UserFilter) WithKeyword(keyword string) UserFilter {
	f.Keyword = keyword
	return f
}

// OnlyActive restricts the result to active users
func (f UserFilter) OnlyActive() UserFilter {
	f.ActiveOnly = true
	return f
}
