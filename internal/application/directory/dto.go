package directory

import (
	"time"

	"github.com/google/uuid"
	"github.com/tsvs/backend/internal/domain/directory"
)

// EntryDTO represents a region or department
type EntryDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateEntryInput contains input for creating an entry
type CreateEntryInput struct {
	Title string `json:"title" binding:"required,min=1,max=255"`
}

// UpdateEntryInput contains input for updating an entry
type UpdateEntryInput struct {
	Title    string `json:"title" binding:"required,min=1,max=255"`
	IsActive *bool  `json:"is_active" binding:"required"`
}

// DisableResult is returned when an entry is disabled
type DisableResult struct {
	IsActive  bool      `json:"is_active"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToEntryDTO converts a domain entry
func ToEntryDTO(e *directory.Entry) EntryDTO {
	return EntryDTO{
		ID:        e.ID,
		Title:     e.Title,
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// ToEntryDTOs converts a slice of domain entries
func ToEntryDTOs(entries []*directory.Entry) []EntryDTO {
	dtos := make([]EntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = ToEntryDTO(e)
	}
	return dtos
}
