package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// HistoryAction is the kind of change recorded in the action history
type HistoryAction string

const (
	ActionCreate HistoryAction = "create"
	ActionEdit   HistoryAction = "edit"
	ActionDelete HistoryAction = "delete"
)

// ActionHistory is an append-only audit row describing a change to a user account
type ActionHistory struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ActorID   *uuid.UUID
	Name      string
	Action    HistoryAction
	Details   string
	Timestamp time.Time
}

// ActionForEvent maps a user event type to the history action it represents
func ActionForEvent(eventType string) (HistoryAction, bool) {
	switch eventType {
	case EventTypeUserCreated:
		return ActionCreate, true
	case EventTypeUserUpdated, EventTypeUserPasswordReset, EventTypeUserAdminGranted, EventTypeUserAdminRevoked:
		return ActionEdit, true
	case EventTypeUserDeleted, EventTypeUserDeactivated:
		return ActionDelete, true
	}
	return "", false
}

// ActionHistoryRepository persists audit rows
type ActionHistoryRepository interface {
	// Append stores a new history row
	Append(ctx context.Context, entry *ActionHistory) error

	// FindByUserID returns the history of a user, newest first
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*ActionHistory, error)
}
