package identity

import (
	"github.com/google/uuid"
	"github.com/tsvs/backend/internal/domain/shared"
)

// Aggregate type constant for User
const AggregateTypeUser = "User"

// User domain event types
const (
	EventTypeUserCreated       = "UserCreated"
	EventTypeUserUpdated       = "UserUpdated"
	EventTypeUserDeleted       = "UserDeleted"
	EventTypeUserDeactivated   = "UserDeactivated"
	EventTypeUserPasswordReset = "UserPasswordReset"
	EventTypeUserAdminGranted  = "UserAdminGranted"
	EventTypeUserAdminRevoked  = "UserAdminRevoked"
)

// UserEvent is the common payload of every user event.
// It carries enough of the user to write a history row without reloading it.
type UserEvent struct {
	shared.BaseDomainEvent
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	Roles    []string `json:"roles,omitempty"`
}

func newUserEvent(eventType string, user *User, actorID uuid.UUID) *UserEvent {
	return &UserEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeUser, user.ID, actorID),
		Email:           user.Email,
		FullName:        user.FullName(),
		Roles:           user.Roles.Strings(),
	}
}

// NewUserCreatedEvent creates a UserCreated event
func NewUserCreatedEvent(user *User, actorID uuid.UUID) *UserEvent {
	return newUserEvent(EventTypeUserCreated, user, actorID)
}

// NewUserUpdatedEvent creates a UserUpdated event
func NewUserUpdatedEvent(user *User, actorID uuid.UUID) *UserEvent {
	return newUserEvent(EventTypeUserUpdated, user, actorID)
}

// NewUserDeletedEvent creates a UserDeleted event
func NewUserDeletedEvent(user *User, actorID uuid.UUID) *UserEvent {
	return newUserEvent(EventTypeUserDeleted, user, actorID)
}

// NewUserDeactivatedEvent creates a UserDeactivated event
func NewUserDeactivatedEvent(user *User, actorID uuid.UUID) *UserEvent {
	return newUserEvent(EventTypeUserDeactivated, user, actorID)
}

// NewUserPasswordResetEvent creates a UserPasswordReset event
func NewUserPasswordResetEvent(user *User, actorID uuid.UUID) *UserEvent {
	return newUserEvent(EventTypeUserPasswordReset, user, actorID)
}

// NewUserRolesChangedEvent creates an admin grant or revoke event
func NewUserRolesChangedEvent(user *User, actorID uuid.UUID, eventType string) *UserEvent {
	return newUserEvent(eventType, user, actorID)
}

// UserEventTypes lists every event type emitted by the User aggregate
func UserEventTypes() []string {
	return []string{
		EventTypeUserCreated,
		EventTypeUserUpdated,
		EventTypeUserDeleted,
		EventTypeUserDeactivated,
		EventTypeUserPasswordReset,
		EventTypeUserAdminGranted,
		EventTypeUserAdminRevoked,
	}
}
