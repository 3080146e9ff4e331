package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tsvs/backend/internal/domain/identity"
	"github.com/tsvs/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// HistoryRecorder appends a UserActionHistory row for every user event
type HistoryRecorder struct {
	historyRepo identity.ActionHistoryRepository
	logger      *zap.Logger
}

// NewHistoryRecorder creates a new history recorder
func NewHistoryRecorder(historyRepo identity.ActionHistoryRepository, logger *zap.Logger) *HistoryRecorder {
	return &HistoryRecorder{
		historyRepo: historyRepo,
		logger:      logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *HistoryRecorder) EventTypes() []string {
	return identity.UserEventTypes()
}

// Handle records the event
func (h *HistoryRecorder) Handle(ctx context.Context, event shared.DomainEvent) error {
	userEvent, ok := event.(*identity.UserEvent)
	if !ok {
		h.logger.Error("unexpected event type", zap.String("actual", event.EventType()))
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	action, ok := identity.ActionForEvent(userEvent.EventType())
	if !ok {
		return nil
	}

	var actorID *uuid.UUID
	if id := userEvent.ActorID(); id != uuid.Nil {
		actorID = &id
	}

	entry := &identity.ActionHistory{
		ID:        uuid.New(),
		UserID:    userEvent.AggregateID(),
		ActorID:   actorID,
		Name:      userEvent.FullName,
		Action:    action,
		Details:   userEvent.EventType(),
		Timestamp: userEvent.OccurredAt(),
	}
	if err := h.historyRepo.Append(ctx, entry); err != nil {
		h.logger.Error("Failed to append user history",
			zap.String("user_id", entry.UserID.String()),
			zap.String("event_type", userEvent.EventType()),
			zap.Error(err))
		return err
	}
	return nil
}

var _ shared.EventHandler = (*HistoryRecorder)(nil)
