package chat

import (
	"context"
	"fmt"

	"github.com/tsvs/backend/internal/domain/chat"
	"github.com/tsvs/backend/internal/domain/shared"
	"github.com/tsvs/backend/internal/infrastructure/realtime"
	"go.uber.org/zap"
)

// BroadcastHandler forwards message events to every WebSocket subscriber
type BroadcastHandler struct {
	hub    *realtime.Hub
	logger *zap.Logger
}

// NewBroadcastHandler creates a new broadcast handler
func NewBroadcastHandler(hub *realtime.Hub, logger *zap.Logger) *BroadcastHandler {
	return &BroadcastHandler{hub: hub, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *BroadcastHandler) EventTypes() []string {
	return []string{
		chat.EventTypeMessageCreated,
		chat.EventTypeMessageUpdated,
		chat.EventTypeMessageDeleted,
	}
}

// Handle publishes the message snapshot to the hub
func (h *BroadcastHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	msgEvent, ok := event.(*chat.MessageEvent)
	if !ok {
		h.logger.Error("unexpected event type", zap.String("actual", event.EventType()))
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	h.hub.Publish(realtime.NewEvent(msgEvent.EventType(), messagePayload{
		ID:         msgEvent.AggregateID().String(),
		ChatID:     msgEvent.ChatID.String(),
		SenderID:   msgEvent.SenderID.String(),
		ReceiverID: msgEvent.ReceiverID.String(),
		Content:    msgEvent.Content,
		FileURL:    msgEvent.FileURL,
	}))

	h.logger.Debug("chat event broadcast",
		zap.String("event_type", msgEvent.EventType()),
		zap.Int("subscribers", h.hub.Subscribers()))
	return nil
}

type messagePayload struct {
	ID         string `json:"id"`
	ChatID     string `json:"chat_id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
	FileURL    string `json:"file_url,omitempty"`
}

var _ shared.EventHandler = (*BroadcastHandler)(nil)
