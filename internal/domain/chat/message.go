package chat

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/tsvs/backend/internal/domain/shared"
)

// Aggregate type constant for Message
const AggregateTypeMessage = "ChatMessage"

// Message domain event types
const (
	EventTypeMessageCreated = "chat.message.created"
	EventTypeMessageUpdated = "chat.message.updated"
	EventTypeMessageDeleted = "chat.message.deleted"
)

const maxContentLength = 4000

// Message is a chat message sent from one user to another
type Message struct {
	shared.BaseAggregateRoot
	ChatID     uuid.UUID
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	Content    string
	FileURL    string
}

// NewMessage creates a message. A message needs text, a file, or both.
func NewMessage(chatID, senderID, receiverID uuid.UUID, content, fileURL string) (*Message, error) {
	if receiverID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECEIVER", "Receiver is required")
	}
	content = strings.TrimSpace(content)
	fileURL = strings.TrimSpace(fileURL)
	if err := validateContent(content, fileURL); err != nil {
		return nil, err
	}

	m := &Message{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ChatID:            chatID,
		SenderID:          senderID,
		ReceiverID:        receiverID,
		Content:           content,
		FileURL:           fileURL,
	}
	m.AddDomainEvent(NewMessageEvent(EventTypeMessageCreated, m, senderID))
	return m, nil
}

// Edit replaces the content. Only the sender may edit.
func (m *Message) Edit(content string, actorID uuid.UUID) error {
	if actorID != m.SenderID {
		return shared.NewDomainError("NOT_SENDER", "Only the sender can edit the message")
	}
	content = strings.TrimSpace(content)
	if err := validateContent(content, m.FileURL); err != nil {
		return err
	}

	m.Content = content
	m.Touch()
	m.IncrementVersion()
	m.AddDomainEvent(NewMessageEvent(EventTypeMessageUpdated, m, actorID))
	return nil
}

// MarkDeleted checks the actor and records the deletion event
func (m *Message) MarkDeleted(actorID uuid.UUID) error {
	if actorID != m.SenderID {
		return shared.NewDomainError("NOT_SENDER", "Only the sender can delete the message")
	}
	m.AddDomainEvent(NewMessageEvent(EventTypeMessageDeleted, m, actorID))
	return nil
}

func validateContent(content, fileURL string) error {
	if content == "" && fileURL == "" {
		return shared.NewDomainError("INVALID_CONTENT", "Message content cannot be empty")
	}
	if len([]rune(content)) > maxContentLength {
		return shared.NewDomainError("INVALID_CONTENT", "Message content cannot exceed 4000 characters")
	}
	return nil
}

// MessageEvent carries a message snapshot to realtime subscribers
type MessageEvent struct {
	shared.BaseDomainEvent
	ChatID     uuid.UUID `json:"chat_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
	Content    string    `json:"content"`
	FileURL    string    `json:"file_url,omitempty"`
}

// NewMessageEvent creates a message event of the given type
func NewMessageEvent(eventType string, m *Message, actorID uuid.UUID) *MessageEvent {
	return &MessageEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeMessage, m.ID, actorID),
		ChatID:          m.ChatID,
		SenderID:        m.SenderID,
		ReceiverID:      m.ReceiverID,
		Content:         m.Content,
		FileURL:         m.FileURL,
	}
}

// MessageRepository defines persistence for messages
type MessageRepository interface {
	Create(ctx context.Context, m *Message) error
	Update(ctx context.Context, m *Message) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Message, error)

	// FindByChatID returns the messages of a chat, oldest first
	FindByChatID(ctx context.Context, chatID uuid.UUID) ([]*Message, error)
}
