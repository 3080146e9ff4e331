package chat

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/tsvs/backend/internal/domain/shared"
)

// Chat is a named conversation room
type Chat struct {
	shared.BaseAggregateRoot
	Name string
}

// NewChat creates a chat
func NewChat(name string) (*Chat, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Chat name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 255 {
		return nil, shared.NewDomainError("INVALID_NAME", "Chat name cannot exceed 255 characters")
	}
	return &Chat{BaseAggregateRoot: shared.NewBaseAggregateRoot(), Name: name}, nil
}

// ChatRepository defines persistence for chats
type ChatRepository interface {
	Create(ctx context.Context, c *Chat) error
	FindByID(ctx context.Context, id uuid.UUID) (*Chat, error)
	FindAll(ctx context.Context) ([]*Chat, error)
}
