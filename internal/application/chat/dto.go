package chat

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/tsvs/backend/internal/domain/chat"
)

// CreateChatInput is the body of chat creation
type CreateChatInput struct {
	Name string `json:"name" binding:"required,max=255"`
}

// ChatDTO represents a chat room
type ChatDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// SendMessageInput is the body of a new message. The sender comes from the token.
type SendMessageInput struct {
	ReceiverID uuid.UUID `json:"receiver_id" binding:"required"`
	Content    string    `json:"content"`
	FileURL    string    `json:"file_url"`
}

// EditMessageInput is the body of a message edit
type EditMessageInput struct {
	Content string `json:"content" binding:"required"`
}

// MessageDTO represents a chat message
type MessageDTO struct {
	ID         uuid.UUID `json:"id"`
	ChatID     uuid.UUID `json:"chat_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
	Content    string    `json:"content"`
	FileURL    string    `json:"file_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UploadFile is one file of a multipart upload
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadResult lists the stored names and their URLs in request order
type UploadResult struct {
	FileNames []string `json:"filenames"`
	URLs      []string `json:"urls"`
}

// ChatUserDTO is a recipient candidate
type ChatUserDTO struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Avatar   string    `json:"avatar,omitempty"`
}

func toChatDTO(c *chat.Chat) ChatDTO {
	return ChatDTO{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}

// ToMessageDTO converts a domain message
func ToMessageDTO(m *chat.Message) MessageDTO {
	return MessageDTO{
		ID:         m.ID,
		ChatID:     m.ChatID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		FileURL:    m.FileURL,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
