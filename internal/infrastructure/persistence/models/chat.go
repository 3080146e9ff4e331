package models

import (
	"github.com/google/uuid"

	"github.com/tsvs/backend/internal/domain/chat"
)

// ChatModel maps chats
type ChatModel struct {
	AggregateModel
	Name string `gorm:"type:varchar(255);not null"`
}

// TableName returns the table name for GORM
func (ChatModel) TableName() string {
	return "chats"
}

// ToDomain converts the model to a domain Chat
func (m *ChatModel) ToDomain() *chat.Chat {
	return &chat.Chat{BaseAggregateRoot: m.ToAggregateRoot(), Name: m.Name}
}

// ChatModelFromDomain creates a model from a domain Chat
func ChatModelFromDomain(c *chat.Chat) *ChatModel {
	m := &ChatModel{Name: c.Name}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}

// MessageModel maps chat_messages
type MessageModel struct {
	AggregateModel
	ChatID     uuid.UUID `gorm:"type:uuid;not null;index"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null;index"`
	Content    string    `gorm:"type:text"`
	FileURL    string    `gorm:"type:varchar(1000)"`

	Chat *ChatModel `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (MessageModel) TableName() string {
	return "chat_messages"
}

// ToDomain converts the model to a domain Message
func (m *MessageModel) ToDomain() *chat.Message {
	return &chat.Message{
		BaseAggregateRoot: m.ToAggregateRoot(),
		ChatID:            m.ChatID,
		SenderID:          m.SenderID,
		ReceiverID:        m.ReceiverID,
		Content:           m.Content,
		FileURL:           m.FileURL,
	}
}

// MessageModelFromDomain creates a model from a domain Message
func MessageModelFromDomain(msg *chat.Message) *MessageModel {
	m := &MessageModel{
		ChatID:     msg.ChatID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Content:    msg.Content,
		FileURL:    msg.FileURL,
	}
	m.FromDomainAggregateRoot(msg.BaseAggregateRoot)
	return m
}
