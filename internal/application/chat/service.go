package chat

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/tsvs/backend/internal/domain/chat"
	"github.com/tsvs/backend/internal/domain/identity"
	"github.com/tsvs/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserDirectory resolves portal users for message recipients
type UserDirectory interface {
	FindActiveByID(ctx context.Context, id uuid.UUID) (*identity.User, error)
	FindAll(ctx context.Context, filter identity.UserFilter) ([]*identity.User, error)
}

// FileStore stores uploaded chat files
type FileStore interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	URL(ctx context.Context, key string) (string, error)
}

// Service handles chats, messages and chat uploads
type Service struct {
	chatRepo       chat.ChatRepository
	messageRepo    chat.MessageRepository
	users          UserDirectory
	files          FileStore
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewService creates a new chat service
func NewService(
	chatRepo chat.ChatRepository,
	messageRepo chat.MessageRepository,
	users UserDirectory,
	files FileStore,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *Service {
	if eventPublisher == nil {
		eventPublisher = shared.NopPublisher{}
	}
	return &Service{
		chatRepo:       chatRepo,
		messageRepo:    messageRepo,
		users:          users,
		files:          files,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// CreateChat opens a new chat room
func (s *Service) CreateChat(ctx context.Context, input CreateChatInput) (*ChatDTO, error) {
	c, err := chat.NewChat(input.Name)
	if err != nil {
		return nil, err
	}
	if err := s.chatRepo.Create(ctx, c); err != nil {
		s.logger.Error("Failed to create chat", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create chat")
	}
	dto := toChatDTO(c)
	return &dto, nil
}

// ListChats returns every chat room
func (s *Service) ListChats(ctx context.Context) ([]ChatDTO, error) {
	chats, err := s.chatRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list chats", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list chats")
	}
	dtos := make([]ChatDTO, len(chats))
	for i, c := range chats {
		dtos[i] = toChatDTO(c)
	}
	return dtos, nil
}

// SendMessage posts a message from the caller to an existing user
func (s *Service) SendMessage(ctx context.Context, chatID, senderID uuid.UUID, input SendMessageInput) (*MessageDTO, error) {
	if _, err := s.chatRepo.FindByID(ctx, chatID); err != nil {
		return nil, s.mapError(err, errChatNotFound, "Failed to load chat")
	}
	if _, err := s.users.FindActiveByID(ctx, input.ReceiverID); err != nil {
		return nil, s.mapError(err, errReceiverNotFound, "Failed to load receiver")
	}

	msg, err := chat.NewMessage(chatID, senderID, input.ReceiverID, input.Content, input.FileURL)
	if err != nil {
		return nil, err
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, s.mapError(err, errChatNotFound, "Failed to send message")
	}
	s.publish(ctx, msg.PullDomainEvents())

	dto := ToMessageDTO(msg)
	return &dto, nil
}

// ListMessages returns the messages of a chat, oldest first
func (s *Service) ListMessages(ctx context.Context, chatID uuid.UUID) ([]MessageDTO, error) {
	if _, err := s.chatRepo.FindByID(ctx, chatID); err != nil {
		return nil, s.mapError(err, errChatNotFound, "Failed to load chat")
	}
	messages, err := s.messageRepo.FindByChatID(ctx, chatID)
	if err != nil {
		s.logger.Error("Failed to list messages", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list messages")
	}
	dtos := make([]MessageDTO, len(messages))
	for i, m := range messages {
		dtos[i] = ToMessageDTO(m)
	}
	return dtos, nil
}

// EditMessage replaces the content of a message sent by the caller
func (s *Service) EditMessage(ctx context.Context, messageID, actorID uuid.UUID, input EditMessageInput) (*MessageDTO, error) {
	msg, err := s.messageRepo.FindByID(ctx, messageID)
	if err != nil {
		return nil, s.mapError(err, errMessageNotFound, "Failed to load message")
	}
	if err := msg.Edit(input.Content, actorID); err != nil {
		return nil, err
	}
	if err := s.messageRepo.Update(ctx, msg); err != nil {
		return nil, s.mapError(err, errMessageNotFound, "Failed to update message")
	}
	s.publish(ctx, msg.PullDomainEvents())

	dto := ToMessageDTO(msg)
	return &dto, nil
}

// DeleteMessage removes a message sent by the caller
func (s *Service) DeleteMessage(ctx context.Context, messageID, actorID uuid.UUID) error {
	msg, err := s.messageRepo.FindByID(ctx, messageID)
	if err != nil {
		return s.mapError(err, errMessageNotFound, "Failed to load message")
	}
	if err := msg.MarkDeleted(actorID); err != nil {
		return err
	}
	if err := s.messageRepo.Delete(ctx, messageID); err != nil {
		return s.mapError(err, errMessageNotFound, "Failed to delete message")
	}
	s.publish(ctx, msg.PullDomainEvents())
	return nil
}

// Upload stores files under chat/<random>/<name> and returns their URLs
func (s *Service) Upload(ctx context.Context, files []UploadFile) (*UploadResult, error) {
	if len(files) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "No files uploaded")
	}

	result := &UploadResult{
		FileNames: make([]string, 0, len(files)),
		URLs:      make([]string, 0, len(files)),
	}
	for _, f := range files {
		name := shared.SanitizeFileName(f.Name)
		if name == "" {
			return nil, shared.NewDomainError("INVALID_FILE_NAME", "File name cannot be empty")
		}
		contentType := f.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		key := "chat/" + uuid.NewString() + "/" + name
		if err := s.files.Upload(ctx, key, f.Body, f.Size, contentType); err != nil {
			s.logger.Error("Failed to store chat file", zap.String("key", key), zap.Error(err))
			return nil, shared.NewDomainError("UPLOAD_FAILED", "Failed to store file "+name)
		}
		url, err := s.files.URL(ctx, key)
		if err != nil {
			s.logger.Error("Failed to resolve chat file url", zap.String("key", key), zap.Error(err))
			return nil, shared.NewDomainError("UPLOAD_FAILED", "Failed to store file "+name)
		}

		result.FileNames = append(result.FileNames, name)
		result.URLs = append(result.URLs, url)
	}

	s.logger.Info("Chat files uploaded", zap.Int("count", len(result.FileNames)))
	return result, nil
}

// ListUsers returns the active users a message can be sent to
func (s *Service) ListUsers(ctx context.Context) ([]ChatUserDTO, error) {
	users, err := s.users.FindAll(ctx, identity.NewUserFilter().OnlyActive())
	if err != nil {
		s.logger.Error("Failed to list chat users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users")
	}
	dtos := make([]ChatUserDTO, len(users))
	for i, u := range users {
		dtos[i] = ChatUserDTO{ID: u.ID, FullName: u.FullName(), Email: u.Email, Avatar: u.Avatar}
	}
	return dtos, nil
}

var (
	errChatNotFound     = shared.NewDomainError("NOT_FOUND", "Chat not found")
	errMessageNotFound  = shared.NewDomainError("NOT_FOUND", "Message not found")
	errReceiverNotFound = shared.NewDomainError("NOT_FOUND", "Receiver not found")
)

func (s *Service) mapError(err error, notFound *shared.DomainError, message string) error {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return notFound
	case shared.CodeOf(err) == "INVALID_REFERENCE":
		return notFound
	}
	s.logger.Error(message, zap.Error(err))
	return shared.NewDomainError("INTERNAL_ERROR", message)
}

func (s *Service) publish(ctx context.Context, events []shared.DomainEvent) {
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish chat events", zap.Error(err))
	}
}
