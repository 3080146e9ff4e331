package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tsvs/backend/internal/domain/chat"
	"github.com/tsvs/backend/internal/infrastructure/persistence/models"
)

// GormChatRepository implements chat.ChatRepository
type GormChatRepository struct {
	db *gorm.DB
}

// NewGormChatRepository creates a new GormChatRepository
func NewGormChatRepository(db *gorm.DB) *GormChatRepository {
	return &GormChatRepository{db: db}
}

func (r *GormChatRepository) Create(ctx context.Context, c *chat.Chat) error {
	return translate(r.db.WithContext(ctx).Create(models.ChatModelFromDomain(c)).Error)
}

func (r *GormChatRepository) FindByID(ctx context.Context, id uuid.UUID) (*chat.Chat, error) {
	var model models.ChatModel
	if err := r.db.WithContext(ctx).Take(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return model.ToDomain(), nil
}

func (r *GormChatRepository) FindAll(ctx context.Context) ([]*chat.Chat, error) {
	var rows []models.ChatModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*chat.Chat, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// GormMessageRepository implements chat.MessageRepository
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GormMessageRepository
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) Create(ctx context.Context, m *chat.Message) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(models.MessageModelFromDomain(m)).Error)
}

func (r *GormMessageRepository) Update(ctx context.Context, m *chat.Message) error {
	return affected(r.db.WithContext(ctx).Model(&models.MessageModel{}).Where("id = ?", m.ID).
		Updates(map[string]any{
			"content":    m.Content,
			"file_url":   m.FileURL,
			"version":    m.Version,
			"updated_at": m.UpdatedAt,
		}))
}

func (r *GormMessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Delete(&models.MessageModel{}, "id = ?", id))
}

func (r *GormMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*chat.Message, error) {
	var model models.MessageModel
	if err := r.db.WithContext(ctx).Take(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return model.ToDomain(), nil
}

// FindByChatID returns the messages of a chat, oldest first
func (r *GormMessageRepository) FindByChatID(ctx context.Context, chatID uuid.UUID) ([]*chat.Message, error) {
	var rows []models.MessageModel
	err := r.db.WithContext(ctx).Where("chat_id = ?", chatID).Order("created_at ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*chat.Message, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

var (
	_ chat.ChatRepository    = (*GormChatRepository)(nil)
	_ chat.MessageRepository = (*GormMessageRepository)(nil)
)
