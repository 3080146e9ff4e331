package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tsvs/backend/internal/domain/identity"
	"github.com/tsvs/backend/internal/infrastructure/persistence/models"
)

// GormActionHistoryRepository implements identity.ActionHistoryRepository
type GormActionHistoryRepository struct {
	db *gorm.DB
}

// NewGormActionHistoryRepository creates a new GormActionHistoryRepository
func NewGormActionHistoryRepository(db *gorm.DB) *GormActionHistoryRepository {
	return &GormActionHistoryRepository{db: db}
}

// Append stores a history row
func (r *GormActionHistoryRepository) Append(ctx context.Context, entry *identity.ActionHistory) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(models.ActionHistoryModelFromDomain(entry)).Error)
}

// FindByUserID returns the history of a user, newest first. A non-positive limit returns everything.
func (r *GormActionHistoryRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*identity.ActionHistory, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("timestamp DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []models.ActionHistoryModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]*identity.ActionHistory, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
	}
	return entries, nil
}

var _ identity.ActionHistoryRepository = (*GormActionHistoryRepository)(nil)
