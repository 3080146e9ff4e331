package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tsvs/backend/internal/domain/directory"
	"github.com/tsvs/backend/internal/infrastructure/persistence/models"
)

// GormDirectoryRepository implements directory.Repository for one table.
// Regions and departments share the row shape, so one implementation serves both.
type GormDirectoryRepository struct {
	db    *gorm.DB
	kind  directory.Kind
	table string
}

// NewGormDirectoryRepository creates a repository for the given kind
func NewGormDirectoryRepository(db *gorm.DB, kind directory.Kind) *GormDirectoryRepository {
	return &GormDirectoryRepository{db: db, kind: kind, table: models.DirectoryTable(kind)}
}

// Kind returns the dictionary served by this repository
func (r *GormDirectoryRepository) Kind() directory.Kind {
	return r.kind
}

func (r *GormDirectoryRepository) scoped(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

// Create saves a new entry
func (r *GormDirectoryRepository) Create(ctx context.Context, entry *directory.Entry) error {
	model := models.DirectoryEntryModelFromDomain(entry)
	return translate(r.scoped(ctx).Create(&model).Error)
}

// Update overwrites title and activity
func (r *GormDirectoryRepository) Update(ctx context.Context, entry *directory.Entry) error {
	return affected(r.scoped(ctx).Where("id = ?", entry.ID).Updates(map[string]any{
		"title":      entry.Title,
		"is_active":  entry.IsActive,
		"updated_at": entry.UpdatedAt,
		"version":    entry.Version,
	}))
}

// Delete removes an entry permanently
func (r *GormDirectoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.scoped(ctx).Where("id = ?", id).Delete(&models.DirectoryEntryModel{}))
}

// FindByID finds an entry by ID
func (r *GormDirectoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*directory.Entry, error) {
	var model models.DirectoryEntryModel
	if err := r.scoped(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		return nil, translate(err)
	}
	return model.ToDomain(r.kind), nil
}

// FindAll returns entries ordered by title
func (r *GormDirectoryRepository) FindAll(ctx context.Context, activeOnly bool) ([]*directory.Entry, error) {
	query := r.scoped(ctx)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var rows []models.DirectoryEntryModel
	if err := query.Order("title ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]*directory.Entry, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain(r.kind)
	}
	return entries, nil
}

// ExistsByTitle checks whether an entry other than excludeID uses the title
func (r *GormDirectoryRepository) ExistsByTitle(ctx context.Context, title string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.scoped(ctx).Where("title = ?", title)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

var _ directory.Repository = (*GormDirectoryRepository)(nil)
