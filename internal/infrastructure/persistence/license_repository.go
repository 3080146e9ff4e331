package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tsvs/backend/internal/domain/license"
	"github.com/tsvs/backend/internal/infrastructure/persistence/models"
)

// GormLookupRepository implements license.LookupRepository for one lookup table
type GormLookupRepository struct {
	db    *gorm.DB
	kind  license.LookupKind
	table string
}

// NewGormLookupRepository creates a repository for the given lookup kind
func NewGormLookupRepository(db *gorm.DB, kind license.LookupKind) *GormLookupRepository {
	return &GormLookupRepository{db: db, kind: kind, table: models.LookupTable(kind)}
}

func (r *GormLookupRepository) Kind() license.LookupKind {
	return r.kind
}

func (r *GormLookupRepository) scoped(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

func (r *GormLookupRepository) Create(ctx context.Context, l *license.Lookup) error {
	model := models.LookupModelFromDomain(l)
	return translate(r.scoped(ctx).Create(&model).Error)
}

func (r *GormLookupRepository) Update(ctx context.Context, l *license.Lookup) error {
	return affected(r.scoped(ctx).Where("id = ?", l.ID).Updates(map[string]any{
		"name":       l.Name,
		"is_active":  l.IsActive,
		"version":    l.Version,
		"updated_at": l.UpdatedAt,
	}))
}

func (r *GormLookupRepository) FindByID(ctx context.Context, id uuid.UUID) (*license.Lookup, error) {
	var model models.LookupModel
	if err := r.scoped(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		return nil, translate(err)
	}
	return model.ToDomain(r.kind), nil
}

func (r *GormLookupRepository) FindAll(ctx context.Context) ([]*license.Lookup, error) {
	var rows []models.LookupModel
	if err := r.scoped(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*license.Lookup, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain(r.kind)
	}
	return out, nil
}

func (r *GormLookupRepository) ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.scoped(ctx).Where("name = ?", name)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// GormLicenseRepository implements license.LicenseRepository
type GormLicenseRepository struct {
	db *gorm.DB
}

// NewGormLicenseRepository creates a new GormLicenseRepository
func NewGormLicenseRepository(db *gorm.DB) *GormLicenseRepository {
	return &GormLicenseRepository{db: db}
}

func (r *GormLicenseRepository) Create(ctx context.Context, l *license.License) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(models.LicenseModelFromDomain(l)).Error)
}

// Update overwrites every column of the license
func (r *GormLicenseRepository) Update(ctx context.Context, l *license.License) error {
	model := models.LicenseModelFromDomain(l)
	return affected(r.db.WithContext(ctx).Model(model).
		Select("*").Omit("created_at", clause.Associations).
		Updates(model))
}

func (r *GormLicenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*license.License, error) {
	var model models.LicenseModel
	if err := r.db.WithContext(ctx).Take(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of licenses, newest first, and the total match count
func (r *GormLicenseRepository) FindAll(ctx context.Context, filter license.Filter) ([]*license.License, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.LicenseModel{}).
		Scopes(licenseFilter(filter)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Scopes(licenseFilter(filter)).Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Offset(filter.Offset).Limit(filter.Limit)
	}
	var rows []models.LicenseModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]*license.License, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, total, nil
}

func licenseFilter(filter license.Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.RegionID != nil {
			db = db.Where("region_id = ?", *filter.RegionID)
		}
		if filter.Active != nil {
			db = db.Where("is_active = ?", *filter.Active)
		}
		if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
			like := "%" + q + "%"
			db = db.Where(
				"LOWER(name_entity) LIKE ? OR LOWER(full_name) LIKE ? OR LOWER(contract_number) LIKE ?",
				like, like, like,
			)
		}
		return db
	}
}

// GormAttachmentRepository implements license.AttachmentRepository
type GormAttachmentRepository struct {
	db *gorm.DB
}

// NewGormAttachmentRepository creates a new GormAttachmentRepository
func NewGormAttachmentRepository(db *gorm.DB) *GormAttachmentRepository {
	return &GormAttachmentRepository{db: db}
}

func (r *GormAttachmentRepository) Create(ctx context.Context, a *license.Attachment) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(models.AttachmentModelFromDomain(a)).Error)
}

func (r *GormAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Delete(&models.AttachmentModel{}, "id = ?", id))
}

func (r *GormAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*license.Attachment, error) {
	var model models.AttachmentModel
	if err := r.db.WithContext(ctx).Take(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return model.ToDomain(), nil
}

func (r *GormAttachmentRepository) FindByLicenseID(ctx context.Context, licenseID uuid.UUID) ([]*license.Attachment, error) {
	var rows []models.AttachmentModel
	err := r.db.WithContext(ctx).Where("license_id = ?", licenseID).Order("created_at ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*license.Attachment, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

func (r *GormAttachmentRepository) ExistsByFileName(ctx context.Context, fileName string) (bool, error) {
	return existsByColumn(ctx, r.db, &models.AttachmentModel{}, "filename", fileName, uuid.Nil)
}

var (
	_ license.LookupRepository     = (*GormLookupRepository)(nil)
	_ license.LicenseRepository    = (*GormLicenseRepository)(nil)
	_ license.AttachmentRepository = (*GormAttachmentRepository)(nil)
)
