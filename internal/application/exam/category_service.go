package exam

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tsvs/backend/internal/domain/exam"
	"github.com/tsvs/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CategoryService manages question categories
type CategoryService struct {
	repo   exam.CategoryRepository
	logger *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(repo exam.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

// Create adds a category
func (s *CategoryService) Create(ctx context.Context, input TitleInput) (*CategoryDTO, error) {
	category, err := exam.NewCategory(input.Title)
	if err != nil {
		return nil, err
	}
	if err := checkTitle(ctx, s.repo.ExistsByTitle, category.Title, uuid.Nil, "Category", s.logger); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, mapError(err, "Category", "Failed to create category", s.logger)
	}
	dto := toCategoryDTO(category)
	return &dto, nil
}

// List returns every category
func (s *CategoryService) List(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapError(err, "Category", "Failed to list categories", s.logger)
	}
	if len(categories) == 0 {
		return nil, shared.NewDomainError("NOT_FOUND", "No categories found")
	}
	dtos := make([]CategoryDTO, len(categories))
	for i, c := range categories {
		dtos[i] = toCategoryDTO(c)
	}
	return dtos, nil
}

// GetByID returns a category
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryDTO, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapError(err, "Category", "Failed to load category", s.logger)
	}
	dto := toCategoryDTO(category)
	return &dto, nil
}

// Update renames a category
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, input TitleInput) (*CategoryDTO, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapError(err, "Category", "Failed to load category", s.logger)
	}
	if err := category.Rename(input.Title); err != nil {
		return nil, err
	}
	if err := checkTitle(ctx, s.repo.ExistsByTitle, category.Title, category.ID, "Category", s.logger); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, mapError(err, "Category", "Failed to update category", s.logger)
	}
	dto := toCategoryDTO(category)
	return &dto, nil
}

// Delete removes a category. Categories still referenced by questions cannot be removed.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err, "Category", "Failed to delete category", s.logger)
	}
	s.logger.Info("Category deleted", zap.String("id", id.String()))
	return nil
}

// TypeSelectionService manages question type selections
type TypeSelectionService struct {
	repo   exam.TypeSelectionRepository
	logger *zap.Logger
}

// NewTypeSelectionService creates a new type selection service
func NewTypeSelectionService(repo exam.TypeSelectionRepository, logger *zap.Logger) *TypeSelectionService {
	return &TypeSelectionService{repo: repo, logger: logger}
}

// Create adds a type selection
func (s *TypeSelectionService) Create(ctx context.Context, input TitleInput) (*TypeSelectionDTO, error) {
	ts, err := exam.NewTypeSelection(input.Title)
	if err != nil {
		return nil, err
	}
	if err := checkTitle(ctx, s.repo.ExistsByTitle, ts.Title, uuid.Nil, "Type selection", s.logger); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, ts); err != nil {
		return nil, mapError(err, "Type selection", "Failed to create type selection", s.logger)
	}
	dto := toTypeSelectionDTO(ts)
	return &dto, nil
}

// List returns every type selection
func (s *TypeSelectionService) List(ctx context.Context) ([]TypeSelectionDTO, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapError(err, "Type selection", "Failed to list type selections", s.logger)
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("NOT_FOUND", "No type selections found")
	}
	dtos := make([]TypeSelectionDTO, len(items))
	for i, ts := range items {
		dtos[i] = toTypeSelectionDTO(ts)
	}
	return dtos, nil
}

// GetByID returns a type selection
func (s *TypeSelectionService) GetByID(ctx context.Context, id uuid.UUID) (*TypeSelectionDTO, error) {
	ts, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapError(err, "Type selection", "Failed to load type selection", s.logger)
	}
	dto := toTypeSelectionDTO(ts)
	return &dto, nil
}

// Update renames a type selection
func (s *TypeSelectionService) Update(ctx context.Context, id uuid.UUID, input TitleInput) (*TypeSelectionDTO, error) {
	ts, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapError(err, "Type selection", "Failed to load type selection", s.logger)
	}
	if err := ts.Rename(input.Title); err != nil {
		return nil, err
	}
	if err := checkTitle(ctx, s.repo.ExistsByTitle, ts.Title, ts.ID, "Type selection", s.logger); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, ts); err != nil {
		return nil, mapError(err, "Type selection", "Failed to update type selection", s.logger)
	}
	dto := toTypeSelectionDTO(ts)
	return &dto, nil
}

// Delete removes a type selection
func (s *TypeSelectionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err, "Type selection", "Failed to delete type selection", s.logger)
	}
	s.logger.Info("Type selection deleted", zap.String("id", id.String()))
	return nil
}

type existsFunc func(ctx context.Context, title string, excludeID uuid.UUID) (bool, error)

func checkTitle(ctx context.Context, exists existsFunc, title string, excludeID uuid.UUID, label string, logger *zap.Logger) error {
	found, err := exists(ctx, title, excludeID)
	if err != nil {
		logger.Error("Failed to check title uniqueness", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check title availability")
	}
	if found {
		return shared.NewDomainError("TITLE_EXISTS", label+" with this title already exists")
	}
	return nil
}

// mapError converts repository errors into coded domain errors.
// Domain errors other than the generic sentinels pass through unchanged.
func mapError(err error, label, message string, logger *zap.Logger) error {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return shared.NewDomainError("NOT_FOUND", label+" not found")
	case errors.Is(err, shared.ErrAlreadyExists):
		return shared.NewDomainError("TITLE_EXISTS", label+" with this title already exists")
	case shared.CodeOf(err) != "":
		return err
	}
	logger.Error(message, zap.Error(err))
	return shared.NewDomainError("INTERNAL_ERROR", message)
}
