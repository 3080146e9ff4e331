package license

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tsvs/backend/internal/domain/license"
	"github.com/tsvs/backend/internal/domain/shared"
	"github.com/tsvs/backend/internal/infrastructure/cache"
	"go.uber.org/zap"
)

// LookupService manages one license lookup table (regions or school quantities)
type LookupService struct {
	repo     license.LookupRepository
	cache    cache.ListCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewLookupService creates a new lookup service. listCache may be nil.
func NewLookupService(repo license.LookupRepository, listCache cache.ListCache, cacheTTL time.Duration, logger *zap.Logger) *LookupService {
	return &LookupService{
		repo:     repo,
		cache:    listCache,
		cacheTTL: cacheTTL,
		logger:   logger.With(zap.String("lookup", string(repo.Kind()))),
	}
}

// Create adds a lookup row
func (s *LookupService) Create(ctx context.Context, input LookupInput) (*LookupDTO, error) {
	row, err := license.NewLookup(s.repo.Kind(), input.Name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, row.Name, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, s.mapError(err, "Failed to create "+s.label())
	}
	s.invalidate(ctx)

	dto := toLookupDTO(row)
	return &dto, nil
}

// List returns every row, soft deleted ones included
func (s *LookupService) List(ctx context.Context) ([]LookupDTO, error) {
	key := "license:" + string(s.repo.Kind()) + ":all"

	var dtos []LookupDTO
	if s.cache != nil {
		if found, err := s.cache.Get(ctx, key, &dtos); err != nil {
			s.logger.Warn("Lookup cache read failed", zap.Error(err))
		} else if found {
			return dtos, nil
		}
	}

	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.mapError(err, "Failed to list "+s.label())
	}
	dtos = make([]LookupDTO, len(rows))
	for i, r := range rows {
		dtos[i] = toLookupDTO(r)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, dtos, s.cacheTTL); err != nil {
			s.logger.Warn("Lookup cache write failed", zap.Error(err))
		}
	}
	return dtos, nil
}

// GetByID returns a single row
func (s *LookupService) GetByID(ctx context.Context, id uuid.UUID) (*LookupDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "Failed to load "+s.label())
	}
	dto := toLookupDTO(row)
	return &dto, nil
}

// Update renames a row and optionally changes its activity flag
func (s *LookupService) Update(ctx context.Context, id uuid.UUID, input LookupInput) (*LookupDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "Failed to load "+s.label())
	}
	isActive := row.IsActive
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	if err := row.Update(input.Name, isActive); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, row.Name, row.ID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, row); err != nil {
		return nil, s.mapError(err, "Failed to update "+s.label())
	}
	s.invalidate(ctx)

	dto := toLookupDTO(row)
	return &dto, nil
}

// Delete soft deletes a row
func (s *LookupService) Delete(ctx context.Context, id uuid.UUID) (*LookupDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "Failed to load "+s.label())
	}
	row.Deactivate()
	if err := s.repo.Update(ctx, row); err != nil {
		return nil, s.mapError(err, "Failed to delete "+s.label())
	}
	s.invalidate(ctx)

	dto := toLookupDTO(row)
	return &dto, nil
}

func (s *LookupService) label() string {
	return s.repo.Kind().Label()
}

func (s *LookupService) ensureNameFree(ctx context.Context, name string, excludeID uuid.UUID) error {
	exists, err := s.repo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		s.logger.Error("Failed to check name uniqueness", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check name availability")
	}
	if exists {
		return shared.NewDomainError("NAME_EXISTS", s.label()+" with this name already exists")
	}
	return nil
}

func (s *LookupService) mapError(err error, message string) error {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return shared.NewDomainError("NOT_FOUND", s.label()+" not found")
	case errors.Is(err, shared.ErrAlreadyExists):
		return shared.NewDomainError("NAME_EXISTS", s.label()+" with this name already exists")
	}
	s.logger.Error(message, zap.Error(err))
	return shared.NewDomainError("INTERNAL_ERROR", message)
}

func (s *LookupService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePrefix(ctx, "license:"+string(s.repo.Kind())+":"); err != nil {
		s.logger.Warn("Lookup cache invalidation failed", zap.Error(err))
	}
}
