package directory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tsvs/backend/internal/domain/directory"
	"github.com/tsvs/backend/internal/domain/shared"
	"github.com/tsvs/backend/internal/infrastructure/cache"
	"go.uber.org/zap"
)

// Service manages one reference-data dictionary (regions or departments).
// List results are cached and the cache is dropped on every write.
type Service struct {
	repo     directory.Repository
	cache    cache.ListCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewService creates a new directory service
func NewService(repo directory.Repository, listCache cache.ListCache, cacheTTL time.Duration, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    listCache,
		cacheTTL: cacheTTL,
		logger:   logger.With(zap.String("directory", string(repo.Kind()))),
	}
}

// Kind returns the dictionary served by this service
func (s *Service) Kind() directory.Kind {
	return s.repo.Kind()
}

// Create adds a new entry
func (s *Service) Create(ctx context.Context, input CreateEntryInput) (*EntryDTO, error) {
	entry, err := directory.NewEntry(s.Kind(), input.Title)
	if err != nil {
		return nil, err
	}
	if err := s.ensureTitleFree(ctx, entry.Title, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, s.mapWriteError(err, "Failed to create entry")
	}
	s.invalidate(ctx)

	s.logger.Info("Directory entry created", zap.String("id", entry.ID.String()), zap.String("title", entry.Title))
	dto := ToEntryDTO(entry)
	return &dto, nil
}

// List returns every entry
func (s *Service) List(ctx context.Context) ([]EntryDTO, error) {
	return s.list(ctx, false)
}

// ListActive returns active entries only
func (s *Service) ListActive(ctx context.Context) ([]EntryDTO, error) {
	return s.list(ctx, true)
}

func (s *Service) list(ctx context.Context, activeOnly bool) ([]EntryDTO, error) {
	key := s.cacheKey(activeOnly)

	var dtos []EntryDTO
	if s.cache != nil {
		found, err := s.cache.Get(ctx, key, &dtos)
		if err != nil {
			s.logger.Warn("Directory cache read failed", zap.String("key", key), zap.Error(err))
		}
		if found && len(dtos) > 0 {
			return dtos, nil
		}
	}

	entries, err := s.repo.FindAll(ctx, activeOnly)
	if err != nil {
		s.logger.Error("Failed to list entries", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list entries")
	}
	if len(entries) == 0 {
		return nil, shared.NewDomainError("NOT_FOUND", "No "+strings.ToLower(s.Kind().Label())+"s found")
	}

	dtos = ToEntryDTOs(entries)
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, dtos, s.cacheTTL); err != nil {
			s.logger.Warn("Directory cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return dtos, nil
}

// GetByID returns a single entry
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*EntryDTO, error) {
	entry, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToEntryDTO(entry)
	return &dto, nil
}

// Update replaces the title and activity flag
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateEntryInput) (*EntryDTO, error) {
	entry, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.IsActive == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "is_active is required")
	}
	if err := entry.Update(input.Title, *input.IsActive); err != nil {
		return nil, err
	}
	if err := s.ensureTitleFree(ctx, entry.Title, entry.ID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, s.mapWriteError(err, "Failed to update entry")
	}
	s.invalidate(ctx)

	dto := ToEntryDTO(entry)
	return &dto, nil
}

// Delete removes an entry permanently
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapWriteError(err, "Failed to delete entry")
	}
	s.invalidate(ctx)

	s.logger.Info("Directory entry deleted", zap.String("id", id.String()))
	return nil
}

// Disable clears the activity flag of an entry
func (s *Service) Disable(ctx context.Context, id uuid.UUID) (*DisableResult, error) {
	entry, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := entry.Disable(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, s.mapWriteError(err, "Failed to disable entry")
	}
	s.invalidate(ctx)

	return &DisableResult{IsActive: entry.IsActive, UpdatedAt: entry.UpdatedAt}, nil
}

func (s *Service) find(ctx context.Context, id uuid.UUID) (*directory.Entry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapWriteError(err, "Failed to load entry")
	}
	return entry, nil
}

func (s *Service) ensureTitleFree(ctx context.Context, title string, excludeID uuid.UUID) error {
	exists, err := s.repo.ExistsByTitle(ctx, title, excludeID)
	if err != nil {
		s.logger.Error("Failed to check title uniqueness", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check title availability")
	}
	if exists {
		return s.titleExists()
	}
	return nil
}

func (s *Service) titleExists() error {
	return shared.NewDomainError("TITLE_EXISTS", s.Kind().Label()+" with this title already exists")
}

func (s *Service) mapWriteError(err error, message string) error {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return shared.NewDomainError("NOT_FOUND", s.Kind().Label()+" not found")
	case errors.Is(err, shared.ErrAlreadyExists):
		return s.titleExists()
	case shared.CodeOf(err) == "INVALID_REFERENCE":
		return err
	}
	s.logger.Error(message, zap.Error(err))
	return shared.NewDomainError("INTERNAL_ERROR", message)
}

func (s *Service) cacheKey(activeOnly bool) string {
	if activeOnly {
		return s.cachePrefix() + "active"
	}
	return s.cachePrefix() + "all"
}

func (s *Service) cachePrefix() string {
	return "directory:" + string(s.Kind()) + ":"
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePrefix(ctx, s.cachePrefix()); err != nil {
		s.logger.Warn("Directory cache invalidation failed", zap.Error(err))
	}
}
