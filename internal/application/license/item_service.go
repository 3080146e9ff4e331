package license

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tsvs/backend/internal/domain/license"
	"github.com/tsvs/backend/internal/domain/shared"
	"go.uber.org/zap"
)

var (
	errItemNotFound     = shared.NewDomainError("NOT_FOUND", "Item not found")
	errRegionNotFound   = shared.NewDomainError("NOT_FOUND", "Region not found")
	errQuantityNotFound = shared.NewDomainError("NOT_FOUND", "Quantity not found")
)

// ItemService manages license registry items
type ItemService struct {
	licenseRepo  license.LicenseRepository
	regionRepo   license.LookupRepository
	quantityRepo license.LookupRepository
	logger       *zap.Logger
}

// NewItemService creates a new item service
func NewItemService(
	licenseRepo license.LicenseRepository,
	regionRepo license.LookupRepository,
	quantityRepo license.LookupRepository,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		licenseRepo:  licenseRepo,
		regionRepo:   regionRepo,
		quantityRepo: quantityRepo,
		logger:       logger,
	}
}

// Create registers a license
func (s *ItemService) Create(ctx context.Context, input ItemInput) (*ItemDTO, error) {
	if err := s.checkReferences(ctx, input.RegionID, input.QuantityID); err != nil {
		return nil, err
	}

	item, err := license.NewLicense(input.toDomain(), input.RegionID, input.QuantityID)
	if err != nil {
		return nil, err
	}
	if err := s.licenseRepo.Create(ctx, item); err != nil {
		return nil, s.mapError(err, "Failed to create item")
	}

	s.logger.Info("License created",
		zap.String("license_id", item.ID.String()),
		zap.String("contract_number", item.ContractNumber))
	dto := ToItemDTO(item)
	return &dto, nil
}

// List returns a page of licenses
func (s *ItemService) List(ctx context.Context, input ListItemsInput) (*ItemList, error) {
	items, total, err := s.licenseRepo.FindAll(ctx, license.Filter{
		RegionID: input.RegionID,
		Active:   input.Active,
		Query:    input.Search,
		Offset:   input.Offset(),
		Limit:    input.Limit(),
	})
	if err != nil {
		return nil, s.mapError(err, "Failed to list items")
	}

	dtos := make([]ItemDTO, len(items))
	for i, item := range items {
		dtos[i] = ToItemDTO(item)
	}
	page := input.Page
	if page < 1 {
		page = 1
	}
	result := shared.NewPaginated(dtos, total, page, input.Limit())
	return &result, nil
}

// GetByID returns a license
func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (*ItemDTO, error) {
	item, err := s.licenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "Failed to load item")
	}
	dto := ToItemDTO(item)
	return &dto, nil
}

// Update replaces every field of a license
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, input ItemInput) (*ItemDTO, error) {
	item, err := s.licenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "Failed to load item")
	}
	if err := s.checkReferences(ctx, input.RegionID, input.QuantityID); err != nil {
		return nil, err
	}

	isActive := item.IsActive
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	if err := item.Update(input.toDomain(), input.RegionID, input.QuantityID, isActive); err != nil {
		return nil, err
	}
	if err := s.licenseRepo.Update(ctx, item); err != nil {
		return nil, s.mapError(err, "Failed to update item")
	}

	dto := ToItemDTO(item)
	return &dto, nil
}

// Delete soft deletes a license
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) (*ItemDTO, error) {
	item, err := s.licenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "Failed to load item")
	}
	item.Deactivate()
	if err := s.licenseRepo.Update(ctx, item); err != nil {
		return nil, s.mapError(err, "Failed to delete item")
	}

	s.logger.Info("License deactivated", zap.String("license_id", item.ID.String()))
	dto := ToItemDTO(item)
	return &dto, nil
}

func (s *ItemService) checkReferences(ctx context.Context, regionID uuid.UUID, quantityID *uuid.UUID) error {
	if _, err := s.regionRepo.FindByID(ctx, regionID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return errRegionNotFound
		}
		return s.mapError(err, "Failed to load region")
	}
	if quantityID == nil {
		return nil
	}
	if _, err := s.quantityRepo.FindByID(ctx, *quantityID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return errQuantityNotFound
		}
		return s.mapError(err, "Failed to load quantity")
	}
	return nil
}

func (s *ItemService) mapError(err error, message string) error {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return errItemNotFound
	case shared.CodeOf(err) == "INVALID_REFERENCE":
		return err
	}
	s.logger.Error(message, zap.Error(err))
	return shared.NewDomainError("INTERNAL_ERROR", message)
}
