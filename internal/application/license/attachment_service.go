package license

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/tsvs/backend/internal/domain/license"
	"github.com/tsvs/backend/internal/domain/shared"
	"github.com/tsvs/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ObjectStore is the storage used for license files
type ObjectStore interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(ctx context.Context, key string) (string, error)
}

// AttachmentService stores and lists license files
type AttachmentService struct {
	attachmentRepo license.AttachmentRepository
	licenseRepo    license.LicenseRepository
	store          ObjectStore
	logger         *zap.Logger
}

// NewAttachmentService creates a new attachment service
func NewAttachmentService(
	attachmentRepo license.AttachmentRepository,
	licenseRepo license.LicenseRepository,
	store ObjectStore,
	logger *zap.Logger,
) *AttachmentService {
	return &AttachmentService{
		attachmentRepo: attachmentRepo,
		licenseRepo:    licenseRepo,
		store:          store,
		logger:         logger,
	}
}

// Upload stores a file for a license. File names are unique across the registry.
func (s *AttachmentService) Upload(ctx context.Context, licenseID uuid.UUID, file UploadFile) (dto *AttachmentDTO, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "license", "upload_attachment",
		attribute.String("license.id", licenseID.String()),
		attribute.Int64("file.size", file.Size))
	defer func() { telemetry.EndSpan(span, err) }()

	if _, err := s.licenseRepo.FindByID(ctx, licenseID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errItemNotFound
		}
		s.logger.Error("Failed to load license", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load item")
	}

	attachment, err := license.NewAttachment(licenseID, file.Name, file.ContentType, file.Size)
	if err != nil {
		return nil, err
	}

	exists, err := s.attachmentRepo.ExistsByFileName(ctx, attachment.FileName)
	if err != nil {
		s.logger.Error("Failed to check file name", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check file name")
	}
	if exists {
		return nil, errFileExists
	}

	// The row claims the file name first; the unique index settles concurrent
	// uploads of the same name before anything reaches the store.
	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, errFileExists
		}
		s.logger.Error("Failed to save attachment", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save attachment")
	}

	if err := s.store.Upload(ctx, attachment.StorageKey, file.Body, attachment.Size, attachment.ContentType); err != nil {
		s.logger.Error("Failed to store license file",
			zap.String("key", attachment.StorageKey),
			zap.Error(err))
		if delErr := s.attachmentRepo.Delete(ctx, attachment.ID); delErr != nil {
			s.logger.Warn("Failed to release file name", zap.String("filename", attachment.FileName), zap.Error(delErr))
		}
		return nil, shared.NewDomainError("UPLOAD_FAILED", "Failed to store file")
	}

	s.logger.Info("License file uploaded",
		zap.String("license_id", licenseID.String()),
		zap.String("filename", attachment.FileName),
		zap.Int64("size", attachment.Size))
	return s.toDTO(ctx, attachment)
}

// List returns the files of a license with download URLs
func (s *AttachmentService) List(ctx context.Context, licenseID uuid.UUID) ([]AttachmentDTO, error) {
	if _, err := s.licenseRepo.FindByID(ctx, licenseID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errItemNotFound
		}
		s.logger.Error("Failed to load license", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load item")
	}

	attachments, err := s.attachmentRepo.FindByLicenseID(ctx, licenseID)
	if err != nil {
		s.logger.Error("Failed to list attachments", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list files")
	}

	dtos := make([]AttachmentDTO, 0, len(attachments))
	for _, a := range attachments {
		dto, err := s.toDTO(ctx, a)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *dto)
	}
	return dtos, nil
}

// Delete removes the stored object and its row
func (s *AttachmentService) Delete(ctx context.Context, id uuid.UUID) error {
	attachment, err := s.attachmentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return errFileNotFound
		}
		s.logger.Error("Failed to load attachment", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to load file")
	}

	if err := s.store.Delete(ctx, attachment.StorageKey); err != nil {
		s.logger.Error("Failed to delete stored file", zap.String("key", attachment.StorageKey), zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete file")
	}
	if err := s.attachmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return errFileNotFound
		}
		s.logger.Error("Failed to delete attachment", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete file")
	}

	s.logger.Info("License file deleted", zap.String("filename", attachment.FileName))
	return nil
}

func (s *AttachmentService) toDTO(ctx context.Context, a *license.Attachment) (*AttachmentDTO, error) {
	url, err := s.store.URL(ctx, a.StorageKey)
	if err != nil {
		s.logger.Error("Failed to resolve file url", zap.String("key", a.StorageKey), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to resolve file url")
	}
	return &AttachmentDTO{
		ID:          a.ID,
		LicenseID:   a.LicenseID,
		FileName:    a.FileName,
		ContentType: a.ContentType,
		Size:        a.Size,
		URL:         url,
		CreatedAt:   a.CreatedAt,
	}, nil
}

var (
	errFileExists   = shared.NewDomainError("FILE_EXISTS", "File with this name already exists")
	errFileNotFound = shared.NewDomainError("NOT_FOUND", "File not found")
)
