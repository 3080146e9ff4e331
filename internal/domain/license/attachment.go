package license

import (
	"github.com/google/uuid"
	"github.com/tsvs/backend/internal/domain/shared"
)

// MaxAttachmentFileSize is the maximum allowed file size (50MB)
const MaxAttachmentFileSize = 50 * 1024 * 1024

// Attachment is a file stored for a license. Filenames are unique across the registry.
type Attachment struct {
	shared.BaseEntity
	LicenseID   uuid.UUID
	FileName    string
	StorageKey  string
	ContentType string
	Size        int64
}

// NewAttachment creates an attachment and derives its storage key
func NewAttachment(licenseID uuid.UUID, fileName, contentType string, size int64) (*Attachment, error) {
	fileName = shared.SanitizeFileName(fileName)
	if fileName == "" {
		return nil, shared.NewDomainError("INVALID_FILE_NAME", "File name cannot be empty")
	}
	if size <= 0 {
		return nil, shared.NewDomainError("INVALID_FILE_SIZE", "File cannot be empty")
	}
	if size > MaxAttachmentFileSize {
		return nil, shared.NewDomainError("FILE_TOO_LARGE", "File exceeds the 50MB limit")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &Attachment{
		BaseEntity:  shared.NewBaseEntity(),
		LicenseID:   licenseID,
		FileName:    fileName,
		StorageKey:  "licenses/" + licenseID.String() + "/" + fileName,
		ContentType: contentType,
		Size:        size,
	}, nil
}
