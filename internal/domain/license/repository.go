package license

import (
	"context"

	"github.com/google/uuid"
)

// LookupRepository defines persistence for one lookup kind
type LookupRepository interface {
	Kind() LookupKind
	Create(ctx context.Context, l *Lookup) error
	Update(ctx context.Context, l *Lookup) error
	FindByID(ctx context.Context, id uuid.UUID) (*Lookup, error)
	FindAll(ctx context.Context) ([]*Lookup, error)
	ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
}

// Filter narrows license listings
type Filter struct {
	RegionID *uuid.UUID
	Active   *bool
	Query    string
	Offset   int
	Limit    int
}

// LicenseRepository defines persistence for licenses
type LicenseRepository interface {
	Create(ctx context.Context, l *License) error
	Update(ctx context.Context, l *License) error
	FindByID(ctx context.Context, id uuid.UUID) (*License, error)
	FindAll(ctx context.Context, filter Filter) ([]*License, int64, error)
}

// AttachmentRepository defines persistence for license attachments
type AttachmentRepository interface {
	Create(ctx context.Context, a *Attachment) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Attachment, error)
	FindByLicenseID(ctx context.Context, licenseID uuid.UUID) ([]*Attachment, error)
	ExistsByFileName(ctx context.Context, fileName string) (bool, error)
}
