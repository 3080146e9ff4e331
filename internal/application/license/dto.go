package license

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/tsvs/backend/internal/domain/license"
	"github.com/tsvs/backend/internal/domain/shared"
)

// LookupInput is the body of region and quantity writes
type LookupInput struct {
	Name     string `json:"name" binding:"required,max=255"`
	IsActive *bool  `json:"is_active"`
}

// LookupDTO represents a license region or school quantity
type LookupDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toLookupDTO(l *license.Lookup) LookupDTO {
	return LookupDTO{ID: l.ID, Name: l.Name, IsActive: l.IsActive, CreatedAt: l.CreatedAt, UpdatedAt: l.UpdatedAt}
}

// DetailsDTO carries the free-text registry fields of a license
type DetailsDTO struct {
	NumberRegister      string `json:"number_register"`
	NameEntity          string `json:"name_entity" binding:"required"`
	TaxName             string `json:"tax_name"`
	EntityAddress       string `json:"entity_address"`
	AddressProgram      string `json:"address_program"`
	Cipher              string `json:"cipher"`
	TitleSchool         string `json:"title_school"`
	QuantitySchool      string `json:"quantity_school"`
	FormsEducation      string `json:"forms_education"`
	FullName            string `json:"full_name" binding:"required"`
	ContractNumber      string `json:"contract_number" binding:"required"`
	IssuingLicense      string `json:"issuing_license"`
	DataLicense         string `json:"data_license"`
	FormNumber          string `json:"form_number"`
	FormNumberSuspended string `json:"form_number_suspended"`
	FormNumberStart     string `json:"form_number_start"`
	FormNumberStop      string `json:"form_number_stop"`
	DataAddress         string `json:"data_address"`
	FormNumberData      string `json:"form_number_data"`
}

func (d DetailsDTO) toDomain() license.Details {
	return license.Details(d)
}

// ItemInput is the body of license create and update
type ItemInput struct {
	DetailsDTO
	RegionID   uuid.UUID  `json:"region_id" binding:"required"`
	QuantityID *uuid.UUID `json:"quantity_id"`
	IsActive   *bool      `json:"is_active"`
}

// ItemDTO represents a license registry item
type ItemDTO struct {
	ID uuid.UUID `json:"id"`
	DetailsDTO
	RegionID   uuid.UUID  `json:"region_id"`
	QuantityID *uuid.UUID `json:"quantity_id,omitempty"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ToItemDTO converts a domain license
func ToItemDTO(l *license.License) ItemDTO {
	return ItemDTO{
		ID:         l.ID,
		DetailsDTO: DetailsDTO(l.Details),
		RegionID:   l.RegionID,
		QuantityID: l.QuantityID,
		IsActive:   l.IsActive,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

// ListItemsInput narrows and pages the registry
type ListItemsInput struct {
	shared.Filter
	RegionID *uuid.UUID
	Active   *bool
}

// ItemList is a page of license items
type ItemList = shared.Paginated[ItemDTO]

// UploadFile is an uploaded attachment
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// AttachmentDTO represents a stored license file
type AttachmentDTO struct {
	ID          uuid.UUID `json:"id"`
	LicenseID   uuid.UUID `json:"license_id"`
	FileName    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}
