package license

import (
	"strings"

	"github.com/google/uuid"
	"github.com/tsvs/backend/internal/domain/shared"
)

// Details are the registry fields of a license as recorded by the issuing office.
// All fields are free text.
type Details struct {
	NumberRegister      string
	NameEntity          string
	TaxName             string
	EntityAddress       string
	AddressProgram      string
	Cipher              string
	TitleSchool         string
	QuantitySchool      string
	FormsEducation      string
	FullName            string
	ContractNumber      string
	IssuingLicense      string
	DataLicense         string
	FormNumber          string
	FormNumberSuspended string
	FormNumberStart     string
	FormNumberStop      string
	DataAddress         string
	FormNumberData      string
}

// License is an educational license registry item
type License struct {
	shared.BaseAggregateRoot
	Details
	RegionID   uuid.UUID
	QuantityID *uuid.UUID
	IsActive   bool
}

// NewLicense creates an active license
func NewLicense(details Details, regionID uuid.UUID, quantityID *uuid.UUID) (*License, error) {
	if regionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REGION", "Region is required")
	}
	details = trimDetails(details)
	if err := validateDetails(details); err != nil {
		return nil, err
	}
	return &License{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Details:           details,
		RegionID:          regionID,
		QuantityID:        quantityID,
		IsActive:          true,
	}, nil
}

// Update replaces every field of the license
func (l *License) Update(details Details, regionID uuid.UUID, quantityID *uuid.UUID, isActive bool) error {
	if regionID == uuid.Nil {
		return shared.NewDomainError("INVALID_REGION", "Region is required")
	}
	details = trimDetails(details)
	if err := validateDetails(details); err != nil {
		return err
	}
	l.Details = details
	l.RegionID = regionID
	l.QuantityID = quantityID
	l.IsActive = isActive
	l.Touch()
	l.IncrementVersion()
	return nil
}

// Deactivate soft deletes the license
func (l *License) Deactivate() {
	l.IsActive = false
	l.Touch()
	l.IncrementVersion()
}

func validateDetails(d Details) error {
	if d.NameEntity == "" {
		return shared.NewDomainError("INVALID_NAME_ENTITY", "Entity name cannot be empty")
	}
	if d.FullName == "" {
		return shared.NewDomainError("INVALID_FULL_NAME", "Full name cannot be empty")
	}
	if d.ContractNumber == "" {
		return shared.NewDomainError("INVALID_CONTRACT_NUMBER", "Contract number cannot be empty")
	}
	return nil
}

func trimDetails(d Details) Details {
	for _, f := range []*string{
		&d.NumberRegister, &d.NameEntity, &d.TaxName, &d.EntityAddress, &d.AddressProgram,
		&d.Cipher, &d.TitleSchool, &d.QuantitySchool, &d.FormsEducation, &d.FullName,
		&d.ContractNumber, &d.IssuingLicense, &d.DataLicense, &d.FormNumber,
		&d.FormNumberSuspended, &d.FormNumberStart, &d.FormNumberStop, &d.DataAddress,
		&d.FormNumberData,
	} {
		*f = strings.TrimSpace(*f)
	}
	return d
}
