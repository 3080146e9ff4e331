package models

import (
	"github.com/google/uuid"

	"github.com/tsvs/backend/internal/domain/license"
)

// LookupModel holds the columns shared by license_regions and school_quantities
type LookupModel struct {
	AggregateModel
	Name     string `gorm:"type:varchar(255);not null;uniqueIndex"`
	IsActive bool   `gorm:"not null;default:true"`
}

// ToDomain converts the model to a domain Lookup of the given kind
func (m *LookupModel) ToDomain(kind license.LookupKind) *license.Lookup {
	return &license.Lookup{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Kind:              kind,
		Name:              m.Name,
		IsActive:          m.IsActive,
	}
}

// LookupModelFromDomain creates a model from a domain Lookup
func LookupModelFromDomain(l *license.Lookup) LookupModel {
	m := LookupModel{Name: l.Name, IsActive: l.IsActive}
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	return m
}

// LicenseRegionModel maps license_regions
type LicenseRegionModel struct {
	LookupModel
}

// TableName returns the table name for GORM
func (LicenseRegionModel) TableName() string {
	return "license_regions"
}

// SchoolQuantityModel maps school_quantities
type SchoolQuantityModel struct {
	LookupModel
}

// TableName returns the table name for GORM
func (SchoolQuantityModel) TableName() string {
	return "school_quantities"
}

// LookupTable returns the table backing a lookup kind
func LookupTable(kind license.LookupKind) string {
	if kind == license.LookupQuantity {
		return SchoolQuantityModel{}.TableName()
	}
	return LicenseRegionModel{}.TableName()
}

// LicenseModel maps licenses
type LicenseModel struct {
	AggregateModel
	NumberRegister      string     `gorm:"type:varchar(255)"`
	NameEntity          string     `gorm:"type:varchar(500);not null"`
	TaxName             string     `gorm:"type:varchar(255)"`
	EntityAddress       string     `gorm:"type:text"`
	AddressProgram      string     `gorm:"type:text"`
	Cipher              string     `gorm:"type:varchar(255)"`
	TitleSchool         string     `gorm:"type:varchar(500)"`
	QuantitySchool      string     `gorm:"type:varchar(255)"`
	FormsEducation      string     `gorm:"type:varchar(255)"`
	FullName            string     `gorm:"type:varchar(500);not null"`
	ContractNumber      string     `gorm:"type:varchar(255);not null"`
	IssuingLicense      string     `gorm:"type:varchar(255)"`
	DataLicense         string     `gorm:"type:varchar(255)"`
	FormNumber          string     `gorm:"type:varchar(255)"`
	FormNumberSuspended string     `gorm:"type:varchar(255)"`
	FormNumberStart     string     `gorm:"type:varchar(255)"`
	FormNumberStop      string     `gorm:"type:varchar(255)"`
	DataAddress         string     `gorm:"type:text"`
	FormNumberData      string     `gorm:"type:varchar(255)"`
	IsActive            bool       `gorm:"not null;default:true;index"`
	RegionID            uuid.UUID  `gorm:"type:uuid;not null;index"`
	QuantityID          *uuid.UUID `gorm:"type:uuid;index"`

	Region   *LicenseRegionModel  `gorm:"foreignKey:RegionID;constraint:OnDelete:RESTRICT"`
	Quantity *SchoolQuantityModel `gorm:"foreignKey:QuantityID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for GORM
func (LicenseModel) TableName() string {
	return "licenses"
}

// ToDomain converts the model to a domain License
func (m *LicenseModel) ToDomain() *license.License {
	return &license.License{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Details: license.Details{
			NumberRegister:      m.NumberRegister,
			NameEntity:          m.NameEntity,
			TaxName:             m.TaxName,
			EntityAddress:       m.EntityAddress,
			AddressProgram:      m.AddressProgram,
			Cipher:              m.Cipher,
			TitleSchool:         m.TitleSchool,
			QuantitySchool:      m.QuantitySchool,
			FormsEducation:      m.FormsEducation,
			FullName:            m.FullName,
			ContractNumber:      m.ContractNumber,
			IssuingLicense:      m.IssuingLicense,
			DataLicense:         m.DataLicense,
			FormNumber:          m.FormNumber,
			FormNumberSuspended: m.FormNumberSuspended,
			FormNumberStart:     m.FormNumberStart,
			FormNumberStop:      m.FormNumberStop,
			DataAddress:         m.DataAddress,
			FormNumberData:      m.FormNumberData,
		},
		RegionID:   m.RegionID,
		QuantityID: m.QuantityID,
		IsActive:   m.IsActive,
	}
}

// LicenseModelFromDomain creates a model from a domain License
func LicenseModelFromDomain(l *license.License) *LicenseModel {
	d := l.Details
	m := &LicenseModel{
		NumberRegister:      d.NumberRegister,
		NameEntity:          d.NameEntity,
		TaxName:             d.TaxName,
		EntityAddress:       d.EntityAddress,
		AddressProgram:      d.AddressProgram,
		Cipher:              d.Cipher,
		TitleSchool:         d.TitleSchool,
		QuantitySchool:      d.QuantitySchool,
		FormsEducation:      d.FormsEducation,
		FullName:            d.FullName,
		ContractNumber:      d.ContractNumber,
		IssuingLicense:      d.IssuingLicense,
		DataLicense:         d.DataLicense,
		FormNumber:          d.FormNumber,
		FormNumberSuspended: d.FormNumberSuspended,
		FormNumberStart:     d.FormNumberStart,
		FormNumberStop:      d.FormNumberStop,
		DataAddress:         d.DataAddress,
		FormNumberData:      d.FormNumberData,
		IsActive:            l.IsActive,
		RegionID:            l.RegionID,
		QuantityID:          l.QuantityID,
	}
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	return m
}

// AttachmentModel maps license_files
type AttachmentModel struct {
	BaseModel
	LicenseID   uuid.UUID `gorm:"type:uuid;not null;index"`
	FileName    string    `gorm:"column:filename;type:varchar(255);not null;uniqueIndex"`
	StorageKey  string    `gorm:"type:varchar(1000);not null"`
	ContentType string    `gorm:"type:varchar(255);not null"`
	Size        int64     `gorm:"not null"`

	License *LicenseModel `gorm:"foreignKey:LicenseID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (AttachmentModel) TableName() string {
	return "license_files"
}

// ToDomain converts the model to a domain Attachment
func (m *AttachmentModel) ToDomain() *license.Attachment {
	return &license.Attachment{
		BaseEntity:  m.BaseModel.ToDomain(),
		LicenseID:   m.LicenseID,
		FileName:    m.FileName,
		StorageKey:  m.StorageKey,
		ContentType: m.ContentType,
		Size:        m.Size,
	}
}

// AttachmentModelFromDomain creates a model from a domain Attachment
func AttachmentModelFromDomain(a *license.Attachment) *AttachmentModel {
	m := &AttachmentModel{
		LicenseID:   a.LicenseID,
		FileName:    a.FileName,
		StorageKey:  a.StorageKey,
		ContentType: a.ContentType,
		Size:        a.Size,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}
