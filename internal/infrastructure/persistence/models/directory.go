package models

import (
	"github.com/tsvs/backend/internal/domain/directory"
)

// DirectoryEntryModel holds the columns shared by the regions and departments tables
type DirectoryEntryModel struct {
	AggregateModel
	Title    string `gorm:"type:varchar(255);not null;uniqueIndex"`
	IsActive bool   `gorm:"not null;default:true"`
}

// ToDomain converts the model to a domain Entry of the given kind
func (m *DirectoryEntryModel) ToDomain(kind directory.Kind) *directory.Entry {
	return &directory.Entry{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Kind:              kind,
		Title:             m.Title,
		IsActive:          m.IsActive,
	}
}

// DirectoryEntryModelFromDomain creates a model from a domain Entry
func DirectoryEntryModelFromDomain(e *directory.Entry) DirectoryEntryModel {
	m := DirectoryEntryModel{Title: e.Title, IsActive: e.IsActive}
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	return m
}

// RegionModel maps the regions table
type RegionModel struct {
	DirectoryEntryModel
}

// TableName returns the table name for GORM
func (RegionModel) TableName() string {
	return "regions"
}

// DepartmentModel maps the departments table
type DepartmentModel struct {
	DirectoryEntryModel
}

// TableName returns the table name for GORM
func (DepartmentModel) TableName() string {
	return "departments"
}

// DirectoryTable returns the table backing a directory kind
func DirectoryTable(kind directory.Kind) string {
	if kind == directory.KindDepartment {
		return DepartmentModel{}.TableName()
	}
	return RegionModel{}.TableName()
}
