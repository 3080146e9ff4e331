package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tsvs/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User aggregate
type UserModel struct {
	AggregateModel
	Name         string           `gorm:"type:varchar(100);not null"`
	Surname      string           `gorm:"type:varchar(100);not null"`
	MiddleName   string           `gorm:"type:varchar(100)"`
	BirthYear    *time.Time       `gorm:"type:date"`
	Email        string           `gorm:"type:varchar(255);not null;uniqueIndex"`
	INN          *int64           `gorm:"column:inn"`
	Avatar       string           `gorm:"type:varchar(500)"`
	JobTitle     string           `gorm:"type:varchar(255)"`
	PasswordHash string           `gorm:"type:varchar(255);not null"`
	Roles        identity.RoleSet `gorm:"type:text;not null"`
	IsActive     bool             `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		Surname:           m.Surname,
		MiddleName:        m.MiddleName,
		BirthYear:         m.BirthYear,
		Email:             m.Email,
		INN:               m.INN,
		Avatar:            m.Avatar,
		JobTitle:          m.JobTitle,
		PasswordHash:      m.PasswordHash,
		Roles:             identity.NewRoleSet(m.Roles...),
		IsActive:          m.IsActive,
	}
}

// UserModelFromDomain creates a persistence model from a domain User
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Name:         u.Name,
		Surname:      u.Surname,
		MiddleName:   u.MiddleName,
		BirthYear:    u.BirthYear,
		Email:        u.Email,
		INN:          u.INN,
		Avatar:       u.Avatar,
		JobTitle:     u.JobTitle,
		PasswordHash: u.PasswordHash,
		Roles:        u.Roles,
		IsActive:     u.IsActive,
	}
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	return m
}

// ActionHistoryModel is an append-only audit row for user changes
type ActionHistoryModel struct {
	ID        uuid.UUID              `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID              `gorm:"type:uuid;not null;index"`
	ActorID   *uuid.UUID             `gorm:"type:uuid"`
	Name      string                 `gorm:"type:varchar(255);not null"`
	Action    identity.HistoryAction `gorm:"type:varchar(20);not null"`
	Details   string                 `gorm:"type:text"`
	Timestamp time.Time              `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ActionHistoryModel) TableName() string {
	return "user_action_history"
}

// ToDomain converts the model to a domain ActionHistory
func (m *ActionHistoryModel) ToDomain() *identity.ActionHistory {
	return &identity.ActionHistory{
		ID:        m.ID,
		UserID:    m.UserID,
		ActorID:   m.ActorID,
		Name:      m.Name,
		Action:    m.Action,
		Details:   m.Details,
		Timestamp: m.Timestamp.UTC(),
	}
}

// ActionHistoryModelFromDomain creates a model from a domain ActionHistory
func ActionHistoryModelFromDomain(h *identity.ActionHistory) *ActionHistoryModel {
	return &ActionHistoryModel{
		ID:        h.ID,
		UserID:    h.UserID,
		ActorID:   h.ActorID,
		Name:      h.Name,
		Action:    h.Action,
		Details:   h.Details,
		Timestamp: h.Timestamp,
	}
}
