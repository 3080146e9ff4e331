package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tsvs/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"
)

// Password cost for bcrypt
const bcryptCost = 12

const minPasswordLength = 6

var (
	personNameRegex = regexp.MustCompile(`^[a-zA-Z а-яА-ЯёЁ\-]+$`)
	emailRegex      = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// User represents a portal account.
// It is the aggregate root for account, credential and privilege changes.
type User struct {
	shared.BaseAggregateRoot
	Name         string
	Surname      string
	MiddleName   string
	BirthYear    *time.Time
	Email        string
	INN          *int64
	Avatar       string
	JobTitle     string
	PasswordHash string
	Roles        RoleSet
	IsActive     bool
}

// Profile holds the editable personal fields of a user
type Profile struct {
	Name       string
	Surname    string
	MiddleName string
	BirthYear  *time.Time
	Email      string
	INN        *int64
	Avatar     string
	JobTitle   string
}

// NewUser creates an active portal user holding ROLE_PORTAL_USER.
// actorID is uuid.Nil for self-registration.
func NewUser(profile Profile, password string, actorID uuid.UUID) (*User, error) {
	profile, err := normalizeProfile(profile)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PasswordHash:      passwordHash,
		Roles:             NewRoleSet(RolePortalUser),
		IsActive:          true,
	}
	user.applyProfile(profile)

	user.AddDomainEvent(NewUserCreatedEvent(user, actorID))

	return user, nil
}

// UpdateProfile replaces the personal fields and the activity flag
func (u *User) UpdateProfile(profile Profile, isActive bool, actorID uuid.UUID) error {
	profile, err := normalizeProfile(profile)
	if err != nil {
		return err
	}

	u.applyProfile(profile)
	u.IsActive = isActive
	u.Touch()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserUpdatedEvent(u, actorID))
	return nil
}

// SetPassword sets a new password (admin or self reset, no old password check)
func (u *User) SetPassword(newPassword string, actorID uuid.UUID) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.Touch()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserPasswordResetEvent(u, actorID))
	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// Deactivate clears the activity flag
func (u *User) Deactivate(actorID uuid.UUID) error {
	if !u.IsActive {
		return shared.NewDomainError("ALREADY_DISABLED", "User is already disabled")
	}

	u.IsActive = false
	u.Touch()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserDeactivatedEvent(u, actorID))
	return nil
}

// GrantAdmin adds ROLE_PORTAL_ADMIN
func (u *User) GrantAdmin(actorID uuid.UUID) error {
	if u.IsAdmin() || u.IsSuperAdmin() {
		return shared.NewDomainError("ALREADY_ADMIN", "User is already promoted to admin / superadmin")
	}

	u.Roles = u.Roles.With(RolePortalAdmin)
	u.Touch()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserRolesChangedEvent(u, actorID, EventTypeUserAdminGranted))
	return nil
}

// RevokeAdmin removes ROLE_PORTAL_ADMIN
func (u *User) RevokeAdmin(actorID uuid.UUID) error {
	if !u.IsAdmin() {
		return shared.NewDomainError("NOT_ADMIN", "User has no admin privileges")
	}

	u.Roles = u.Roles.Without(RolePortalAdmin)
	u.Touch()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserRolesChangedEvent(u, actorID, EventTypeUserAdminRevoked))
	return nil
}

// PromoteToSuperAdmin grants every tier. Used only when seeding the first account.
func (u *User) PromoteToSuperAdmin() {
	u.Roles = NewRoleSet(RolePortalUser, RolePortalAdmin, RolePortalSuperAdmin)
	u.Touch()
}

// HasRole reports whether the user holds the role
func (u *User) HasRole(role PortalRole) bool {
	return u.Roles.Has(role)
}

// IsAdmin reports whether the user holds ROLE_PORTAL_ADMIN
func (u *User) IsAdmin() bool {
	return u.Roles.Has(RolePortalAdmin)
}

// IsSuperAdmin reports whether the user holds ROLE_PORTAL_SUPERADMIN
func (u *User) IsSuperAdmin() bool {
	return u.Roles.Has(RolePortalSuperAdmin)
}

// CanLogin reports whether the account may authenticate
func (u *User) CanLogin() bool {
	return u.IsActive
}

// FullName joins surname, name and middle name
func (u *User) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{u.Surname, u.Name, u.MiddleName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

func (u *User) applyProfile(p Profile) {
	u.Name = p.Name
	u.Surname = p.Surname
	u.MiddleName = p.MiddleName
	u.BirthYear = p.BirthYear
	u.Email = p.Email
	u.INN = p.INN
	u.Avatar = p.Avatar
	u.JobTitle = p.JobTitle
}

// Validation functions

func normalizeProfile(p Profile) (Profile, error) {
	p.Name = normalizePersonName(p.Name)
	p.Surname = normalizePersonName(p.Surname)
	p.MiddleName = normalizePersonName(p.MiddleName)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Avatar = strings.TrimSpace(p.Avatar)
	p.JobTitle = strings.TrimSpace(p.JobTitle)

	if err := validatePersonName("INVALID_NAME", "Name", p.Name); err != nil {
		return p, err
	}
	if err := validatePersonName("INVALID_SURNAME", "Surname", p.Surname); err != nil {
		return p, err
	}
	if p.MiddleName != "" {
		if err := validatePersonName("INVALID_MIDDLE_NAME", "Middle name", p.MiddleName); err != nil {
			return p, err
		}
	}
	if err := validateEmail(p.Email); err != nil {
		return p, err
	}
	if p.INN != nil && *p.INN < 0 {
		return p, shared.NewDomainError("INVALID_INN", "INN cannot be negative")
	}
	if len(p.Avatar) > 500 {
		return p, shared.NewDomainError("INVALID_AVATAR", "Avatar cannot exceed 500 characters")
	}
	if len(p.JobTitle) > 200 {
		return p, shared.NewDomainError("INVALID_JOB_TITLE", "Job title cannot exceed 200 characters")
	}
	return p, nil
}

// normalizePersonName composes combining marks so that a decomposed "й" matches the letter class
func normalizePersonName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// IsPersonName reports whether s is usable as a name or surname: letters, spaces and hyphens
func IsPersonName(s string) bool {
	return personNameRegex.MatchString(normalizePersonName(s))
}

func validatePersonName(code, field, value string) error {
	if value == "" {
		return shared.NewDomainError(code, field+" cannot be empty")
	}
	if len([]rune(value)) > 100 {
		return shared.NewDomainError(code, field+" cannot exceed 100 characters")
	}
	if !personNameRegex.MatchString(value) {
		return shared.NewDomainError(code, field+" should contain only letters")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < minPasswordLength {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 6 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 bytes")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
