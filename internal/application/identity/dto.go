package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/tsvs/backend/internal/domain/identity"
)

// ProfileInput carries the editable personal fields of an account
type ProfileInput struct {
	Name       string     `json:"name"`
	Surname    string     `json:"surname"`
	MiddleName string     `json:"middle_name"`
	BirthYear  *time.Time `json:"birth_year"`
	Email      string     `json:"email"`
	INN        *int64     `json:"inn"`
	Avatar     string     `json:"avatar"`
	JobTitle   string     `json:"job_title"`
}

func (p ProfileInput) toDomain() identity.Profile {
	return identity.Profile{
		Name:       p.Name,
		Surname:    p.Surname,
		MiddleName: p.MiddleName,
		BirthYear:  p.BirthYear,
		Email:      p.Email,
		INN:        p.INN,
		Avatar:     p.Avatar,
		JobTitle:   p.JobTitle,
	}
}

// CreateUserInput contains input for registering a user.
// Requested roles are not accepted: every new account starts as ROLE_PORTAL_USER.
type CreateUserInput struct {
	ProfileInput
	Password string `json:"password"`
}

// UpdateUserInput contains input for editing a user.
// IsActive is required; only the admin tier may change it.
type UpdateUserInput struct {
	ID       uuid.UUID
	ActorID  uuid.UUID
	Profile  ProfileInput
	IsActive *bool
}

// ResetPasswordInput contains input for resetting a password
type ResetPasswordInput struct {
	ID              uuid.UUID
	ActorID         uuid.UUID
	NewPassword     string
	ConfirmPassword string
}

// UserDTO represents user data transfer object
type UserDTO struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Surname    string     `json:"surname"`
	MiddleName string     `json:"middle_name,omitempty"`
	BirthYear  *time.Time `json:"birth_year,omitempty"`
	Email      string     `json:"email"`
	INN        *int64     `json:"inn,omitempty"`
	Avatar     string     `json:"avatar,omitempty"`
	JobTitle   string     `json:"job_title,omitempty"`
	Roles      []string   `json:"roles"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ToUserDTO converts a domain user to its DTO
func ToUserDTO(u *identity.User) UserDTO {
	return UserDTO{
		ID:         u.ID,
		Name:       u.Name,
		Surname:    u.Surname,
		MiddleName: u.MiddleName,
		BirthYear:  u.BirthYear,
		Email:      u.Email,
		INN:        u.INN,
		Avatar:     u.Avatar,
		JobTitle:   u.JobTitle,
		Roles:      u.Roles.Strings(),
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// ToUserDTOs converts a slice of domain users
func ToUserDTOs(users []*identity.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = ToUserDTO(u)
	}
	return dtos
}

// DeletedUserResult is returned by delete and disable
type DeletedUserResult struct {
	DeletedUserID uuid.UUID `json:"deleted_user_id"`
}

// PasswordResetResult is returned by a password reset
type PasswordResetResult struct {
	UpdatedUserID uuid.UUID `json:"updated_user_id"`
	Message       string    `json:"message"`
}

// PrivilegeResult is returned by admin grant and revoke
type PrivilegeResult struct {
	UserID  uuid.UUID `json:"user_id"`
	Roles   []string  `json:"roles"`
	Message string    `json:"message"`
}

// HistoryDTO is a single audit row
type HistoryDTO struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	ActorID   *uuid.UUID `json:"actor_id,omitempty"`
	Name      string     `json:"name"`
	Action    string     `json:"action"`
	Details   string     `json:"details,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

func toHistoryDTOs(rows []*identity.ActionHistory) []HistoryDTO {
	dtos := make([]HistoryDTO, len(rows))
	for i, h := range rows {
		dtos[i] = HistoryDTO{
			ID:        h.ID,
			UserID:    h.UserID,
			ActorID:   h.ActorID,
			Name:      h.Name,
			Action:    string(h.Action),
			Details:   h.Details,
			Timestamp: h.Timestamp,
		}
	}
	return dtos
}

// LoginInput contains the input for user login
type LoginInput struct {
	Username string // email
	Password string
}

// LoginResult contains the issued access token
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// LogoutInput identifies the token being revoked
type LogoutInput struct {
	UserID   uuid.UUID
	TokenJTI string
	TTL      time.Duration // remaining token lifetime
}

// MeResult describes the authenticated caller
type MeResult struct {
	Message   string   `json:"message"`
	UserEmail string   `json:"user_email"`
	UserRole  []string `json:"user_role"`
}
