package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tsvs/backend/internal/domain/identity"
	"github.com/tsvs/backend/internal/domain/shared"
	"github.com/tsvs/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// DefaultHistoryLimit caps the rows returned by History
const DefaultHistoryLimit = 100

// UserService handles user management operations
type UserService struct {
	userRepo       identity.UserRepository
	historyRepo    identity.ActionHistoryRepository
	blacklist      auth.TokenBlacklist
	eventPublisher shared.EventPublisher
	tokenTTL       time.Duration
	logger         *zap.Logger
}

// NewUserService creates a new user service.
// tokenTTL is the access token lifetime, used when revoking a user's tokens.
func NewUserService(
	userRepo identity.UserRepository,
	historyRepo identity.ActionHistoryRepository,
	blacklist auth.TokenBlacklist,
	eventPublisher shared.EventPublisher,
	tokenTTL time.Duration,
	logger *zap.Logger,
) *UserService {
	if eventPublisher == nil {
		eventPublisher = shared.NopPublisher{}
	}
	return &UserService{
		userRepo:       userRepo,
		historyRepo:    historyRepo,
		blacklist:      blacklist,
		eventPublisher: eventPublisher,
		tokenTTL:       tokenTTL,
		logger:         logger,
	}
}

// Create registers a new portal user
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	s.logger.Info("Creating new user", zap.String("email", input.Email))

	user, err := identity.NewUser(input.ProfileInput.toDomain(), input.Password, uuid.Nil)
	if err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		s.logger.Error("Failed to check email existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check email availability")
	}
	if exists {
		return nil, errEmailExists
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, errEmailExists
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create user")
	}

	s.publish(ctx, user.PullDomainEvents()...)

	s.logger.Info("User created", zap.String("user_id", user.ID.String()))
	dto := ToUserDTO(user)
	return &dto, nil
}

// ListAll returns every user, active or not
func (s *UserService) ListAll(ctx context.Context, keyword string) ([]UserDTO, error) {
	return s.list(ctx, identity.NewUserFilter().WithKeyword(keyword))
}

// ListActive returns active users only
func (s *UserService) ListActive(ctx context.Context, keyword string) ([]UserDTO, error) {
	return s.list(ctx, identity.NewUserFilter().WithKeyword(keyword).OnlyActive())
}

func (s *UserService) list(ctx context.Context, filter identity.UserFilter) ([]UserDTO, error) {
	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users")
	}
	if len(users) == 0 {
		return nil, shared.NewDomainError("USERS_NOT_FOUND", "No users found")
	}
	return ToUserDTOs(users), nil
}

// GetByID returns an active user
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.userRepo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, s.notFoundOr(err, "Failed to load user")
	}
	dto := ToUserDTO(user)
	return &dto, nil
}

// Update edits the profile and activity flag of a user
func (s *UserService) Update(ctx context.Context, input UpdateUserInput) (*UserDTO, error) {
	if input.IsActive == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "is_active is required")
	}
	actor, err := s.loadActor(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, s.notFoundOr(err, "Failed to load user")
	}
	if !identity.CanManage(user, actor) {
		return nil, errNotEnoughPermissions
	}

	wasActive := user.IsActive
	if *input.IsActive != wasActive && !identity.CanAdminister(actor) {
		return nil, errNotEnoughPermissions
	}

	previousEmail := user.Email
	if err := user.UpdateProfile(input.Profile.toDomain(), *input.IsActive, actor.ID); err != nil {
		return nil, err
	}

	if user.Email != previousEmail {
		exists, err := s.userRepo.ExistsByEmail(ctx, user.Email)
		if err != nil {
			s.logger.Error("Failed to check email existence", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check email availability")
		}
		if exists {
			return nil, errEmailExists
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, errEmailExists
		}
		return nil, s.notFoundOr(err, "Failed to update user")
	}
	if wasActive && !user.IsActive {
		s.revokeTokens(ctx, user.ID, revokeThroughNow())
	}

	s.publish(ctx, user.PullDomainEvents()...)

	s.logger.Info("User updated",
		zap.String("user_id", user.ID.String()),
		zap.String("actor_id", actor.ID.String()))
	dto := ToUserDTO(user)
	return &dto, nil
}

// Delete soft-deletes an active user
func (s *UserService) Delete(ctx context.Context, id, actorID uuid.UUID) (*DeletedUserResult, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, s.notFoundOr(err, "Failed to load user")
	}
	if !identity.CanManage(user, actor) {
		return nil, errNotEnoughPermissions
	}

	deletedID, err := s.userRepo.SoftDelete(ctx, id)
	if err != nil {
		return nil, s.notFoundOr(err, "Failed to delete user")
	}
	user.IsActive = false
	s.revokeTokens(ctx, user.ID, revokeThroughNow())

	s.publish(ctx, identity.NewUserDeletedEvent(user, actor.ID))

	s.logger.Info("User deleted",
		zap.String("user_id", deletedID.String()),
		zap.String("actor_id", actor.ID.String()))
	return &DeletedUserResult{DeletedUserID: deletedID}, nil
}

// Disable deactivates a user. The caller must hold the admin tier.
func (s *UserService) Disable(ctx context.Context, id, actorID uuid.UUID) (*DeletedUserResult, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !identity.CanAdminister(actor) {
		return nil, errNotEnoughPermissions
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, s.notFoundOr(err, "Failed to load user")
	}
	if user.IsSuperAdmin() && !actor.IsSuperAdmin() {
		return nil, errNotEnoughPermissions
	}
	if err := user.Deactivate(actor.ID); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, s.notFoundOr(err, "Failed to disable user")
	}
	s.revokeTokens(ctx, user.ID, revokeThroughNow())

	s.publish(ctx, user.PullDomainEvents()...)

	s.logger.Info("User disabled",
		zap.String("user_id", user.ID.String()),
		zap.String("actor_id", actor.ID.String()))
	return &DeletedUserResult{DeletedUserID: user.ID}, nil
}

// ResetPassword replaces the password of a user and revokes their issued tokens
func (s *UserService) ResetPassword(ctx context.Context, input ResetPasswordInput) (*PasswordResetResult, error) {
	if input.NewPassword != input.ConfirmPassword {
		return nil, shared.NewDomainError("PASSWORD_MISMATCH", "New password and confirmation do not match")
	}

	actor, err := s.loadActor(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, s.notFoundOr(err, "Failed to load user")
	}
	if !identity.CanManage(user, actor) {
		return nil, errNotEnoughPermissions
	}

	if err := user.SetPassword(input.NewPassword, actor.ID); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, s.notFoundOr(err, "Failed to reset password")
	}

	// Tokens from the current second survive, so the user can log in again right away
	s.revokeTokens(ctx, user.ID, time.Now())

	s.publish(ctx, user.PullDomainEvents()...)

	s.logger.Info("Password reset",
		zap.String("user_id", user.ID.String()),
		zap.String("actor_id", actor.ID.String()))
	return &PasswordResetResult{
		UpdatedUserID: user.ID,
		Message:       "Password updated successfully",
	}, nil
}

// History returns the audit trail of a user, newest first
func (s *UserService) History(ctx context.Context, id, actorID uuid.UUID) ([]HistoryDTO, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !identity.CanAdminister(actor) {
		return nil, errNotEnoughPermissions
	}
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return nil, s.notFoundOr(err, "Failed to load user")
	}

	rows, err := s.historyRepo.FindByUserID(ctx, id, DefaultHistoryLimit)
	if err != nil {
		s.logger.Error("Failed to load user history", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load user history")
	}
	return toHistoryDTOs(rows), nil
}

// revokeTokens invalidates the user's tokens issued before issuedBefore.
// A failure is logged: the account change itself has already been stored.
func (s *UserService) revokeTokens(ctx context.Context, userID uuid.UUID, issuedBefore time.Time) {
	if s.blacklist == nil {
		return
	}
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), issuedBefore, s.tokenTTL); err != nil {
		s.logger.Warn("Failed to revoke user tokens",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
}

// revokeThroughNow is the cut-off that also covers tokens minted in the current second
func revokeThroughNow() time.Time {
	return time.Now().Truncate(time.Second).Add(time.Second)
}

func (s *UserService) loadActor(ctx context.Context, actorID uuid.UUID) (*identity.User, error) {
	return loadActor(ctx, s.userRepo, actorID, s.logger)
}

func (s *UserService) notFoundOr(err error, message string) error {
	return userNotFoundOr(err, message, s.logger)
}

func (s *UserService) publish(ctx context.Context, events ...shared.DomainEvent) {
	publishEvents(ctx, s.eventPublisher, events, s.logger)
}
