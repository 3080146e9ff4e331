package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/tsvs/backend/internal/domain/identity"
	"github.com/tsvs/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AdminService grants and revokes the admin tier.
// Only a superadmin may change privileges, and never their own.
type AdminService struct {
	userRepo       identity.UserRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(userRepo identity.UserRepository, eventPublisher shared.EventPublisher, logger *zap.Logger) *AdminService {
	if eventPublisher == nil {
		eventPublisher = shared.NopPublisher{}
	}
	return &AdminService{
		userRepo:       userRepo,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// GrantAdmin adds ROLE_PORTAL_ADMIN to the target user
func (s *AdminService) GrantAdmin(ctx context.Context, targetID, actorID uuid.UUID) (*PrivilegeResult, error) {
	user, err := s.prepare(ctx, targetID, actorID)
	if err != nil {
		return nil, err
	}
	if err := user.GrantAdmin(actorID); err != nil {
		return nil, err
	}
	if err := s.save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Admin privilege granted",
		zap.String("user_id", user.ID.String()),
		zap.String("actor_id", actorID.String()))
	return &PrivilegeResult{
		UserID:  user.ID,
		Roles:   user.Roles.Strings(),
		Message: "Admin privilege granted",
	}, nil
}

// RevokeAdmin removes ROLE_PORTAL_ADMIN from the target user
func (s *AdminService) RevokeAdmin(ctx context.Context, targetID, actorID uuid.UUID) (*PrivilegeResult, error) {
	user, err := s.prepare(ctx, targetID, actorID)
	if err != nil {
		return nil, err
	}
	if err := user.RevokeAdmin(actorID); err != nil {
		return nil, err
	}
	if err := s.save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Admin privilege revoked",
		zap.String("user_id", user.ID.String()),
		zap.String("actor_id", actorID.String()))
	return &PrivilegeResult{
		UserID:  user.ID,
		Roles:   user.Roles.Strings(),
		Message: "Admin privilege revoked",
	}, nil
}

func (s *AdminService) prepare(ctx context.Context, targetID, actorID uuid.UUID) (*identity.User, error) {
	actor, err := loadActor(ctx, s.userRepo, actorID, s.logger)
	if err != nil {
		return nil, err
	}
	if !actor.IsSuperAdmin() {
		return nil, errNotEnoughPermissions
	}
	if targetID == actorID {
		return nil, shared.NewDomainError("CANNOT_MODIFY_SELF", "You cannot change your own privileges")
	}

	user, err := s.userRepo.FindActiveByID(ctx, targetID)
	if err != nil {
		return nil, userNotFoundOr(err, "Failed to load user", s.logger)
	}
	return user, nil
}

func (s *AdminService) save(ctx context.Context, user *identity.User) error {
	if err := s.userRepo.Update(ctx, user); err != nil {
		return userNotFoundOr(err, "Failed to update user roles", s.logger)
	}
	publishEvents(ctx, s.eventPublisher, user.PullDomainEvents(), s.logger)
	return nil
}
