package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tsvs/backend/internal/domain/identity"
	"github.com/tsvs/backend/internal/domain/shared"
	"github.com/tsvs/backend/internal/infrastructure/auth"
	"github.com/tsvs/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo       identity.UserRepository
	jwtService     *auth.JWTService
	blacklist      auth.TokenBlacklist
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *AuthService {
	if eventPublisher == nil {
		eventPublisher = shared.NopPublisher{}
	}
	return &AuthService{
		userRepo:       userRepo,
		jwtService:     jwtService,
		blacklist:      blacklist,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// Login authenticates a user by email and password and issues an access token.
// Unknown, inactive and wrong-password accounts all get the same error.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("username", input.Username))

	user, err := s.userRepo.FindByEmail(ctx, input.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("User not found during login", zap.String("username", input.Username))
			return nil, errInvalidCredentials
		}
		s.logger.Error("Failed to load user during login", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to authenticate")
	}

	if !user.CanLogin() {
		s.logger.Warn("Login attempt for deactivated account", zap.String("username", input.Username))
		return nil, errInvalidCredentials
	}
	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", input.Username))
		return nil, errInvalidCredentials
	}

	token, err := s.jwtService.GenerateAccessToken(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  user.Roles.Strings(),
	})
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate token")
	}

	s.logger.Info("User logged in successfully", zap.String("user_id", user.ID.String()))

	return &LoginResult{
		AccessToken: token.Token,
		TokenType:   "bearer",
		ExpiresIn:   int64(token.ExpiresIn.Seconds()),
	}, nil
}

// Me describes the authenticated caller
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*MeResult, error) {
	user, err := loadActor(ctx, s.userRepo, userID, s.logger)
	if err != nil {
		return nil, err
	}
	return &MeResult{
		Message:   fmt.Sprintf("Hello, %s! This is a protected resource.", user.FullName()),
		UserEmail: user.Email,
		UserRole:  user.Roles.Strings(),
	}, nil
}

// Logout revokes the presented token until it would have expired
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	s.logger.Info("User logout", zap.String("user_id", input.UserID.String()))

	if s.blacklist == nil || input.TokenJTI == "" || input.TTL <= 0 {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, input.TTL); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke token")
	}
	return nil
}

// Bootstrap seeds the first superadmin when the users table is empty.
// It is a no-op when no bootstrap email is configured.
func (s *AuthService) Bootstrap(ctx context.Context, cfg config.BootstrapConfig) error {
	if cfg.SuperAdminEmail == "" {
		return nil
	}

	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		s.logger.Debug("Users exist, skipping superadmin bootstrap")
		return nil
	}

	user, err := identity.NewUser(identity.Profile{
		Name:    "Super",
		Surname: "Admin",
		Email:   cfg.SuperAdminEmail,
	}, cfg.SuperAdminPassword, uuid.Nil)
	if err != nil {
		return fmt.Errorf("build superadmin: %w", err)
	}
	user.PromoteToSuperAdmin()

	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("create superadmin: %w", err)
	}
	publishEvents(ctx, s.eventPublisher, user.PullDomainEvents(), s.logger)

	s.logger.Info("Superadmin account seeded",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))
	return nil
}
