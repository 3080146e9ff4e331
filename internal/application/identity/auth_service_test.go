package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tsvs/backend/internal/domain/identity"
	"github.com/tsvs/backend/internal/domain/shared"
	"github.com/tsvs/backend/internal/infrastructure/auth"
	"github.com/tsvs/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-that-is-long-enough",
		AccessTokenExpiration: 30 * time.Minute,
		Issuer:                "tsvs-test",
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	jwtService := newTestJWTService()

	t.Run("issues bearer token", func(t *testing.T) {
		users := new(MockUserRepository)
		service := NewAuthService(users, jwtService, auth.NewInMemoryTokenBlacklist(), nil, zap.NewNop())
		user := newUser(t, "user@example.com", identity.RolePortalUser, identity.RolePortalAdmin)
		users.On("FindByEmail", ctx, "user@example.com").Return(user, nil)

		result, err := service.Login(ctx, LoginInput{Username: "user@example.com", Password: "secret1"})

		require.NoError(t, err)
		assert.Equal(t, "bearer", result.TokenType)
		assert.Equal(t, int64(1800), result.ExpiresIn)

		claims, err := jwtService.ValidateAccessToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", claims.Subject)
		assert.Equal(t, user.ID.String(), claims.UserID)
		assert.ElementsMatch(t, []string{"ROLE_PORTAL_USER", "ROLE_PORTAL_ADMIN"}, claims.Roles)
	})

	tests := []struct {
		name  string
		setup func(users *MockUserRepository)
	}{
		{
			name: "unknown email",
			setup: func(users *MockUserRepository) {
				users.On("FindByEmail", ctx, "user@example.com").Return(nil, shared.ErrNotFound)
			},
		},
		{
			name: "wrong password",
			setup: func(users *MockUserRepository) {
				user := newUser(t, "user@example.com")
				require.NoError(t, user.SetPassword("different1", user.ID))
				users.On("FindByEmail", ctx, "user@example.com").Return(user, nil)
			},
		},
		{
			name: "inactive account",
			setup: func(users *MockUserRepository) {
				user := newUser(t, "user@example.com")
				user.IsActive = false
				users.On("FindByEmail", ctx, "user@example.com").Return(user, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+" is rejected with the same error", func(t *testing.T) {
			users := new(MockUserRepository)
			tt.setup(users)
			service := NewAuthService(users, jwtService, nil, nil, zap.NewNop())

			_, err := service.Login(ctx, LoginInput{Username: "user@example.com", Password: "secret1"})

			require.Error(t, err)
			assert.Equal(t, "INVALID_CREDENTIALS", shared.CodeOf(err))
			assert.Equal(t, "Incorrect username or password", err.Error())
		})
	}

	t.Run("repository failure is internal", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByEmail", ctx, "user@example.com").Return(nil, errors.New("db down"))
		service := NewAuthService(users, jwtService, nil, nil, zap.NewNop())

		_, err := service.Login(ctx, LoginInput{Username: "user@example.com", Password: "secret1"})

		assert.Equal(t, "INTERNAL_ERROR", shared.CodeOf(err))
	})
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	service := NewAuthService(users, newTestJWTService(), nil, nil, zap.NewNop())
	user := newUser(t, "user@example.com")
	users.On("FindActiveByID", ctx, user.ID).Return(user, nil)

	result, err := service.Me(ctx, user.ID)

	require.NoError(t, err)
	assert.Equal(t, "user@example.com", result.UserEmail)
	assert.Equal(t, []string{"ROLE_PORTAL_USER"}, result.UserRole)
	assert.Contains(t, result.Message, "Иванова Анна")
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	blacklist := auth.NewInMemoryTokenBlacklist()
	service := NewAuthService(new(MockUserRepository), newTestJWTService(), blacklist, nil, zap.NewNop())

	err := service.Logout(ctx, LogoutInput{UserID: uuid.New(), TokenJTI: "jti-1", TTL: time.Minute})
	require.NoError(t, err)

	revoked, err := blacklist.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	t.Run("expired token is a no-op", func(t *testing.T) {
		require.NoError(t, service.Logout(ctx, LogoutInput{TokenJTI: "jti-2"}))
		revoked, err := blacklist.IsBlacklisted(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}

func TestAuthService_Bootstrap(t *testing.T) {
	ctx := context.Background()
	cfg := config.BootstrapConfig{SuperAdminEmail: "root@example.com", SuperAdminPassword: "rootpass"}

	t.Run("seeds superadmin into an empty table", func(t *testing.T) {
		users := new(MockUserRepository)
		events := &recordingPublisher{}
		service := NewAuthService(users, newTestJWTService(), nil, events, zap.NewNop())
		users.On("Count", ctx).Return(int64(0), nil)
		users.On("Create", ctx, mock.MatchedBy(func(u *identity.User) bool {
			return u.Email == "root@example.com" && u.IsSuperAdmin() && u.IsAdmin()
		})).Return(nil)

		require.NoError(t, service.Bootstrap(ctx, cfg))

		users.AssertExpectations(t)
		assert.Equal(t, []string{identity.EventTypeUserCreated}, events.types())
	})

	t.Run("skips when users exist", func(t *testing.T) {
		users := new(MockUserRepository)
		service := NewAuthService(users, newTestJWTService(), nil, nil, zap.NewNop())
		users.On("Count", ctx).Return(int64(3), nil)

		require.NoError(t, service.Bootstrap(ctx, cfg))

		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("does nothing without configured email", func(t *testing.T) {
		users := new(MockUserRepository)
		service := NewAuthService(users, newTestJWTService(), nil, nil, zap.NewNop())

		require.NoError(t, service.Bootstrap(ctx, config.BootstrapConfig{}))

		users.AssertNotCalled(t, "Count", mock.Anything)
	})
}
