package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tsvs/backend/internal/domain/identity"
	"github.com/tsvs/backend/internal/domain/shared"
	"go.uber.org/zap"
)

func TestAdminService_GrantAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("superadmin grants admin", func(t *testing.T) {
		users := new(MockUserRepository)
		events := &recordingPublisher{}
		service := NewAdminService(users, events, zap.NewNop())
		super := newUser(t, "root@example.com", identity.RolePortalSuperAdmin)
		target := newUser(t, "user@example.com")
		users.On("FindActiveByID", ctx, super.ID).Return(super, nil)
		users.On("FindActiveByID", ctx, target.ID).Return(target, nil)
		users.On("Update", ctx, target).Return(nil)

		result, err := service.GrantAdmin(ctx, target.ID, super.ID)

		require.NoError(t, err)
		assert.Contains(t, result.Roles, "ROLE_PORTAL_ADMIN")
		assert.True(t, target.IsAdmin())
		assert.Equal(t, []string{identity.EventTypeUserAdminGranted}, events.types())
	})

	t.Run("admin may not grant", func(t *testing.T) {
		users := new(MockUserRepository)
		service := NewAdminService(users, nil, zap.NewNop())
		admin := newUser(t, "admin@example.com", identity.RolePortalAdmin)
		users.On("FindActiveByID", ctx, admin.ID).Return(admin, nil)

		_, err := service.GrantAdmin(ctx, uuid.New(), admin.ID)

		assert.Equal(t, "FORBIDDEN", shared.CodeOf(err))
	})

	t.Run("superadmin cannot change self", func(t *testing.T) {
		users := new(MockUserRepository)
		service := NewAdminService(users, nil, zap.NewNop())
		super := newUser(t, "root@example.com", identity.RolePortalSuperAdmin)
		users.On("FindActiveByID", ctx, super.ID).Return(super, nil)

		_, err := service.GrantAdmin(ctx, super.ID, super.ID)

		assert.Equal(t, "CANNOT_MODIFY_SELF", shared.CodeOf(err))
	})

	t.Run("missing target", func(t *testing.T) {
		users := new(MockUserRepository)
		service := NewAdminService(users, nil, zap.NewNop())
		super := newUser(t, "root@example.com", identity.RolePortalSuperAdmin)
		id := uuid.New()
		users.On("FindActiveByID", ctx, super.ID).Return(super, nil)
		users.On("FindActiveByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.GrantAdmin(ctx, id, super.ID)

		assert.Equal(t, "USER_NOT_FOUND", shared.CodeOf(err))
	})

	t.Run("target already admin", func(t *testing.T) {
		users := new(MockUserRepository)
		service := NewAdminService(users, nil, zap.NewNop())
		super := newUser(t, "root@example.com", identity.RolePortalSuperAdmin)
		target := newUser(t, "admin@example.com", identity.RolePortalUser, identity.RolePortalAdmin)
		users.On("FindActiveByID", ctx, super.ID).Return(super, nil)
		users.On("FindActiveByID", ctx, target.ID).Return(target, nil)

		_, err := service.GrantAdmin(ctx, target.ID, super.ID)

		assert.Equal(t, "ALREADY_ADMIN", shared.CodeOf(err))
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestAdminService_RevokeAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("superadmin revokes admin", func(t *testing.T) {
		users := new(MockUserRepository)
		events := &recordingPublisher{}
		service := NewAdminService(users, events, zap.NewNop())
		super := newUser(t, "root@example.com", identity.RolePortalSuperAdmin)
		target := newUser(t, "admin@example.com", identity.RolePortalUser, identity.RolePortalAdmin)
		users.On("FindActiveByID", ctx, super.ID).Return(super, nil)
		users.On("FindActiveByID", ctx, target.ID).Return(target, nil)
		users.On("Update", ctx, target).Return(nil)

		result, err := service.RevokeAdmin(ctx, target.ID, super.ID)

		require.NoError(t, err)
		assert.Equal(t, []string{"ROLE_PORTAL_USER"}, result.Roles)
		assert.Equal(t, []string{identity.EventTypeUserAdminRevoked}, events.types())
	})

	t.Run("target is not admin", func(t *testing.T) {
		users := new(MockUserRepository)
		service := NewAdminService(users, nil, zap.NewNop())
		super := newUser(t, "root@example.com", identity.RolePortalSuperAdmin)
		target := newUser(t, "user@example.com")
		users.On("FindActiveByID", ctx, super.ID).Return(super, nil)
		users.On("FindActiveByID", ctx, target.ID).Return(target, nil)

		_, err := service.RevokeAdmin(ctx, target.ID, super.ID)

		assert.Equal(t, "NOT_ADMIN", shared.CodeOf(err))
	})
}
