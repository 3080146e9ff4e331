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

func TestHistoryRecorder(t *testing.T) {
	ctx := context.Background()

	t.Run("records actor and action", func(t *testing.T) {
		repo := new(MockHistoryRepository)
		recorder := NewHistoryRecorder(repo, zap.NewNop())
		user := newUser(t, "user@example.com")
		actor := uuid.New()

		var stored *identity.ActionHistory
		repo.On("Append", ctx, mock.AnythingOfType("*identity.ActionHistory")).
			Run(func(args mock.Arguments) { stored = args.Get(1).(*identity.ActionHistory) }).
			Return(nil)

		require.NoError(t, recorder.Handle(ctx, identity.NewUserDeletedEvent(user, actor)))

		require.NotNil(t, stored)
		assert.Equal(t, user.ID, stored.UserID)
		require.NotNil(t, stored.ActorID)
		assert.Equal(t, actor, *stored.ActorID)
		assert.Equal(t, identity.ActionDelete, stored.Action)
		assert.Equal(t, "Иванова Анна", stored.Name)
		assert.Equal(t, identity.EventTypeUserDeleted, stored.Details)
	})

	t.Run("self registration has no actor", func(t *testing.T) {
		repo := new(MockHistoryRepository)
		recorder := NewHistoryRecorder(repo, zap.NewNop())
		user := newUser(t, "user@example.com")

		repo.On("Append", ctx, mock.MatchedBy(func(h *identity.ActionHistory) bool {
			return h.ActorID == nil && h.Action == identity.ActionCreate
		})).Return(nil)

		require.NoError(t, recorder.Handle(ctx, identity.NewUserCreatedEvent(user, uuid.Nil)))
		repo.AssertExpectations(t)
	})

	t.Run("rejects foreign events", func(t *testing.T) {
		recorder := NewHistoryRecorder(new(MockHistoryRepository), zap.NewNop())
		base := shared.NewBaseDomainEvent("Other", "Other", uuid.New(), uuid.Nil)

		assert.Error(t, recorder.Handle(ctx, &base))
	})

	t.Run("subscribes to every user event", func(t *testing.T) {
		recorder := NewHistoryRecorder(nil, zap.NewNop())
		assert.ElementsMatch(t, identity.UserEventTypes(), recorder.EventTypes())
	})
}
