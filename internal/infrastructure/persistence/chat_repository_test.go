package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsvs/backend/internal/domain/chat"
	"github.com/tsvs/backend/internal/domain/shared"
)

func TestGormMessageRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	chats := NewGormChatRepository(db)
	messages := NewGormMessageRepository(db)

	room, err := chat.NewChat("General")
	require.NoError(t, err)
	require.NoError(t, chats.Create(ctx, room))

	sender, receiver := uuid.New(), uuid.New()
	base := time.Now().UTC()
	var sent []*chat.Message
	for i, text := range []string{"hello", "how are you", "bye"} {
		m, err := chat.NewMessage(room.ID, sender, receiver, text, "")
		require.NoError(t, err)
		m.CreatedAt = base.Add(time.Duration(i) * time.Second)
		m.UpdatedAt = m.CreatedAt
		require.NoError(t, messages.Create(ctx, m))
		sent = append(sent, m)
	}

	t.Run("lists oldest first", func(t *testing.T) {
		list, err := messages.FindByChatID(ctx, room.ID)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "hello", list[0].Content)
		assert.Equal(t, "bye", list[2].Content)
	})

	t.Run("edit persists", func(t *testing.T) {
		m := sent[1]
		require.NoError(t, m.Edit("fine, thanks", sender))
		require.NoError(t, messages.Update(ctx, m))

		found, err := messages.FindByID(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, "fine, thanks", found.Content)
		assert.Equal(t, 2, found.Version)
	})

	t.Run("unknown chat is rejected", func(t *testing.T) {
		m, err := chat.NewMessage(uuid.New(), sender, receiver, "lost", "")
		require.NoError(t, err)
		assert.Equal(t, "INVALID_REFERENCE", shared.CodeOf(messages.Create(ctx, m)))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, messages.Delete(ctx, sent[0].ID))
		_, err := messages.FindByID(ctx, sent[0].ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.ErrorIs(t, messages.Delete(ctx, sent[0].ID), shared.ErrNotFound)
	})

	all, err := chats.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
