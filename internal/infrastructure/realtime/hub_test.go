package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tsvs/backend/tests/testutil"
)

func TestHub(t *testing.T) {
	t.Run("delivers to every subscriber", func(t *testing.T) {
		hub := NewHub()
		a := hub.Subscribe(1)
		b := hub.Subscribe(1)

		hub.Publish(NewEvent("chat.message.created", map[string]string{"content": "hi"}))

		for _, ch := range []chan Event{a, b} {
			evt := <-ch
			assert.Equal(t, "chat.message.created", evt.Type)
			assert.JSONEq(t, `{"content":"hi"}`, string(evt.Data))
		}
	})

	t.Run("drops events for a full subscriber", func(t *testing.T) {
		hub := NewHub()
		ch := hub.Subscribe(1)

		hub.Publish(NewEvent("first", nil))
		hub.Publish(NewEvent("second", nil))

		assert.Equal(t, "first", (<-ch).Type)
		assert.Empty(t, ch)
	})

	t.Run("unsubscribe closes the channel once", func(t *testing.T) {
		hub := NewHub()
		ch := hub.Subscribe(0)
		assert.Equal(t, DefaultBuffer, cap(ch))

		hub.Unsubscribe(ch)
		hub.Unsubscribe(ch)

		_, open := <-ch
		assert.False(t, open)
		assert.Zero(t, hub.Subscribers())
	})
}

func TestServe(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Serve(w, r, hub, nil, zap.NewNop())
	}))
	t.Cleanup(srv.Close)

	ctx := testutil.ContextWithTimeout(t, 5*time.Second)

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	var ready Event
	require.NoError(t, wsjson.Read(ctx, conn, &ready))
	assert.Equal(t, "ready", ready.Type)

	hub.Publish(NewEvent("chat.message.created", map[string]string{"id": "1"}))
	var evt Event
	require.NoError(t, wsjson.Read(ctx, conn, &evt))
	assert.Equal(t, "chat.message.created", evt.Type)

	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte("hello")))
	var relayed Event
	require.NoError(t, wsjson.Read(ctx, conn, &relayed))
	assert.Equal(t, ClientMessageType, relayed.Type)
	var text string
	require.NoError(t, json.Unmarshal(relayed.Data, &text))
	assert.Equal(t, "hello", text)

	assert.Equal(t, 1, hub.Subscribers())
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
	testutil.AssertEventually(t, func() bool { return hub.Subscribers() == 0 },
		2*time.Second, 10*time.Millisecond, "subscriber still registered after close")
}
