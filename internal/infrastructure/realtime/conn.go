package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"
)

// ClientMessageType is the event type used to relay text frames sent by clients
const ClientMessageType = "client.message"

const writeTimeout = 5 * time.Second

// Serve upgrades the request and streams hub events to the client until either side
// goes away. Text frames received from the client are re-published to every subscriber.
func Serve(w http.ResponseWriter, r *http.Request, hub *Hub, originPatterns []string, logger *zap.Logger) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: originPatterns})
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sub := hub.Subscribe(DefaultBuffer)
	defer hub.Unsubscribe(sub)

	logger.Debug("websocket client connected", zap.Int("subscribers", hub.Subscribers()))
	_ = wsjson.Write(ctx, conn, NewEvent("ready", nil))

	readErr := make(chan error, 1)
	go func() {
		readErr <- relay(ctx, conn, hub)
	}()

	for {
		select {
		case <-ctx.Done():
			_ = conn.Close(websocket.StatusNormalClosure, "closed")
			return
		case err := <-readErr:
			if err != nil && websocket.CloseStatus(err) == -1 && !errors.Is(err, context.Canceled) {
				logger.Debug("websocket read ended", zap.Error(err))
			}
			_ = conn.Close(websocket.StatusNormalClosure, "closed")
			return
		case evt, ok := <-sub:
			if !ok {
				_ = conn.Close(websocket.StatusNormalClosure, "closed")
				return
			}
			writeCtx, cancelWrite := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(writeCtx, conn, evt)
			cancelWrite()
			if err != nil {
				_ = conn.Close(websocket.StatusInternalError, "write_failed")
				return
			}
		}
	}
}

func relay(ctx context.Context, conn *websocket.Conn, hub *Hub) error {
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}
		if typ != websocket.MessageText {
			continue
		}
		payload := data
		if !json.Valid(payload) {
			payload, _ = json.Marshal(string(data))
		}
		hub.Publish(Event{
			Type: ClientMessageType,
			At:   time.Now().UTC().Format(time.RFC3339Nano),
			Data: payload,
		})
	}
}
