package live

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"
)

// ServeWS upgrades an HTTP request to a WebSocket connection and streams hub
// events to it until the client disconnects. There is no session resumption;
// a reconnecting client starts from the current state.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) error {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		return err
	}
	defer conn.CloseNow()

	sub := h.Subscribe()
	defer h.Unsubscribe(sub)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Drain inbound frames so pings are answered and closes are noticed.
	// Clients have nothing meaningful to send.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.Read(ctx); err != nil {
				return
			}
		}
	}()

	logrus.WithField("remote", r.RemoteAddr).Debug("Live client connected")
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return nil
		case ev, ok := <-sub.C:
			if !ok {
				// Dropped by the hub or the hub shut down
				conn.Close(websocket.StatusTryAgainLater, "subscriber dropped")
				return nil
			}
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
				return nil
			}
		}
	}
}
