package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// stream pushes the state of both stores, then one event per mutation, until
// the client goes away.
func (h *handler) stream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", slog.Any("err", err))
		return
	}
	defer conn.Close()

	carts, cancelCart := h.cart.Subscribe()
	defer cancelCart()
	sessions, cancelSession := h.session.Subscribe()
	defer cancelSession()

	cart := toCartView(h.cart.Snapshot())
	session := toSessionView(h.session.Snapshot())
	if err := h.send(conn, event{Type: eventCart, Cart: &cart}); err != nil {
		return
	}
	if err := h.send(conn, event{Type: eventSession, Session: &session}); err != nil {
		return
	}

	// the read loop only detects the close; clients send nothing
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.log.Debug("websocket read", slog.Any("err", err))
				}
				return
			}
		}
	}()

	for {
		var ev event

		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case snap, ok := <-carts:
			if !ok {
				h.closeNormal(conn)
				return
			}
			view := toCartView(snap)
			ev = event{Type: eventCart, Cart: &view}
		case snap, ok := <-sessions:
			if !ok {
				h.closeNormal(conn)
				return
			}
			view := toSessionView(snap)
			ev = event{Type: eventSession, Session: &view}
		}

		if err := h.send(conn, ev); err != nil {
			return
		}
	}
}

func (h *handler) send(conn *websocket.Conn, ev event) error {
	if err := conn.SetWriteDeadline(time.Now().Add(h.writeTimeout)); err != nil {
		return fmt.Errorf("conn.SetWriteDeadline: %w", err)
	}

	if err := conn.WriteJSON(ev); err != nil {
		h.log.Debug("websocket write", slog.String("type", ev.Type), slog.Any("err", err))
		return fmt.Errorf("conn.WriteJSON: %w", err)
	}
	return nil
}

func (h *handler) closeNormal(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "store closed")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(h.writeTimeout))
}
