package httpapi_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nikolayk812/storefront-state/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type streamEvent struct {
	Type    string           `json:"type"`
	Cart    *cartResponse    `json:"cart"`
	Session *sessionResponse `json:"session"`
}

func TestStream(t *testing.T) {
	env := newTestEnv(t)

	srv := httptest.NewServer(env.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	// initial state of both stores
	first := readEvent(t, conn)
	require.Equal(t, "cart", first.Type)
	require.NotNil(t, first.Cart)
	assert.Zero(t, first.Cart.ItemCount)

	second := readEvent(t, conn)
	require.Equal(t, "session", second.Type)
	require.NotNil(t, second.Session)
	assert.Equal(t, domain.GuestUsername, second.Session.Username)

	coffee := domain.CartItem{ID: "1", Name: "Coffee", Price: mustPrice(t, "4.99")}
	env.cart.AddItem(coffee)

	ev := readEvent(t, conn)
	require.Equal(t, "cart", ev.Type)
	assert.Equal(t, 1, ev.Cart.ItemCount)
	assert.Equal(t, "4.99", ev.Cart.TotalPrice)

	env.session.Login("Alice")

	ev = readEvent(t, conn)
	require.Equal(t, "session", ev.Type)
	assert.Equal(t, "Alice", ev.Session.Username)
	assert.True(t, ev.Session.IsLoggedIn)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
}

func TestStreamStoreClosed(t *testing.T) {
	env := newTestEnv(t)

	srv := httptest.NewServer(env.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	readEvent(t, conn)
	readEvent(t, conn)

	env.cart.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "err: %v", err)
}

func readEvent(t *testing.T, conn *websocket.Conn) streamEvent {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var ev streamEvent
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}
