package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func dialRoom(t *testing.T, server *httptest.Server, room string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?room=" + room
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func newHubServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(r.URL.Query().Get("room"), w, r)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func waitForRoom(t *testing.T, hub *Hub, room string, size int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.RoomSize(room) == size {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("room %s never reached size %d", room, size)
}

func TestHubBroadcastReachesRoom(t *testing.T) {
	hub := NewHub()
	server := newHubServer(t, hub)

	conn := dialRoom(t, server, RoomAdmin)
	waitForRoom(t, hub, RoomAdmin, 1)

	hub.Broadcast(RoomAdmin, EventContactReceived, map[string]string{"name": "Ada"})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, RoomAdmin, msg.Room)
	require.Equal(t, EventContactReceived, msg.Event)
}

func TestHubBroadcastDoesNotLeakAcrossRooms(t *testing.T) {
	hub := NewHub()
	server := newHubServer(t, hub)

	public := dialRoom(t, server, RoomPublic)
	waitForRoom(t, hub, RoomPublic, 1)

	// Joining the public room announces the visitor count.
	_ = public.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	require.NoError(t, public.ReadJSON(&msg))
	require.Equal(t, EventVisitorCount, msg.Event)
	require.Equal(t, float64(1), msg.Data)

	hub.Broadcast(RoomAdmin, EventContactReceived, nil)
	hub.Broadcast(RoomPublic, EventPageView, map[string]string{"page": "/"})

	// The admin broadcast must not reach the public subscriber.
	require.NoError(t, public.ReadJSON(&msg))
	require.Equal(t, EventPageView, msg.Event)
}

func TestHubBroadcastDropsStalledClient(t *testing.T) {
	hub := NewHub()

	serverConns := make(chan *websocket.Conn, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := hub.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		serverConns <- conn
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	dialed, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = dialed.Close() })

	// Registered without a write loop, so nothing drains its buffer.
	client := newConnection(hub, <-serverConns, RoomAdmin)
	hub.register(client)
	for i := 0; i < defaultBufferSize; i++ {
		client.send <- Message{Room: RoomAdmin, Event: EventPageView}
	}

	done := make(chan struct{})
	go func() {
		hub.Broadcast(RoomAdmin, EventContactReceived, nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked on a stalled client")
	}
	waitForRoom(t, hub, RoomAdmin, 0)
}

func TestHubUnregistersOnClose(t *testing.T) {
	hub := NewHub()
	server := newHubServer(t, hub)

	conn := dialRoom(t, server, RoomPublic)
	waitForRoom(t, hub, RoomPublic, 1)

	require.NoError(t, conn.Close())
	waitForRoom(t, hub, RoomPublic, 0)
}
