package live

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// subscribe поднимает сервер, который кладёт каждое соединение в room, и ждёт регистрации.
func subscribe(t *testing.T, hub *Hub, room string) *websocket.Conn {
	t.Helper()
	registered := make(chan struct{})
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := NewClient(hub, conn, room)
		hub.Register(c)
		go c.WritePump()
		go c.ReadPump()
		close(registered)
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	select {
	case <-registered:
	case <-time.After(2 * time.Second):
		t.Fatal("client was not registered")
	}
	return conn
}

func TestHubDeliversMatchEventToRoom(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)

	matchID := uuid.New()
	conn := subscribe(t, hub, RoomForMatch(matchID))

	hub.PublishMatchEvent(matchID, "GOAL_ADDED", map[string]string{"player_id": "p1"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type    string            `json:"type"`
		Payload map[string]string `json:"payload"`
		RoomID  string            `json:"room_id"`
	}
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "GOAL_ADDED", msg.Type)
	assert.Equal(t, "p1", msg.Payload["player_id"])
	assert.Equal(t, "match_"+matchID.String(), msg.RoomID)
}

func TestHubDoesNotLeakAcrossRooms(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)

	watched, other := uuid.New(), uuid.New()
	conn := subscribe(t, hub, RoomForMatch(watched))

	hub.PublishMatchEvent(other, "RESULT_UPDATED", nil)
	hub.PublishMatchEvent(watched, "SCHEDULE_UPDATED", nil)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), "SCHEDULE_UPDATED")
}

func TestPublishWithoutSubscribersDoesNotBlock(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	// хаб не запущен: очередь заполняется, лишние сообщения отбрасываются
	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			hub.PublishMatchEvent(uuid.New(), "GOAL_ADDED", i)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked")
	}
}

func TestRegisterAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(zerolog.Nop())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	assert.False(t, hub.Register(&Client{hub: hub, send: make(chan []byte, 1), room: "match_x"}))
}
