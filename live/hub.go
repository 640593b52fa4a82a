// Package live рассылает события матчей подписчикам по websocket.
package live

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Message struct {
	Type    string      `json:"type"` // RESULT_UPDATED, SCHEDULE_UPDATED, GOAL_ADDED
	Payload interface{} `json:"payload"`
	RoomID  string      `json:"room_id,omitempty"`
}

type roomMessage struct {
	room string
	data []byte
}

// RoomForMatch - комната подписчиков одного матча.
func RoomForMatch(matchID uuid.UUID) string {
	return "match_" + matchID.String()
}

// Hub владеет всеми комнатами; состояние меняется только в горутине Run.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan roomMessage
	done       chan struct{}

	rooms map[string]map[*Client]struct{}
	log   zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan roomMessage, 256),
		done:       make(chan struct{}),
		rooms:      make(map[string]map[*Client]struct{}),
		log:        logger.With().Str("component", "live_hub").Logger(),
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for room, clients := range h.rooms {
				for c := range clients {
					close(c.send)
				}
				delete(h.rooms, room)
			}
			h.log.Info().Msg("hub stopped")
			return

		case c := <-h.register:
			clients, ok := h.rooms[c.room]
			if !ok {
				clients = make(map[*Client]struct{})
				h.rooms[c.room] = clients
			}
			clients[c] = struct{}{}
			h.log.Debug().Str("room", c.room).Int("clients", len(clients)).Msg("client registered")

		case c := <-h.unregister:
			h.remove(c)

		case m := <-h.broadcast:
			for c := range h.rooms[m.room] {
				select {
				case c.send <- m.data:
				default:
					h.log.Warn().Str("room", m.room).Msg("client send buffer full, message skipped")
				}
			}
		}
	}
}

func (h *Hub) remove(c *Client) {
	clients, ok := h.rooms[c.room]
	if !ok {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}
	delete(clients, c)
	close(c.send)
	if len(clients) == 0 {
		delete(h.rooms, c.room)
		h.log.Debug().Str("room", c.room).Msg("room closed as it's empty")
		return
	}
	h.log.Debug().Str("room", c.room).Int("clients", len(clients)).Msg("client unregistered")
}

// Register возвращает false, если хаб уже остановлен.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// BroadcastToRoom не блокирует: при переполненной очереди сообщение отбрасывается.
func (h *Hub) BroadcastToRoom(room string, msg Message) {
	msg.RoomID = room
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Error().Err(err).Str("room", room).Msg("failed to marshal message")
		return
	}
	select {
	case h.broadcast <- roomMessage{room: room, data: data}:
	default:
		h.log.Warn().Str("room", room).Str("type", msg.Type).Msg("broadcast queue full, message dropped")
	}
}

// PublishMatchEvent реализует services.EventPublisher.
func (h *Hub) PublishMatchEvent(matchID uuid.UUID, eventType string, payload interface{}) {
	h.BroadcastToRoom(RoomForMatch(matchID), Message{Type: eventType, Payload: payload})
}
